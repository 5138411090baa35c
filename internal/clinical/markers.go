package clinical

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Markers is the vocabulary of critical result markers. A test result is
// critical when it contains any marker, compared case-insensitively. The
// vocabulary is configuration, not logic: extending it never touches the
// classification algorithm.
type Markers []string

// DefaultMarkers returns the built-in critical vocabulary
func DefaultMarkers() Markers {
	return NewMarkers("critical", "abnormal-high", "failed")
}

// NewMarkers builds a normalized vocabulary, dropping empty entries
func NewMarkers(markers ...string) Markers {
	normalized := make(Markers, 0, len(markers))
	for _, m := range markers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			normalized = append(normalized, m)
		}
	}
	return normalized
}

// Matches reports whether a test result is critical under this vocabulary
func (m Markers) Matches(result string) bool {
	result = strings.ToLower(result)
	for _, marker := range m {
		if strings.Contains(result, marker) {
			return true
		}
	}
	return false
}

type markersFile struct {
	Markers []string `yaml:"markers"`
}

// LoadMarkers loads a critical-markers YAML file
func LoadMarkers(path string) (Markers, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mf markersFile
	if err := yaml.Unmarshal(b, &mf); err != nil {
		return nil, err
	}
	if len(mf.Markers) == 0 {
		return nil, fmt.Errorf("no markers defined in %s", path)
	}
	return NewMarkers(mf.Markers...), nil
}
