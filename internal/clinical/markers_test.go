package clinical

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMarkersMatches(t *testing.T) {
	markers := DefaultMarkers()

	testCases := []struct {
		name   string
		result string
		want   bool
	}{
		{"Exact marker", "critical", true},
		{"Uppercase result", "CRITICAL", true},
		{"Mixed case", "Critical", true},
		{"Marker inside sentence", "values critical, follow up required", true},
		{"Hyphenated marker", "abnormal-high", true},
		{"Failed marker", "test failed", true},
		{"Normal result", "normal", false},
		{"Near miss", "abnormal-low", false},
		{"Empty result", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := markers.Matches(tc.result); got != tc.want {
				t.Errorf("Matches(%q) = %v, want %v", tc.result, got, tc.want)
			}
		})
	}
}

func TestNewMarkers_Normalizes(t *testing.T) {
	markers := NewMarkers("  Elevated ", "", "POSITIVE")

	if len(markers) != 2 {
		t.Fatalf("Expected 2 markers, got %d", len(markers))
	}
	if !markers.Matches("elevated troponin") {
		t.Error("Expected trimmed lowercase marker to match")
	}
	if !markers.Matches("positive") {
		t.Error("Expected case-folded marker to match")
	}
}

func TestLoadMarkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.yml")
	content := "markers:\n  - critical\n  - Elevated\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write markers file: %v", err)
	}

	markers, err := LoadMarkers(path)
	if err != nil {
		t.Fatalf("LoadMarkers failed: %v", err)
	}
	if len(markers) != 2 {
		t.Fatalf("Expected 2 markers, got %d", len(markers))
	}
	if !markers.Matches("ELEVATED") {
		t.Error("Expected loaded markers to be normalized")
	}
}

func TestLoadMarkers_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.yml")
	if err := os.WriteFile(path, []byte("markers: []\n"), 0o644); err != nil {
		t.Fatalf("Failed to write markers file: %v", err)
	}

	if _, err := LoadMarkers(path); err == nil {
		t.Error("Expected error for empty vocabulary")
	}
}

func TestLoadMarkers_MissingFile(t *testing.T) {
	if _, err := LoadMarkers(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
