package clinical

import "github.com/clinitrack/clinical-record-service/internal/record"

// PatientHistory is the composite of a patient and their full test
// collection, in test insertion order
type PatientHistory struct {
	Patient record.Patient `json:"patient"`
	Tests   []record.Test  `json:"tests"`
}
