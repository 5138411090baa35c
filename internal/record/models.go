package record

import "time"

// TestDateFormat is the accepted layout for diagnostic test dates.
const TestDateFormat = "2006-01-02"

// Patient is a person under clinical tracking
type Patient struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender"`
	Address       string    `json:"address,omitempty"`
	ContactNumber string    `json:"contact_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Test is a single diagnostic test belonging to exactly one patient
type Test struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	TestType  string    `json:"test_type"`
	TestDate  string    `json:"test_date"` // Format: YYYY-MM-DD
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePatientRequest represents the request to register a new patient
type CreatePatientRequest struct {
	Name          string `json:"name" validate:"required"`
	Age           *int   `json:"age" validate:"required"`
	Gender        string `json:"gender" validate:"required"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
}

// Validate checks the required patient fields at the store boundary.
// Age is a pointer so an absent field is distinguishable from zero.
func (r CreatePatientRequest) Validate() error {
	if r.Name == "" {
		return ErrMissingName
	}
	if r.Age == nil {
		return ErrMissingAge
	}
	if *r.Age < 0 {
		return ErrNegativeAge
	}
	if r.Gender == "" {
		return ErrMissingGender
	}
	return nil
}

// CreateTestRequest represents the request to record a diagnostic test
type CreateTestRequest struct {
	TestType string `json:"test_type" validate:"required"`
	TestDate string `json:"test_date" validate:"required"` // Format: YYYY-MM-DD
	Result   string `json:"result" validate:"required"`
}

// Validate checks the required test fields at the store boundary.
func (r CreateTestRequest) Validate() error {
	if r.TestType == "" {
		return ErrMissingTestType
	}
	if r.TestDate == "" {
		return ErrMissingTestDate
	}
	if _, err := time.Parse(TestDateFormat, r.TestDate); err != nil {
		return ErrInvalidTestDate
	}
	if r.Result == "" {
		return ErrMissingResult
	}
	return nil
}
