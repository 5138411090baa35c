package record

import (
	"errors"
	"fmt"
)

// Error kinds. Every error the store raises wraps exactly one of these,
// so callers can classify with errors.Is without matching messages.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

var (
	ErrPatientNotFound = fmt.Errorf("patient %w", ErrNotFound)

	ErrMissingName     = fmt.Errorf("%w: name is required", ErrValidation)
	ErrMissingAge      = fmt.Errorf("%w: age is required", ErrValidation)
	ErrNegativeAge     = fmt.Errorf("%w: age must be a non-negative integer", ErrValidation)
	ErrMissingGender   = fmt.Errorf("%w: gender is required", ErrValidation)
	ErrMissingTestType = fmt.Errorf("%w: test type is required", ErrValidation)
	ErrMissingTestDate = fmt.Errorf("%w: test date is required", ErrValidation)
	ErrInvalidTestDate = fmt.Errorf("%w: test date must be in YYYY-MM-DD format", ErrValidation)
	ErrMissingResult   = fmt.Errorf("%w: result is required", ErrValidation)
)

// IsNotFound reports whether err is a missing-resource error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a rejected-input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
