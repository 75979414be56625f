package records

import (
	"errors"
	"fmt"
)

// ErrValidation marks user input that was rejected. The mutation that carried
// it must not have been applied.
var ErrValidation = errors.New("validation failed")

// Invalid wraps ErrValidation with the offending field.
func Invalid(field, msg string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, msg)
}

// Required reports an empty mandatory field.
func Required(field string) error {
	return Invalid(field, "is required")
}
