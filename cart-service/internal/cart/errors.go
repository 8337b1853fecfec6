package cart

import (
	"errors"
	"fmt"
)

// Validation failures. A *ValidationError always wraps one of these.
var (
	ErrNonPositivePrice   = errors.New("product price must be positive")
	ErrQuantityExceedsMax = errors.New("quantity exceeds maximum per item")
	ErrQuantityBelowMin   = errors.New("quantity must be at least 1")
	ErrInvalidDiscount    = errors.New("invalid discount")
)

// ValidationError reports an input that breaks a cart rule.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, value any, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: err}
}
