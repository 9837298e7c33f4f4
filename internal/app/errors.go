package app

import (
	"errors"
	"fmt"
)

// ErrInvalidForm is matched by every FieldError.
var ErrInvalidForm = errors.New("invalid form")

// FieldError reports a single out-of-range or missing form field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidForm, e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidForm) match.
func (e *FieldError) Unwrap() error { return ErrInvalidForm }

func fieldErr(field, format string, args ...any) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
