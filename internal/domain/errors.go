package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("user is not found")
	ErrConflict       = errors.New("username already exists")
	ErrLoginRequired  = errors.New("login required")
	ErrPasswordDenied = errors.New("modify password denied")
)

// ValidationError 入参不合法，本次调用终止，不重试
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter error: %s %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
