package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the outcomes the handlers need to tell apart.
// Anything else that bubbles up from the repositories is a persistence
// failure and maps to 500.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed yet")
)

// ValidationError carries per-field messages from validator checks.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
