package model

import "fmt"

// ValidationError is reported synchronously before any state mutation is
// attempted.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) ValidationError {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	_, ok := err.(ValidationError)
	return ok
}
