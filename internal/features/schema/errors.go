package schema

import "fmt"

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return e.What
}

func newNotFoundError(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{What: fmt.Sprintf(format, args...)}
}
