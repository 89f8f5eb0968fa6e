package rules

import "fmt"

// ValidationError rejects a rules payload before any write happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// RuleNotFoundError is returned when a named rule type does not exist.
type RuleNotFoundError struct {
	RuleType string
}

func (e *RuleNotFoundError) Error() string {
	return fmt.Sprintf("Unknown rule type: %s", e.RuleType)
}
