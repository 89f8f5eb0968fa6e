package transform

import (
	"errors"
	"fmt"
)

// ErrNoRefsMatched means a batch request named only refs that have no
// stored record.
var ErrNoRefsMatched = errors.New("No provided sales refs were found")

// MissingRuleError means the rule set has no entry for a rule the
// builder needs. The build fails fast instead of inventing defaults.
type MissingRuleError struct {
	RuleType string
}

func (e *MissingRuleError) Error() string {
	return fmt.Sprintf("Rule set is missing required rule: %s", e.RuleType)
}

// InvalidRecordError marks one CRM record as untransformable. Batch
// callers collect these and keep going.
type InvalidRecordError struct {
	SalesRequestRef string
	Reason          string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("Invalid record %s: %s", e.SalesRequestRef, e.Reason)
}

func newInvalidRecordError(ref, format string, args ...interface{}) *InvalidRecordError {
	return &InvalidRecordError{SalesRequestRef: ref, Reason: fmt.Sprintf(format, args...)}
}
