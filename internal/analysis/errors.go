package analysis

import (
	"errors"
	"fmt"
)

// Reason is the machine-distinguishable cause of a rejected variable
// selection, so callers can render a precise message.
type Reason string

const (
	ReasonInsufficientVariables Reason = "insufficient_variables"
	ReasonWrongColumnType       Reason = "wrong_column_type"
	ReasonDuplicateRole         Reason = "duplicate_role"
	ReasonUnknownColumn         Reason = "unknown_column"
	ReasonUnknownChartType      Reason = "unknown_chart_type"
)

// ValidationError rejects a candidate variable set with a specific reason.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Reason, e.Message)
}

func rejected(reason Reason, format string, args ...any) *ValidationError {
	return &ValidationError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// ErrInvalidRequest signals the dispatcher was called with a request that
// does not validate against the active session's schema.
var ErrInvalidRequest = errors.New("invalid analysis request")

// AnalysisError translates a compute-side failure. The session stays
// active; a retry with adjusted variables is possible.
type AnalysisError struct {
	Type  Type
	Cause error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis %s failed: %v", e.Type, e.Cause)
}

func (e *AnalysisError) Unwrap() error { return e.Cause }
