package domain

import (
	"errors"
	"fmt"
)

// ErrServiceUnavailable signals a transport failure, timeout, or an
// unrecognized status from the prediction API. Callers match it with
// errors.Is.
var ErrServiceUnavailable = errors.New("prediction service unavailable")

// ValidationRejectedError means the prediction API rejected the input
// server-side (HTTP 422). Distinct from local validation: the two can
// disagree when a catalog snapshot goes stale.
type ValidationRejectedError struct {
	Message string
}

func (e *ValidationRejectedError) Error() string {
	return fmt.Sprintf("prediction rejected: %s", e.Message)
}

// MalformedResponseError means the prediction API answered 200 but the
// body did not match the documented shape.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed prediction service response: %s", e.Reason)
}

// FieldError reports a request field that failed local validation.
// Requests carrying a FieldError are never sent to the prediction API.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
