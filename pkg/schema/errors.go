package schema

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for file extensions with no known codec.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// FieldError represents a single field that could not be mapped onto the automaton model.
type FieldError struct {
	Key    string // Field path, e.g. states[2].role
	Reason string // Human-readable reason for failure
	Value  any    // The value that was rejected
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple field failures in one document.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d document errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// FieldErrors returns all field errors if err is an AggregateError.
// Otherwise returns nil.
func FieldErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
