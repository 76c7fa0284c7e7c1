package domain

import (
	"fmt"
	"strings"
)

// Validation error codes.
const (
	CodeDFAEpsilon             = "DFA_EPSILON"
	CodeDFAMissingTransition   = "DFA_MISSING_TRANSITION"
	CodeDFAMultipleTransitions = "DFA_MULTIPLE_TRANSITIONS"
	CodeNFAEpsilon             = "NFA_EPSILON"
	CodeAlphabetEpsilon        = "ALPHABET_EPSILON"
	CodeDuplicateState         = "DUPLICATE_STATE"
	CodeMultipleStartStates    = "MULTIPLE_START_STATES"
	CodeDanglingReference      = "DANGLING_REFERENCE"
)

// ValidationError is a non-fatal structural finding. Many may be reported at once.
type ValidationError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	State   *StateID `json:"state,omitempty"`
	Symbol  Symbol   `json:"symbol,omitempty"`
}

func (v ValidationError) Error() string {
	return v.Message
}

// String returns the message prefixed with its code.
func (v ValidationError) String() string {
	return fmt.Sprintf("[%s] %s", v.Code, v.Message)
}

// ValidationErrors aggregates findings into a single error value for callers
// that prefer error flow over inspecting a slice.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "automaton is valid"
	case 1:
		return v[0].Message
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(v))
	for i, e := range v {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, e.Message)
	}
	return b.String()
}

// Messages returns the plain messages in report order.
func (v ValidationErrors) Messages() []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.Message
	}
	return out
}

// Err returns nil for an empty list and the list itself otherwise.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
