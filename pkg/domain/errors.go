package domain

import (
	"errors"
	"fmt"
)

// ErrNoStartState is returned by run and step operations when no state holds the start role.
var ErrNoStartState = errors.New("no start state defined")

// ErrNoTransition matches any *NoTransitionError via errors.Is.
var ErrNoTransition = errors.New("no transition")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionNotStarted is returned when advancing a session that was reset or never started.
var ErrSessionNotStarted = errors.New("session not started")

// ErrUnknownKind is returned when an automaton type cannot be parsed.
var ErrUnknownKind = errors.New("unknown automaton type")

// ErrAutomatonNotFound is returned by loaders for unknown automaton ids.
var ErrAutomatonNotFound = errors.New("automaton not found")

// NoTransitionError reports a DFA walk that found no transition for the current symbol.
// It is terminal for the run: no further symbols are consumed.
type NoTransitionError struct {
	State     StateID
	StateName string
	Symbol    Symbol
	// Index is the position of Symbol in the input, in code points.
	Index int
}

func (e *NoTransitionError) Error() string {
	name := e.StateName
	if name == "" {
		name = e.State.DefaultName()
	}
	return fmt.Sprintf("No transition for '%s' from state %s", e.Symbol, name)
}

// Is lets errors.Is(err, ErrNoTransition) match.
func (e *NoTransitionError) Is(target error) bool {
	return target == ErrNoTransition
}
