package runtime

import (
	"fmt"
	"strings"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// Validate checks the structural well-formedness of a under its declared kind.
// It never fails: an empty result means the automaton is valid.
// Kind specific findings come first, generic ones after; the order is stable
// so callers may compare message sequences.
func Validate(a *domain.Automaton) domain.ValidationErrors {
	if a == nil {
		return nil
	}

	var errs domain.ValidationErrors
	if a.Kind.Deterministic() {
		errs = append(errs, validateDFA(a)...)
	}
	if a.Kind == domain.KindNFA {
		errs = append(errs, validateNFA(a)...)
	}
	errs = append(errs, validateGeneric(a)...)
	return errs
}

func validateDFA(a *domain.Automaton) domain.ValidationErrors {
	var errs domain.ValidationErrors

	// 1. Epsilon transitions are not allowed
	for _, t := range a.Transitions {
		if !t.IsEpsilon() {
			continue
		}
		from := t.From
		errs = append(errs, domain.ValidationError{
			Code:    domain.CodeDFAEpsilon,
			Message: fmt.Sprintf("DFA cannot have epsilon (ε) transitions. Problem at state '%s'.", a.Label(from)),
			State:   &from,
			Symbol:  domain.Epsilon,
		})
	}

	// 2. Exactly one outgoing transition per state and symbol
	for _, s := range a.States {
		id := s.ID
		label := s.Label()
		outgoing := a.Outgoing(id)

		for _, sym := range a.Alphabet {
			if sym == domain.Epsilon {
				continue
			}
			matches := 0
			for _, t := range outgoing {
				if !t.IsEpsilon() && t.Label == sym {
					matches++
				}
			}
			switch {
			case matches == 0:
				errs = append(errs, domain.ValidationError{
					Code:    domain.CodeDFAMissingTransition,
					Message: fmt.Sprintf("DFA state '%s' is missing a transition for symbol '%s'.", label, sym),
					State:   &id,
					Symbol:  sym,
				})
			case matches > 1:
				errs = append(errs, domain.ValidationError{
					Code:    domain.CodeDFAMultipleTransitions,
					Message: fmt.Sprintf("DFA state '%s' has multiple transitions for symbol '%s'.", label, sym),
					State:   &id,
					Symbol:  sym,
				})
			}
		}
	}
	return errs
}

func validateNFA(a *domain.Automaton) domain.ValidationErrors {
	var errs domain.ValidationErrors
	for _, t := range a.Transitions {
		if t.IsEpsilon() {
			from := t.From
			errs = append(errs, domain.ValidationError{
				Code:    domain.CodeNFAEpsilon,
				Message: "NFA must not contain ε-transitions.",
				State:   &from,
				Symbol:  domain.Epsilon,
			})
		}
	}
	return errs
}

func validateGeneric(a *domain.Automaton) domain.ValidationErrors {
	var errs domain.ValidationErrors

	for _, sym := range a.Alphabet {
		if sym == domain.Epsilon {
			errs = append(errs, domain.ValidationError{
				Code:    domain.CodeAlphabetEpsilon,
				Message: "Alphabet must not contain ε.",
				Symbol:  domain.Epsilon,
			})
			break
		}
	}

	known := make(map[domain.StateID]bool, len(a.States))
	var starts []string
	for _, s := range a.States {
		id := s.ID
		if known[id] {
			errs = append(errs, domain.ValidationError{
				Code:    domain.CodeDuplicateState,
				Message: fmt.Sprintf("Duplicate state id %d.", id),
				State:   &id,
			})
		}
		known[id] = true
		if s.IsStart() {
			starts = append(starts, "'"+s.Label()+"'")
		}
	}
	if len(starts) > 1 {
		errs = append(errs, domain.ValidationError{
			Code:    domain.CodeMultipleStartStates,
			Message: fmt.Sprintf("Automaton has multiple start states: %s.", strings.Join(starts, ", ")),
		})
	}

	for i, t := range a.Transitions {
		endpoints := []domain.StateID{t.From}
		if t.To != t.From {
			endpoints = append(endpoints, t.To)
		}
		for _, id := range endpoints {
			if known[id] {
				continue
			}
			errs = append(errs, domain.ValidationError{
				Code:    domain.CodeDanglingReference,
				Message: fmt.Sprintf("Transition %d references unknown state %d.", i, id),
				State:   &id,
				Symbol:  t.Label,
			})
		}
	}
	return errs
}
