package runtime

import "github.com/LeenJaber1/automata-builder/pkg/domain"

// EpsilonClosure returns every state reachable from ids through ε-transitions only,
// including ids themselves. Each state enters the closure at most once, so the
// worklist terminates on any finite graph.
func EpsilonClosure(a *domain.Automaton, ids ...domain.StateID) domain.StateSet {
	closure := make(map[domain.StateID]bool, len(ids))
	stack := make([]domain.StateID, 0, len(ids))
	for _, id := range ids {
		if !closure[id] {
			closure[id] = true
			stack = append(stack, id)
		}
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, t := range a.Transitions {
			if t.From == id && t.IsEpsilon() && !closure[t.To] {
				closure[t.To] = true
				stack = append(stack, t.To)
			}
		}
	}

	out := make([]domain.StateID, 0, len(closure))
	for id := range closure {
		out = append(out, id)
	}
	return domain.NewStateSet(out...)
}

// move returns the targets of non-ε transitions labeled sym leaving any state of set.
func move(a *domain.Automaton, set domain.StateSet, sym domain.Symbol) []domain.StateID {
	var next []domain.StateID
	for _, t := range a.Transitions {
		if t.IsEpsilon() || t.Label != sym {
			continue
		}
		if set.Contains(t.From) {
			next = append(next, t.To)
		}
	}
	return next
}

// deterministicStep follows the first non-ε transition labeled sym leaving from.
func deterministicStep(a *domain.Automaton, from domain.StateID, sym domain.Symbol) (domain.StateID, bool) {
	for _, t := range a.Transitions {
		if t.From == from && !t.IsEpsilon() && t.Label == sym {
			return t.To, true
		}
	}
	return 0, false
}

// initialSet is {start} for a DFA and its ε-closure otherwise.
func initialSet(a *domain.Automaton) (domain.StateSet, error) {
	start, ok := a.StartState()
	if !ok {
		return nil, domain.ErrNoStartState
	}
	if a.Kind.Deterministic() {
		return domain.StateSet{start.ID}, nil
	}
	return EpsilonClosure(a, start.ID), nil
}

// step consumes one symbol from current. index is only used for error reporting.
func step(a *domain.Automaton, current domain.StateSet, sym domain.Symbol, index int) (domain.StateSet, error) {
	if a.Kind.Deterministic() {
		from := current[0]
		to, ok := deterministicStep(a, from, sym)
		if !ok {
			return nil, &domain.NoTransitionError{
				State:     from,
				StateName: a.Label(from),
				Symbol:    sym,
				Index:     index,
			}
		}
		return domain.StateSet{to}, nil
	}
	// An empty set stays empty: the run continues and ends rejected.
	return EpsilonClosure(a, move(a, current, sym)...), nil
}
