package runtime_test

import "github.com/LeenJaber1/automata-builder/pkg/domain"

// evenZeros accepts binary strings with an even number of '0'.
func evenZeros() *domain.Automaton {
	return &domain.Automaton{
		Kind:     domain.KindDFA,
		Alphabet: domain.Alphabet{"0", "1"},
		States: []domain.State{
			{ID: 0, Name: "even", Role: domain.RoleStart},
			{ID: 1, Name: "odd"},
		},
		Transitions: []domain.Transition{
			{From: 0, To: 1, Label: "0"},
			{From: 0, To: 0, Label: "1"},
			{From: 1, To: 0, Label: "0"},
			{From: 1, To: 1, Label: "1"},
		},
	}
}

// withAccept marks the given states as accepting, leaving the start role in place.
func withAccept(a *domain.Automaton, ids ...domain.StateID) *domain.Automaton {
	for i := range a.States {
		for _, id := range ids {
			if a.States[i].ID == id && a.States[i].Role != domain.RoleStart {
				a.States[i].Role = domain.RoleAccept
			}
		}
	}
	return a
}

// endsInAB is an NFA over {a,b} accepting strings ending in "ab".
func endsInAB() *domain.Automaton {
	return &domain.Automaton{
		Kind:     domain.KindNFA,
		Alphabet: domain.Alphabet{"a", "b"},
		States: []domain.State{
			{ID: 0, Role: domain.RoleStart},
			{ID: 1},
			{ID: 2, Role: domain.RoleAccept},
		},
		Transitions: []domain.Transition{
			{From: 0, To: 0, Label: "a"},
			{From: 0, To: 0, Label: "b"},
			{From: 0, To: 1, Label: "a"},
			{From: 1, To: 2, Label: "b"},
		},
	}
}

// epsilonChain is an ε-NFA q0 -ε-> q1 -a-> q2 -ε-> q3 with q3 accepting.
func epsilonChain() *domain.Automaton {
	return &domain.Automaton{
		Kind:     domain.KindENFA,
		Alphabet: domain.Alphabet{"a"},
		States: []domain.State{
			{ID: 0, Role: domain.RoleStart},
			{ID: 1},
			{ID: 2},
			{ID: 3, Role: domain.RoleAccept},
		},
		Transitions: []domain.Transition{
			{From: 0, To: 1, Label: domain.Epsilon},
			{From: 1, To: 2, Label: "a"},
			{From: 2, To: 3, Label: domain.Epsilon},
		},
	}
}
