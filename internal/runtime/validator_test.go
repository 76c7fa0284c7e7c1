package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeenJaber1/automata-builder/internal/runtime"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

func TestValidate_CompleteDFA(t *testing.T) {
	errs := runtime.Validate(evenZeros())
	assert.Empty(t, errs)
	assert.NoError(t, errs.Err())
}

func TestValidate_Nil(t *testing.T) {
	assert.Empty(t, runtime.Validate(nil))
}

func TestValidate_DFAMissingAndDuplicate(t *testing.T) {
	a := &domain.Automaton{
		Kind:     domain.KindDFA,
		Alphabet: domain.Alphabet{"a", "b"},
		States: []domain.State{
			{ID: 0, Role: domain.RoleStart},
			{ID: 1, Name: "B", Role: domain.RoleAccept},
		},
		Transitions: []domain.Transition{
			{From: 0, To: 1, Label: "a"},
			{From: 0, To: 0, Label: "a"},
			{From: 0, To: 1, Label: "b"},
			{From: 1, To: 1, Label: "a"},
		},
	}

	errs := runtime.Validate(a)
	assert.Equal(t, []string{
		"DFA state 'q0' has multiple transitions for symbol 'a'.",
		"DFA state 'B' is missing a transition for symbol 'b'.",
	}, errs.Messages())
	assert.Equal(t, domain.CodeDFAMultipleTransitions, errs[0].Code)
	require.NotNil(t, errs[1].State)
	assert.Equal(t, domain.StateID(1), *errs[1].State)
	assert.Equal(t, "b", errs[1].Symbol)
}

func TestValidate_DFAEpsilon(t *testing.T) {
	a := evenZeros()
	a.Transitions = append(a.Transitions,
		domain.Transition{From: 1, To: 0, Label: domain.Epsilon},
		domain.Transition{From: 1, To: 1, Label: domain.Epsilon},
	)

	errs := runtime.Validate(a)
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, domain.CodeDFAEpsilon, e.Code)
		assert.Equal(t, "DFA cannot have epsilon (ε) transitions. Problem at state 'odd'.", e.Message)
	}
}

func TestValidate_DFAEpsilonDoesNotCountAsSymbol(t *testing.T) {
	a := &domain.Automaton{
		Kind:     domain.KindDFA,
		Alphabet: domain.Alphabet{"a"},
		States:   []domain.State{{ID: 0, Role: domain.RoleStart}},
		Transitions: []domain.Transition{
			{From: 0, To: 0, Label: domain.Epsilon},
		},
	}

	assert.Equal(t, []string{
		"DFA cannot have epsilon (ε) transitions. Problem at state 'q0'.",
		"DFA state 'q0' is missing a transition for symbol 'a'.",
	}, runtime.Validate(a).Messages())
}

func TestValidate_DFAEpsilonInAlphabetNeedsNoTransition(t *testing.T) {
	a := &domain.Automaton{
		Kind:        domain.KindDFA,
		Alphabet:    domain.Alphabet{"a", domain.Epsilon},
		States:      []domain.State{{ID: 0, Role: domain.RoleStart}},
		Transitions: []domain.Transition{{From: 0, To: 0, Label: "a"}},
	}

	assert.Equal(t, []string{"Alphabet must not contain ε."}, runtime.Validate(a).Messages())
}

func TestValidate_EmptyKindIsDFA(t *testing.T) {
	a := evenZeros()
	a.Kind = ""
	a.Transitions = a.Transitions[:3]

	assert.Equal(t, []string{
		"DFA state 'odd' is missing a transition for symbol '1'.",
	}, runtime.Validate(a).Messages())
}

func TestValidate_NFA(t *testing.T) {
	assert.Empty(t, runtime.Validate(endsInAB()))

	a := endsInAB()
	a.Transitions = append(a.Transitions,
		domain.Transition{From: 0, To: 2, Label: domain.Epsilon},
		domain.Transition{From: 2, To: 0, Label: domain.Epsilon},
	)
	assert.Equal(t, []string{
		"NFA must not contain ε-transitions.",
		"NFA must not contain ε-transitions.",
	}, runtime.Validate(a).Messages())
}

func TestValidate_ENFAAcceptsEverything(t *testing.T) {
	assert.Empty(t, runtime.Validate(epsilonChain()))
}

func TestValidate_Generic(t *testing.T) {
	a := &domain.Automaton{
		Kind:     domain.KindENFA,
		Alphabet: domain.Alphabet{"a", domain.Epsilon},
		States: []domain.State{
			{ID: 0, Role: domain.RoleStart},
			{ID: 1},
			{ID: 1},
			{ID: 2, Name: "s2", Role: domain.RoleStart},
		},
		Transitions: []domain.Transition{
			{From: 0, To: 1, Label: "a"},
			{From: 0, To: 7, Label: "a"},
			{From: 9, To: 9, Label: domain.Epsilon},
		},
	}

	errs := runtime.Validate(a)
	assert.Equal(t, []string{
		"Alphabet must not contain ε.",
		"Duplicate state id 1.",
		"Automaton has multiple start states: 'q0', 's2'.",
		"Transition 1 references unknown state 7.",
		"Transition 2 references unknown state 9.",
	}, errs.Messages())
	assert.Equal(t, domain.CodeDanglingReference, errs[4].Code)
}

func TestValidate_Deterministic(t *testing.T) {
	a := endsInAB()
	a.Kind = domain.KindDFA
	first := runtime.Validate(a)
	second := runtime.Validate(a)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
