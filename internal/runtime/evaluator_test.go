package runtime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeenJaber1/automata-builder/internal/runtime"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// toggle is the two state DFA where 'a' enters q1 and 'b' returns to q0.
func toggle() *domain.Automaton {
	return &domain.Automaton{
		Kind:     domain.KindDFA,
		Alphabet: domain.Alphabet{"a", "b"},
		States: []domain.State{
			{ID: 0, Role: domain.RoleStart},
			{ID: 1, Role: domain.RoleAccept},
		},
		Transitions: []domain.Transition{
			{From: 0, To: 1, Label: "a"},
			{From: 0, To: 0, Label: "b"},
			{From: 1, To: 1, Label: "a"},
			{From: 1, To: 0, Label: "b"},
		},
	}
}

func TestRun_DFA(t *testing.T) {
	a := toggle()
	require.Empty(t, runtime.Validate(a))

	v, err := runtime.Run(a, "ab")
	require.NoError(t, err)
	assert.False(t, v.Accepted)
	assert.Equal(t, []domain.StateSet{{0}, {1}, {0}}, v.Trace)
	assert.Equal(t, domain.StateSet{0}, v.Final)

	v, err = runtime.Run(a, "a")
	require.NoError(t, err)
	assert.True(t, v.Accepted)
}

func TestRun_DFAEmptyInput(t *testing.T) {
	v, err := runtime.Run(withAccept(evenZeros()), "")
	require.NoError(t, err)
	assert.False(t, v.Accepted)
	assert.Equal(t, []domain.StateSet{{0}}, v.Trace)
}

func TestRun_DFAMissingTransitionValidation(t *testing.T) {
	a := toggle()
	a.Transitions = a.Transitions[:3]

	assert.Equal(t, []string{
		"DFA state 'q1' is missing a transition for symbol 'b'.",
	}, runtime.Validate(a).Messages())
}

func TestRun_DFANoTransition(t *testing.T) {
	a := toggle()
	a.Transitions = a.Transitions[:3]

	v, err := runtime.Run(a, "aab")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoTransition))

	var nt *domain.NoTransitionError
	require.ErrorAs(t, err, &nt)
	assert.Equal(t, domain.StateID(1), nt.State)
	assert.Equal(t, "b", nt.Symbol)
	assert.Equal(t, 2, nt.Index)
	assert.Equal(t, "No transition for 'b' from state q1", err.Error())
	assert.Equal(t, []domain.StateSet{{0}, {1}, {1}}, v.Trace)
}

func TestRun_DFASymbolOutsideAlphabet(t *testing.T) {
	_, err := runtime.Run(toggle(), "ac")
	assert.ErrorIs(t, err, domain.ErrNoTransition)
}

func TestRun_DFAIgnoresEpsilon(t *testing.T) {
	a := toggle()
	a.Transitions = append([]domain.Transition{{From: 0, To: 1, Label: domain.Epsilon}}, a.Transitions...)

	v, err := runtime.Run(a, "")
	require.NoError(t, err)
	assert.False(t, v.Accepted)
}

func TestRun_DFAFirstMatchWins(t *testing.T) {
	a := toggle()
	a.Transitions = append([]domain.Transition{{From: 0, To: 0, Label: "a"}}, a.Transitions...)

	v, err := runtime.Run(a, "a")
	require.NoError(t, err)
	assert.False(t, v.Accepted)
}

func TestRun_NoStartState(t *testing.T) {
	a := toggle()
	a.States[0].Role = domain.RoleNone

	_, err := runtime.Run(a, "a")
	assert.ErrorIs(t, err, domain.ErrNoStartState)

	a.Kind = domain.KindENFA
	_, err = runtime.Run(a, "a")
	assert.ErrorIs(t, err, domain.ErrNoStartState)
}

func TestRun_MultipleStartsUsesFirst(t *testing.T) {
	a := toggle()
	a.States[1].Role = domain.RoleStart

	v, err := runtime.Run(a, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StateSet{0}, v.Final)
}

func TestRun_NFA(t *testing.T) {
	a := endsInAB()

	tests := []struct {
		input string
		want  bool
	}{
		{"ab", true},
		{"aab", true},
		{"babab", true},
		{"", false},
		{"a", false},
		{"aba", false},
		{"ba", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := runtime.Run(a, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Accepted)
			assert.Len(t, v.Trace, len(tt.input)+1)
		})
	}
}

func TestRun_NFAEmptySetContinues(t *testing.T) {
	a := endsInAB()

	v, err := runtime.Run(a, "abz")
	require.NoError(t, err)
	assert.False(t, v.Accepted)
	assert.True(t, v.Final.IsEmpty())
	assert.Len(t, v.Trace, 4)

	v, err = runtime.Run(a, "zab")
	require.NoError(t, err)
	assert.False(t, v.Accepted)
}

func TestRun_ENFA(t *testing.T) {
	a := &domain.Automaton{
		Kind:   domain.KindENFA,
		States: []domain.State{{ID: 0, Role: domain.RoleStart}, {ID: 1, Role: domain.RoleAccept}},
		Transitions: []domain.Transition{
			{From: 0, To: 1, Label: domain.Epsilon},
		},
	}

	v, err := runtime.Run(a, "")
	require.NoError(t, err)
	assert.True(t, v.Accepted)
	assert.Equal(t, domain.StateSet{0, 1}, v.Final)
}

func TestRun_ENFAClosureAfterEachSymbol(t *testing.T) {
	a := epsilonChain()

	v, err := runtime.Run(a, "a")
	require.NoError(t, err)
	assert.True(t, v.Accepted)
	assert.Equal(t, []domain.StateSet{{0, 1}, {2, 3}}, v.Trace)

	v, err = runtime.Run(a, "aa")
	require.NoError(t, err)
	assert.False(t, v.Accepted)
}

func TestRun_EpsilonIsNeverConsumed(t *testing.T) {
	a := epsilonChain()

	v, err := runtime.Run(a, domain.Epsilon)
	require.NoError(t, err)
	assert.False(t, v.Accepted)
	assert.True(t, v.Final.IsEmpty())
}

func TestRun_NFAWithEpsilonIsPermissive(t *testing.T) {
	a := &domain.Automaton{
		Kind:   domain.KindNFA,
		States: []domain.State{{ID: 0, Role: domain.RoleStart}, {ID: 1, Role: domain.RoleAccept}},
		Transitions: []domain.Transition{
			{From: 0, To: 1, Label: domain.Epsilon},
		},
	}

	assert.Equal(t, []string{"NFA must not contain ε-transitions."}, runtime.Validate(a).Messages())

	v, err := runtime.Run(a, "")
	require.NoError(t, err)
	assert.True(t, v.Accepted)
}

func TestRun_MultiByteSymbols(t *testing.T) {
	a := &domain.Automaton{
		Kind:     domain.KindDFA,
		Alphabet: domain.Alphabet{"α", "β"},
		States:   []domain.State{{ID: 0, Role: domain.RoleStart}, {ID: 1, Role: domain.RoleAccept}},
		Transitions: []domain.Transition{
			{From: 0, To: 1, Label: "α"},
			{From: 0, To: 0, Label: "β"},
			{From: 1, To: 1, Label: "α"},
			{From: 1, To: 0, Label: "β"},
		},
	}

	v, err := runtime.Run(a, "βα")
	require.NoError(t, err)
	assert.True(t, v.Accepted)
	assert.Len(t, v.Trace, 3)
}

func TestRun_Deterministic(t *testing.T) {
	a := epsilonChain()
	first, err := runtime.Run(a, "a")
	require.NoError(t, err)
	second, err := runtime.Run(a, "a")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_ValidDFAIsComplete(t *testing.T) {
	a := withAccept(evenZeros())
	require.Empty(t, runtime.Validate(a))

	inputs := []string{"", "0", "1", "00", "0110", "101010", "111000111"}
	for _, in := range inputs {
		_, err := runtime.Run(a, in)
		assert.NoError(t, err, in)
	}
}
