package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeenJaber1/automata-builder/pkg/adapters/memory"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
	contract "github.com/LeenJaber1/automata-builder/pkg/ports/tests"
)

func loop() *domain.Automaton {
	return &domain.Automaton{
		Kind:        domain.KindDFA,
		Alphabet:    domain.Alphabet{"a"},
		States:      []domain.State{{ID: 0, Role: domain.RoleStart}},
		Transitions: []domain.Transition{{From: 0, To: 0, Label: "a"}},
	}
}

func TestInMemoryLoader_Contract(t *testing.T) {
	data := map[string]*domain.Automaton{
		"loop":  loop(),
		"empty": {Kind: domain.KindNFA, States: []domain.State{{ID: 0, Role: domain.RoleStart}}},
	}

	contract.LoaderContractTest(t, memory.NewLoader(data), data)
}

func TestInMemoryLoader_ReturnsCopies(t *testing.T) {
	loader := memory.NewLoader(nil)
	original := loop()
	require.NoError(t, loader.Add("loop", original))
	original.Transitions = nil

	got, err := loader.GetAutomaton(context.Background(), "loop")
	require.NoError(t, err)
	assert.Len(t, got.Transitions, 1)

	got.States[0].Role = domain.RoleNone
	again, err := loader.GetAutomaton(context.Background(), "loop")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStart, again.States[0].Role)

	assert.Error(t, loader.Add("", loop()))
}
