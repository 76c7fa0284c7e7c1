package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/ports"
)

// LoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.AutomatonLoader.
// expected maps every id the loader must know to the automaton it must return.
func LoaderContractTest(t *testing.T, loader ports.AutomatonLoader, expected map[string]*domain.Automaton) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetAutomaton_Success", func(t *testing.T) {
		for id, want := range expected {
			got, err := loader.GetAutomaton(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting automaton %s: %v", id, err)
			}
			if got.Kind != want.Kind {
				t.Errorf("kind mismatch for %s. got %q, want %q", id, got.Kind, want.Kind)
			}
			if len(got.States) != len(want.States) || len(got.Transitions) != len(want.Transitions) {
				t.Errorf("shape mismatch for %s. got %d states/%d transitions, want %d/%d",
					id, len(got.States), len(got.Transitions), len(want.States), len(want.Transitions))
			}
		}
	})

	t.Run("GetAutomaton_NotFound", func(t *testing.T) {
		_, err := loader.GetAutomaton(ctx, "non-existent-automaton")
		if !errors.Is(err, domain.ErrAutomatonNotFound) {
			t.Errorf("expected ErrAutomatonNotFound, got %v", err)
		}
	})

	t.Run("ListAutomata", func(t *testing.T) {
		ids, err := loader.ListAutomata(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing automata: %v", err)
		}

		if len(ids) != len(expected) {
			t.Errorf("expected %d automata, got %d", len(expected), len(ids))
		}

		for _, id := range ids {
			if _, ok := expected[id]; !ok {
				t.Errorf("unexpected id %q listed", id)
			}
		}
		for i := 1; i < len(ids); i++ {
			if ids[i-1] > ids[i] {
				t.Errorf("ids not sorted: %v", ids)
				break
			}
		}
	})
}
