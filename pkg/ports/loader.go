package ports

import (
	"context"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// AutomatonLoader defines how the engine resolves stored automata.
// This allows the storage layer (Loam, FS, Memory) to be decoupled.
type AutomatonLoader interface {
	// GetAutomaton returns the automaton stored under id.
	// It returns an error wrapping domain.ErrAutomatonNotFound if there is none.
	GetAutomaton(ctx context.Context, id string) (*domain.Automaton, error)

	// ListAutomata returns the ids of every stored automaton, sorted.
	ListAutomata(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload of the automaton library.
type Watchable interface {
	// Watch returns a channel that receives the id of every changed automaton.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
