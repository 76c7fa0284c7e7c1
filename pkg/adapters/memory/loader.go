package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// Loader implements ports.AutomatonLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	automata map[string]*domain.Automaton
	mu       sync.RWMutex
}

// NewLoader creates a loader holding copies of the given automata, keyed by id.
func NewLoader(automata map[string]*domain.Automaton) *Loader {
	l := &Loader{automata: make(map[string]*domain.Automaton, len(automata))}
	for id, a := range automata {
		l.automata[id] = a.Clone()
	}
	return l
}

// Add stores a copy of a under id, replacing any previous entry.
func (l *Loader) Add(id string, a *domain.Automaton) error {
	if id == "" {
		return fmt.Errorf("automaton missing ID")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.automata[id] = a.Clone()
	return nil
}

// GetAutomaton returns a copy of the automaton stored under id.
func (l *Loader) GetAutomaton(ctx context.Context, id string) (*domain.Automaton, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, ok := l.automata[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, id)
	}
	return a.Clone(), nil
}

// ListAutomata returns all available ids.
func (l *Loader) ListAutomata(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.automata))
	for k := range l.automata {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
