package ports

import (
	"context"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// Engine is the call contract adapters (HTTP, MCP) drive.
// Every operation works on values handed to it; sessions are owned by the caller.
type Engine interface {
	// Validate reports structural findings for a under its declared kind.
	Validate(ctx context.Context, a *domain.Automaton) domain.ValidationErrors

	// Run decides whether a accepts input in one shot.
	Run(ctx context.Context, a *domain.Automaton, input string) (domain.Verdict, error)

	// Start opens a step session over a snapshot of a.
	Start(ctx context.Context, a *domain.Automaton, input string) (*domain.Session, error)

	// Advance consumes one symbol of the session input, or reports its terminal verdict.
	Advance(ctx context.Context, s *domain.Session) (domain.StepResult, error)

	// Load resolves an automaton by id through the configured loader.
	Load(ctx context.Context, id string) (*domain.Automaton, error)

	// List returns the ids known to the configured loader.
	List(ctx context.Context) ([]string, error)
}
