package ports

import (
	"context"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// SessionStore defines the interface for persisting step sessions.
// This allows a session to be stopped and resumed across processes.
type SessionStore interface {
	// Save persists the session under sessionID.
	Save(ctx context.Context, sessionID string, session *domain.Session) error

	// Load retrieves the session for sessionID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the ids of all stored sessions.
	List(ctx context.Context) ([]string, error)
}

// RunHistory records finished one-shot runs.
type RunHistory interface {
	// Record appends a run to the history.
	Record(ctx context.Context, rec domain.RunRecord) error

	// Recent returns at most limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
