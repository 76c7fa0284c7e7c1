package ports

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// contractAutomaton is a small ε-NFA used to exercise session serialization.
func contractAutomaton() *domain.Automaton {
	return &domain.Automaton{
		Kind:     domain.KindENFA,
		Alphabet: domain.Alphabet{"a", "b"},
		States: []domain.State{
			{ID: 0, Name: "start", Role: domain.RoleStart, X: 10, Y: 20},
			{ID: 1, Role: domain.RoleAccept},
		},
		Transitions: []domain.Transition{
			{From: 0, To: 1, Label: domain.Epsilon},
			{From: 1, To: 1, Label: "a"},
		},
	}
}

func contractSession(id string) *domain.Session {
	return &domain.Session{
		ID:        id,
		Automaton: contractAutomaton(),
		Input:     "aβ",
		Consumed:  1,
		Current:   domain.StateSet{1},
		Trace:     []domain.StateSet{{0, 1}, {1}},
		Status:    domain.StatusRunning,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	t.Helper()
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := contractSession(sessionID)

		err := store.Save(ctx, sessionID, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, session.Input, loaded.Input)
		assert.Equal(t, session.Consumed, loaded.Consumed)
		assert.Equal(t, session.Current, loaded.Current)
		assert.Equal(t, session.Trace, loaded.Trace)
		assert.Equal(t, session.Status, loaded.Status)
		assert.True(t, session.CreatedAt.Equal(loaded.CreatedAt))
		require.NotNil(t, loaded.Automaton)
		assert.Equal(t, session.Automaton, loaded.Automaton)
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		session := contractSession(sessionID)
		require.NoError(t, store.Save(ctx, sessionID, session))

		session.Consumed = 99
		session.Trace[0][0] = 42

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Consumed)
		assert.Equal(t, domain.StateID(0), loaded.Trace[0][0])
	})

	t.Run("Overwrite", func(t *testing.T) {
		session := contractSession(sessionID)
		session.Status = domain.StatusStuck
		session.Stuck = &domain.StuckInfo{State: 1, Symbol: "b"}
		require.NoError(t, store.Save(ctx, sessionID, session))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusStuck, loaded.Status)
		require.NotNil(t, loaded.Stuck)
		assert.Equal(t, "b", loaded.Stuck.Symbol)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, contractSession(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Delete of a missing session should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, contractSession(id1))
		_ = store.Save(ctx, id2, contractSession(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunHistoryContract verifies that a RunHistory implementation returns records newest first.
func RunHistoryContract(t *testing.T, history RunHistory) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 5 {
		rec := domain.RunRecord{
			ID:        fmt.Sprintf("run-%d", i),
			Automaton: "even-zeros",
			Kind:      domain.KindDFA,
			Input:     strings.Repeat("0", i),
			Accepted:  i%2 == 0,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if i == 3 {
			rec.Error = "No transition for 'x' from state q0"
		}
		require.NoError(t, history.Record(ctx, rec))
	}

	t.Run("Recent", func(t *testing.T) {
		recs, err := history.Recent(ctx, 3)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "run-4", recs[0].ID)
		assert.Equal(t, "run-3", recs[1].ID)
		assert.Equal(t, "run-2", recs[2].ID)
		assert.Equal(t, "No transition for 'x' from state q0", recs[1].Error)
		assert.True(t, recs[0].Accepted)
		assert.Equal(t, domain.KindDFA, recs[0].Kind)
		assert.True(t, base.Add(4*time.Minute).Equal(recs[0].CreatedAt))
	})

	t.Run("Recent All", func(t *testing.T) {
		recs, err := history.Recent(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, recs, 5)
	})
}
