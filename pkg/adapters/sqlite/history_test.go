package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeenJaber1/automata-builder/pkg/adapters/sqlite"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/ports"
)

func openHistory(t *testing.T) (*sqlite.History, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	h, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h, path
}

func TestHistory_Contract(t *testing.T) {
	h, _ := openHistory(t)
	ports.RunHistoryContract(t, h)
}

func TestHistory_FillsDefaults(t *testing.T) {
	h, _ := openHistory(t)
	ctx := context.Background()

	require.NoError(t, h.Record(ctx, domain.RunRecord{Automaton: "loop", Kind: domain.KindENFA, Input: "ab"}))

	recs, err := h.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.NotEmpty(t, recs[0].ID)
	assert.False(t, recs[0].CreatedAt.IsZero())
	assert.Equal(t, domain.KindENFA, recs[0].Kind)
}

func TestHistory_Persists(t *testing.T) {
	h, path := openHistory(t)
	ctx := context.Background()
	require.NoError(t, h.Record(ctx, domain.RunRecord{ID: "r1", Automaton: "loop", Input: "a", Accepted: true}))
	require.NoError(t, h.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	recs, err := reopened.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "r1", recs[0].ID)
	assert.True(t, recs[0].Accepted)
}

func TestHistory_NonPositiveLimit(t *testing.T) {
	h, _ := openHistory(t)
	recs, err := h.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
