package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// History implements ports.RunHistory in memory.
// Safe for concurrent use.
type History struct {
	records []domain.RunRecord
	mu      sync.RWMutex
}

// NewHistory creates an empty run history.
func NewHistory() *History {
	return &History{}
}

// Record appends rec.
func (h *History) Record(ctx context.Context, rec domain.RunRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, rec)
	return nil
}

// Recent returns up to limit records, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := append([]domain.RunRecord{}, h.records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit < 0 {
		limit = 0
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
