package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/schema"
)

// Loader adapts a Loam repository to the ports.AutomatonLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[AutomatonMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[AutomatonMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// GetAutomaton decodes the document stored under id.
// Loam resolves "even-zeros" to even-zeros.md, .json or .yaml.
func (l *Loader) GetAutomaton(ctx context.Context, id string) (*domain.Automaton, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrAutomatonNotFound, id, err)
	}
	if !doc.Data.IsAutomaton() {
		return nil, fmt.Errorf("%w: %s declares no states", domain.ErrAutomatonNotFound, id)
	}

	a, err := schema.DecodeMap(doc.Data.raw())
	if err != nil {
		return nil, fmt.Errorf("automaton %s: %w", id, err)
	}
	return a, nil
}

// ListAutomata lists all automata in the repository, sorted by id.
func (l *Loader) ListAutomata(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		meta := doc.Data
		if !meta.IsAutomaton() {
			// The cache index only holds what Save was given; read the file itself.
			full, err := l.Repo.Get(ctx, doc.ID)
			if err != nil || !full.Data.IsAutomaton() {
				continue
			}
			meta = full.Data
		}
		// Use the ID from metadata if available, otherwise filename ID
		rawID := meta.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
