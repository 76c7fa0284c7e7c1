package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LeenJaber1/automata-builder/internal/presentation/report"
)

// History prints the most recent runs.
func History(ctx context.Context, app *App, limit int, asJSON bool) error {
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}
	h, err := app.OpenHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	records, err := h.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read run history: %w", err)
	}
	if asJSON {
		enc := json.NewEncoder(app.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	return app.Print(report.History(records))
}

// List prints the ids in the library.
func List(ctx context.Context, app *App) error {
	engine, err := app.OpenEngine()
	if err != nil {
		return err
	}
	ids, err := engine.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list library: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintf(app.Out, "No automata found in %s.\n", app.Config.Library.Dir)
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(app.Out, id)
	}
	return nil
}
