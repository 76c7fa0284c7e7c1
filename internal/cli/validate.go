package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LeenJaber1/automata-builder"
	"github.com/LeenJaber1/automata-builder/internal/presentation/report"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// ErrInvalid is returned when at least one automaton has validation findings.
var ErrInvalid = errors.New("validation failed")

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	// Refs are files or library ids. Empty means every automaton in the library.
	Refs  []string
	JSON  bool
	Watch bool
}

type validateReport struct {
	Automaton string                  `json:"automaton"`
	Kind      domain.Kind             `json:"kind"`
	Valid     bool                    `json:"valid"`
	Errors    domain.ValidationErrors `json:"errors"`
}

// Validate checks the structure of each automaton and prints a report.
func Validate(ctx context.Context, app *App, opts ValidateOptions) error {
	engine, err := app.OpenEngine()
	if err != nil {
		return err
	}
	if opts.Watch {
		return watchValidate(ctx, app, engine, opts)
	}
	return validateOnce(ctx, app, engine, opts)
}

func validateOnce(ctx context.Context, app *App, engine *automata.Engine, opts ValidateOptions) error {
	refs := opts.Refs
	if len(refs) == 0 {
		ids, err := engine.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list library: %w", err)
		}
		if len(ids) == 0 {
			return fmt.Errorf("no automata found in %s", app.Config.Library.Dir)
		}
		refs = ids
	}

	invalid := 0
	reports := make([]validateReport, 0, len(refs))
	for _, ref := range refs {
		a, name, err := ResolveAutomaton(ctx, engine, ref)
		if err != nil {
			return err
		}
		errs := engine.Validate(ctx, a)
		if len(errs) > 0 {
			invalid++
		}

		if opts.JSON {
			reports = append(reports, validateReport{
				Automaton: name,
				Kind:      a.Kind,
				Valid:     len(errs) == 0,
				Errors:    errs,
			})
			continue
		}
		if err := app.Print(report.Validation(name, a, errs)); err != nil {
			return err
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(app.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d automata", ErrInvalid, invalid, len(refs))
	}
	return nil
}

// watchValidate re-validates whenever the library changes, until ctx is done.
func watchValidate(ctx context.Context, app *App, engine *automata.Engine, opts ValidateOptions) error {
	events, err := engine.Watch(ctx)
	if err != nil {
		return fmt.Errorf("library does not support watching: %w", err)
	}
	app.Logger.Info("watching library", "path", app.Config.Library.Dir)

	for {
		if err := validateOnce(ctx, app, engine, opts); err != nil && !errors.Is(err, ErrInvalid) {
			app.Logger.Error("validation error", "err", err)
		}
		fmt.Fprintln(app.Err, ">>> Waiting for changes...")

		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-events:
			if !ok {
				return nil
			}
			app.Logger.Info("change detected", "automaton", id)
			// Let editors finish writing before reading again.
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(100 * time.Millisecond):
			}
		}
	}
}
