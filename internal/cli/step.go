package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/LeenJaber1/automata-builder"
	"github.com/LeenJaber1/automata-builder/internal/presentation/tui"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/runner"
)

// StepOptions configures the step command.
type StepOptions struct {
	Ref   string
	Input string
	// SessionID persists the session through the configured backend so it can be resumed.
	SessionID string
	// Fresh discards a stored session with the same id before starting.
	Fresh bool
	// Headless runs to the end and prints JSON frames. It is implied when stdin is not a terminal.
	Headless bool
}

// Step drives an interactive step-by-step session.
// With a session id, an existing session is resumed and Ref may be omitted.
func Step(ctx context.Context, app *App, opts StepOptions) error {
	engine, err := app.OpenEngine()
	if err != nil {
		return err
	}

	r := runner.NewRunner()
	r.Input = app.In
	r.Output = app.Out
	r.Logger = app.Logger
	r.Headless = opts.Headless || !app.Interactive
	r.Renderer = app.Renderer
	if !r.Headless {
		tui.PrintBanner(app.Out, automata.Version)
	}

	var s *domain.Session
	if opts.SessionID != "" {
		p, err := app.OpenPersistence(ctx)
		if err != nil {
			return err
		}
		defer p.Close()
		r.Store = p.Manager.Store()

		if opts.Fresh {
			if err := p.Manager.Delete(ctx, opts.SessionID); err != nil {
				return fmt.Errorf("failed to reset session: %w", err)
			}
		}
		s, err = p.Manager.Load(ctx, opts.SessionID)
		switch {
		case err == nil:
			app.Logger.Info("session resumed", "session_id", s.ID, "consumed", s.Consumed)
		case errors.Is(err, domain.ErrSessionNotFound):
			s = nil
		default:
			return err
		}
	}

	if s == nil {
		a, _, err := ResolveAutomaton(ctx, engine, opts.Ref)
		if err != nil {
			return err
		}
		input, err := app.Sanitize(opts.Input)
		if err != nil {
			return fmt.Errorf("invalid input: %w", err)
		}
		s, err = engine.Start(ctx, a, input)
		if err != nil {
			return err
		}
		s.ID = opts.SessionID
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if r.Store != nil {
			if err := r.Store.Save(ctx, s.ID, s); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
		}
		app.Logger.Debug("session started", "session_id", s.ID)
	}

	final, err := r.Run(ctx, engine, s)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}
	if final != nil && opts.SessionID != "" && !final.Status.Terminal() {
		fmt.Fprintf(app.Err, ">>> Session '%s' paused at %d/%d.\n", final.ID, final.Consumed, len(final.Symbols()))
	}
	return nil
}
