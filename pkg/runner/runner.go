package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/ports"
)

// Stepper is the part of the engine the runner drives.
type Stepper interface {
	Start(ctx context.Context, a *domain.Automaton, input string) (*domain.Session, error)
	Advance(ctx context.Context, s *domain.Session) (domain.StepResult, error)
	Reset(ctx context.Context, s *domain.Session)
}

// Runner handles the interactive step loop using provided IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	// Handler is the strategy for IO. If nil, one is built from Input, Output and Headless.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Store persists the session after every command.
	// If nil, sessions are ephemeral.
	Store ports.SessionStore

	Input  io.Reader
	Output io.Writer
	// Headless consumes the whole input without waiting for commands.
	Headless bool
	Renderer ContentRenderer
}

// NewRunner creates a new Runner with default Stdin/Stdout.
func NewRunner() *Runner {
	return &Runner{
		Input:    os.Stdin,
		Output:   os.Stdout,
		Headless: false,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

type command int

const (
	cmdNext command = iota
	cmdRun
	cmdReset
	cmdQuit
	cmdUnknown
)

func parseCommand(s string) command {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "next", "n":
		return cmdNext
	case "run", "c":
		return cmdRun
	case "reset", "r":
		return cmdReset
	case "quit", "q", "exit":
		return cmdQuit
	default:
		return cmdUnknown
	}
}

// Run drives s until it becomes terminal, the user quits, input ends or ctx is cancelled.
// It returns the session in its latest state; after a reset that is a fresh session with the same id.
func (r *Runner) Run(ctx context.Context, engine Stepper, s *domain.Session) (*domain.Session, error) {
	if s == nil || s.Automaton == nil {
		return s, domain.ErrSessionNotStarted
	}
	handler := r.resolveHandler()
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if s.Status.Terminal() {
		res, err := engine.Advance(ctx, s)
		if err != nil {
			return s, err
		}
		return s, handler.Output(ctx, newFrame(s, &res))
	}
	if err := handler.Output(ctx, newFrame(s, nil)); err != nil {
		return s, fmt.Errorf("output error: %w", err)
	}

	autoRun := r.Headless
	for {
		if err := ctx.Err(); err != nil {
			return s, err
		}

		cmd := cmdNext
		if !autoRun {
			text, err := handler.Input(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) {
					return s, nil
				}
				return s, fmt.Errorf("input error: %w", err)
			}
			cmd = parseCommand(text)
		}

		switch cmd {
		case cmdQuit:
			return s, nil
		case cmdUnknown:
			f := newFrame(s, nil)
			f.Notice = "Commands: [Enter]/next, run, reset, quit."
			if err := handler.Output(ctx, f); err != nil {
				return s, fmt.Errorf("output error: %w", err)
			}
			continue
		case cmdReset:
			restarted, err := r.restart(ctx, engine, s)
			if err != nil {
				return s, err
			}
			s = restarted
			logger.Debug("session reset", "session_id", s.ID)
			f := newFrame(s, nil)
			f.Notice = "Reset."
			if err := handler.Output(ctx, f); err != nil {
				return s, fmt.Errorf("output error: %w", err)
			}
			if err := r.save(ctx, s); err != nil {
				return s, err
			}
			continue
		case cmdRun:
			autoRun = true
		}

		res, err := engine.Advance(ctx, s)
		if err != nil {
			return s, fmt.Errorf("advance error: %w", err)
		}
		logger.Debug("step", "session_id", s.ID, "outcome", string(res.Outcome), "consumed", res.Consumed)

		if err := r.save(ctx, s); err != nil {
			return s, err
		}
		if err := handler.Output(ctx, newFrame(s, &res)); err != nil {
			return s, fmt.Errorf("output error: %w", err)
		}
		if res.Terminal() {
			return s, nil
		}
	}
}

// restart resets s and starts it again over its own snapshot and input.
func (r *Runner) restart(ctx context.Context, engine Stepper, s *domain.Session) (*domain.Session, error) {
	a, input, id := s.Automaton, s.Input, s.ID
	engine.Reset(ctx, s)

	fresh, err := engine.Start(ctx, a, input)
	if err != nil {
		return s, fmt.Errorf("restart error: %w", err)
	}
	fresh.ID = id
	return fresh, nil
}

func (r *Runner) save(ctx context.Context, s *domain.Session) error {
	if r.Store == nil || s.ID == "" {
		return nil
	}
	if err := r.Store.Save(ctx, s.ID, s); err != nil {
		return fmt.Errorf("critical persistence error: %w", err)
	}
	return nil
}

func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	if r.Headless {
		return NewJSONHandler(r.Input, r.Output)
	}
	return NewTextHandler(r.Input, r.Output, WithTextHandlerRenderer(r.Renderer))
}
