package automata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/loam"

	"github.com/LeenJaber1/automata-builder/internal/logging"
	"github.com/LeenJaber1/automata-builder/internal/runtime"
	loamAdapter "github.com/LeenJaber1/automata-builder/pkg/adapters/loam"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/ports"
)

// ErrNoLoader is returned by library operations when the engine has no loader.
var ErrNoLoader = errors.New("no automaton loader configured")

// Engine is the high-level entry point for the automata library.
// It wraps the pure runtime with logging and lifecycle hooks.
// An Engine holds no per-call state and is safe for concurrent use;
// sessions it hands out are owned by the caller.
type Engine struct {
	loader ports.AutomatonLoader
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	clock  func() time.Time
	Name   string
}

var _ ports.Engine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects the automaton library used by Load, List and Watch.
func WithLoader(l ports.AutomatonLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock replaces time.Now for event and session timestamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// New initializes an Engine. Without WithLoader it only works on automata handed to it.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.clock == nil {
		eng.clock = time.Now
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("library", eng.Name)
	}
	return eng
}

// Open initializes an Engine over the automaton library at dir, read through Loam.
// A loader given with WithLoader takes precedence and dir only names the library.
func Open(dir string, opts ...Option) (*Engine, error) {
	if dir == "" {
		return nil, fmt.Errorf("library directory is required")
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	probe := &Engine{}
	for _, opt := range opts {
		opt(probe)
	}

	if probe.loader == nil {
		// Strict mode keeps numbers as json.Number across Markdown, JSON and YAML;
		// the engine never writes to the library.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}
		typedRepo := loam.NewTypedRepository[loamAdapter.AutomatonMetadata](repo)
		opts = append(opts, WithLoader(loamAdapter.New(typedRepo)))
	}

	opts = append(opts, func(e *Engine) { e.Name = filepath.Base(absPath) })
	return New(opts...), nil
}

// Validate reports the structural findings for a. It never fails.
func (e *Engine) Validate(ctx context.Context, a *domain.Automaton) domain.ValidationErrors {
	errs := runtime.Validate(a)

	kind := kindOf(a)
	e.logger.DebugContext(ctx, "automaton validated",
		"automaton_kind", kind.String(),
		"errors", len(errs),
	)
	if e.hooks.OnValidate != nil {
		e.hooks.OnValidate(ctx, &domain.ValidationEvent{
			EventBase: e.event(domain.EventValidate, kind),
			Errors:    errs,
		})
	}
	return errs
}

// Run decides whether a accepts input.
// The verdict carries the visited state sets even when a DFA run fails with *domain.NoTransitionError.
func (e *Engine) Run(ctx context.Context, a *domain.Automaton, input string) (domain.Verdict, error) {
	if a == nil {
		return domain.Verdict{}, fmt.Errorf("automaton is required")
	}
	verdict, err := runtime.Run(a, input)

	if err != nil {
		e.logger.DebugContext(ctx, "run failed",
			"automaton_kind", a.Kind.String(),
			"input", input,
			"err", err,
		)
	} else {
		e.logger.DebugContext(ctx, "run finished",
			"automaton_kind", a.Kind.String(),
			"input", input,
			"accepted", verdict.Accepted,
			"final", verdict.Final.String(),
		)
	}
	if e.hooks.OnRun != nil {
		e.hooks.OnRun(ctx, &domain.RunEvent{
			EventBase: e.event(domain.EventRun, a.Kind),
			Input:     input,
			Accepted:  err == nil && verdict.Accepted,
			Err:       err,
		})
	}
	return verdict, err
}

// Start opens a step session over a snapshot of a.
func (e *Engine) Start(ctx context.Context, a *domain.Automaton, input string) (*domain.Session, error) {
	if a == nil {
		return nil, fmt.Errorf("automaton is required")
	}
	s, err := runtime.Start(a, input)
	if err != nil {
		return nil, err
	}
	now := e.clock()
	s.CreatedAt = now
	s.UpdatedAt = now

	e.logger.DebugContext(ctx, "session started",
		"automaton_kind", a.Kind.String(),
		"symbols", s.Remaining(),
		"current", s.Current.String(),
	)
	return s, nil
}

// Advance consumes one symbol of the session input, or reports its terminal verdict.
func (e *Engine) Advance(ctx context.Context, s *domain.Session) (domain.StepResult, error) {
	res, err := runtime.Advance(s)
	if err != nil {
		return res, err
	}
	s.UpdatedAt = e.clock()

	e.logger.Log(ctx, logging.LevelTrace, "session advanced",
		"session_id", s.ID,
		"outcome", string(res.Outcome),
		"consumed", res.Consumed,
		"current", res.States.String(),
	)
	if e.hooks.OnStep != nil {
		e.hooks.OnStep(ctx, &domain.StepEvent{
			EventBase: e.event(domain.EventStep, s.Automaton.Kind),
			SessionID: s.ID,
			Result:    res,
		})
	}
	return res, nil
}

// Reset discards the session progress; the session must be started again.
func (e *Engine) Reset(ctx context.Context, s *domain.Session) {
	if s == nil {
		return
	}
	runtime.Reset(s)
	e.logger.DebugContext(ctx, "session reset", "session_id", s.ID)
}

// Load resolves an automaton by id through the configured loader.
func (e *Engine) Load(ctx context.Context, id string) (*domain.Automaton, error) {
	if e.loader == nil {
		return nil, ErrNoLoader
	}
	return e.loader.GetAutomaton(ctx, id)
}

// List returns the ids known to the configured loader.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	if e.loader == nil {
		return nil, ErrNoLoader
	}
	return e.loader.ListAutomata(ctx)
}

// Watch returns a channel that receives the id of every automaton changed in the library.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying AutomatonLoader, or nil.
func (e *Engine) Loader() ports.AutomatonLoader {
	return e.loader
}

func (e *Engine) event(typ domain.EventType, kind domain.Kind) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.clock(),
		Type:      typ,
		Kind:      kind,
	}
}

func kindOf(a *domain.Automaton) domain.Kind {
	if a == nil {
		return ""
	}
	return a.Kind
}
