package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/LeenJaber1/automata-builder"
	"github.com/LeenJaber1/automata-builder/internal/config"
	"github.com/LeenJaber1/automata-builder/internal/logging"
	"github.com/LeenJaber1/automata-builder/internal/presentation/tui"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/observability"
	"github.com/LeenJaber1/automata-builder/pkg/runner"
	"github.com/LeenJaber1/automata-builder/pkg/schema"
)

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	Dir        string
	ConfigPath string
	LogLevel   string
}

// App carries what commands need: configuration, logger and output streams.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	// Renderer turns Markdown reports into terminal output.
	Renderer runner.ContentRenderer
	// Interactive is true when both stdin and stdout are terminals.
	Interactive bool
}

// NewApp loads the configuration and applies the flags on top of it.
func NewApp(opts GlobalOptions, in io.Reader, out, errOut io.Writer) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Dir != "" {
		cfg.Library.Dir = opts.Dir
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Logger:   logging.NewWithWriter(errOut, level),
		In:       in,
		Out:      out,
		Err:      errOut,
		Renderer: tui.Plain,
	}
	if isTerminal(in) && isTerminal(out) {
		app.Interactive = true
		app.Renderer = tui.NewRenderer()
	}
	return app, nil
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// OpenEngine opens the engine over the configured library.
func (a *App) OpenEngine(hooks ...domain.LifecycleHooks) (*automata.Engine, error) {
	opts := []automata.Option{automata.WithLogger(a.Logger)}
	if len(hooks) > 0 {
		opts = append(opts, automata.WithLifecycleHooks(observability.ChainHooks(hooks...)))
	}
	engine, err := automata.Open(a.Config.Library.Dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// Print renders markdown and writes it to Out.
func (a *App) Print(markdown string) error {
	out, err := a.Renderer(markdown)
	if err != nil {
		out = markdown
	}
	_, err = fmt.Fprint(a.Out, out)
	return err
}

// Sanitize applies the configured input size limit.
func (a *App) Sanitize(input string) (string, error) {
	return runner.SanitizeInputLimit(input, a.Config.MaxInputSize)
}

var documentExtensions = map[string]bool{".json": true, ".yaml": true, ".yml": true, ".md": true}

// ResolveAutomaton reads ref as a document file when it points to one, otherwise loads it from the library.
// The returned name is the file name without extension, or the library id.
func ResolveAutomaton(ctx context.Context, engine *automata.Engine, ref string) (*domain.Automaton, string, error) {
	if ref == "" {
		return nil, "", errors.New("an automaton file or library id is required")
	}

	ext := strings.ToLower(filepath.Ext(ref))
	if documentExtensions[ext] {
		if info, err := os.Stat(ref); err == nil && !info.IsDir() {
			a, err := schema.DecodeFile(ref)
			if err != nil {
				return nil, "", fmt.Errorf("failed to read %s: %w", ref, err)
			}
			return a, strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref)), nil
		}
	}

	a, err := engine.Load(ctx, ref)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load %q: %w", ref, err)
	}
	return a, ref, nil
}
