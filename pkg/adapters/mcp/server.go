// Package mcp exposes the engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/LeenJaber1/automata-builder"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/ports"
	"github.com/LeenJaber1/automata-builder/pkg/runner"
	"github.com/LeenJaber1/automata-builder/pkg/schema"
)

// LibraryURI is the resource listing the automata known to the engine.
const LibraryURI = "automata://library"

// Args are the arguments shared by the automaton tools.
// Automaton is an inline JSON or YAML document; AutomatonID names one in the library.
type Args struct {
	Automaton   string `json:"automaton,omitempty"`
	AutomatonID string `json:"automaton_id,omitempty"`
	Input       string `json:"input,omitempty"`
}

// ValidateResult is the output of validate_automaton.
type ValidateResult struct {
	Valid  bool                     `json:"valid" jsonschema_description:"True when no structural errors were found"`
	Errors []domain.ValidationError `json:"errors" jsonschema_description:"Findings in report order"`
}

// StepReport is the output of step_automaton.
type StepReport struct {
	Steps   []domain.StepResult `json:"steps" jsonschema_description:"Every advance, the last one terminal"`
	Outcome domain.Outcome      `json:"outcome" jsonschema_description:"accepted, rejected or stuck"`
}

// LibraryResult is the output of list_automata.
type LibraryResult struct {
	Automata []string `json:"automata"`
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for rejected tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	automatonArgs := []mcp.ToolOption{
		mcp.WithString("automaton", mcp.Description("Automaton document as JSON or YAML: {type, alphabet, states, transitions}")),
		mcp.WithString("automaton_id", mcp.Description("Id of an automaton in the library, used when automaton is omitted")),
	}

	validateTool := mcp.NewTool("validate_automaton", append([]mcp.ToolOption{
		mcp.WithDescription("Check an automaton for structural errors under its declared type (DFA, NFA, ε-NFA)."),
		mcp.WithOutputSchema[ValidateResult](),
	}, automatonArgs...)...)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	runTool := mcp.NewTool("run_automaton", append([]mcp.ToolOption{
		mcp.WithDescription("Decide whether the automaton accepts the input string. Returns the visited state sets."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Test string, consumed one character at a time")),
		mcp.WithOutputSchema[domain.Verdict](),
	}, automatonArgs...)...)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	stepTool := mcp.NewTool("step_automaton", append([]mcp.ToolOption{
		mcp.WithDescription("Simulate the automaton one symbol at a time and return every step until the verdict."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Test string, consumed one character at a time")),
		mcp.WithOutputSchema[StepReport](),
	}, automatonArgs...)...)
	s.mcpServer.AddTool(stepTool, mcp.NewStructuredToolHandler(s.handleStep))

	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the ids of the automata in the library."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.engine.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(LibraryResult{Automata: ids})
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args Args) (ValidateResult, error) {
	a, err := s.resolve(ctx, args)
	if err != nil {
		return ValidateResult{}, err
	}
	errs := s.engine.Validate(ctx, a)
	if errs == nil {
		errs = domain.ValidationErrors{}
	}
	return ValidateResult{Valid: len(errs) == 0, Errors: errs}, nil
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args Args) (domain.Verdict, error) {
	input, err := s.sanitize(args.Input)
	if err != nil {
		return domain.Verdict{}, err
	}
	a, err := s.resolve(ctx, args)
	if err != nil {
		return domain.Verdict{}, err
	}
	verdict, err := s.engine.Run(ctx, a, input)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("run failed: %w", err)
	}
	return verdict, nil
}

func (s *Server) handleStep(ctx context.Context, request mcp.CallToolRequest, args Args) (StepReport, error) {
	input, err := s.sanitize(args.Input)
	if err != nil {
		return StepReport{}, err
	}
	a, err := s.resolve(ctx, args)
	if err != nil {
		return StepReport{}, err
	}

	sess, err := s.engine.Start(ctx, a, input)
	if err != nil {
		return StepReport{}, fmt.Errorf("start failed: %w", err)
	}
	report := StepReport{Steps: make([]domain.StepResult, 0, len(sess.Symbols())+1)}
	for {
		res, err := s.engine.Advance(ctx, sess)
		if err != nil {
			return StepReport{}, fmt.Errorf("advance failed: %w", err)
		}
		report.Steps = append(report.Steps, res)
		if res.Terminal() {
			report.Outcome = res.Outcome
			return report, nil
		}
	}
}

func (s *Server) sanitize(input string) (string, error) {
	clean, err := runner.SanitizeInput(input)
	if err != nil {
		s.logger.Warn("MCP: Input rejected", "err", err, "size", len(input))
		return "", fmt.Errorf("input rejected: %w", err)
	}
	return clean, nil
}

// resolve decodes the inline document of args, or loads it from the library.
func (s *Server) resolve(ctx context.Context, args Args) (*domain.Automaton, error) {
	if doc := strings.TrimSpace(args.Automaton); doc != "" {
		format := schema.FormatYAML
		if strings.HasPrefix(doc, "{") {
			format = schema.FormatJSON
		}
		a, err := schema.Decode([]byte(doc), format)
		if err != nil {
			return nil, fmt.Errorf("invalid automaton: %w", err)
		}
		return a, nil
	}
	if args.AutomatonID != "" {
		return s.engine.Load(ctx, args.AutomatonID)
	}
	return nil, errors.New("automaton or automaton_id is required")
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(LibraryURI, "Automaton Library",
		mcp.WithResourceDescription("Ids of the automata the engine can load"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.engine.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list automata: %w", err)
		}
		jsonBytes, _ := json.Marshal(LibraryResult{Automata: ids})

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      LibraryURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
