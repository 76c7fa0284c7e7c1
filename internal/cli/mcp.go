package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/LeenJaber1/automata-builder/pkg/adapters/mcp"
	"github.com/LeenJaber1/automata-builder/pkg/observability"
)

// MCPOptions configures the mcp command.
type MCPOptions struct {
	// Transport is "stdio" or "sse".
	Transport string
	Port      int
}

// ServeMCP exposes the engine as MCP tools. Logs go to stderr so stdio stays clean.
func ServeMCP(ctx context.Context, app *App, opts MCPOptions) error {
	engine, err := app.OpenEngine(observability.AuditHooks(app.Logger))
	if err != nil {
		return err
	}
	srv := mcp.NewServer(engine, mcp.WithLogger(app.Logger))

	switch opts.Transport {
	case "", "stdio":
		app.Logger.Info("starting MCP server", "transport", "stdio")
		return srv.ServeStdio()
	case "sse":
		app.Logger.Info("starting MCP server", "transport", "sse", "port", opts.Port)
		if err := srv.ServeSSE(ctx, opts.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		app.Logger.Info("MCP server stopped gracefully")
		return nil
	}
	return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", opts.Transport)
}
