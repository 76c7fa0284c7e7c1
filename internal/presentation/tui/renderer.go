package tui

import (
	"github.com/charmbracelet/glamour"

	"github.com/LeenJaber1/automata-builder/pkg/runner"
)

// NewRenderer returns a runner.ContentRenderer backed by glamour.
// If the terminal renderer cannot be built, markdown is passed through unchanged.
func NewRenderer() runner.ContentRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Plain is a renderer that leaves markdown untouched, for pipes and --no-color.
func Plain(markdown string) (string, error) {
	return markdown, nil
}
