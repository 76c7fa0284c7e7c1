package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the verdict renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Output(ctx context.Context, f Frame) error {
	if f.Notice != "" {
		fmt.Fprintln(h.Writer, f.Notice)
	}

	switch {
	case f.Terminal():
		return h.verdict(f)
	case f.Outcome == "":
		_, err := fmt.Fprintf(h.Writer, "Input %q (%d/%d)\nCurrent: %s\n", f.Input, f.Consumed, f.Total, braces(f.Current))
		return err
	default:
		_, err := fmt.Fprintf(h.Writer, "[%d/%d] '%s' -> %s\n", f.Consumed, f.Total, f.Symbol, braces(f.Current))
		return err
	}
}

func (h *TextHandler) verdict(f Frame) error {
	var b strings.Builder
	switch f.Outcome {
	case domain.OutcomeStuck:
		fmt.Fprintf(&b, "**Stuck**: no transition for '%s' from state %s.\n", f.Symbol, f.StuckAt)
	case domain.OutcomeAccepted:
		fmt.Fprintf(&b, "**Accepted** %q.\n", f.Input)
	default:
		fmt.Fprintf(&b, "**Rejected** %q.\n", f.Input)
	}

	path := make([]string, len(f.Trace))
	for i, set := range f.Trace {
		path[i] = braces(set)
	}
	fmt.Fprintf(&b, "\nTrace: %s\n", strings.Join(path, " → "))

	output := b.String()
	if h.Renderer != nil {
		if rendered, err := h.Renderer(output); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, strings.TrimSpace(output))
	return err
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	fmt.Fprint(h.Writer, "> ")

	text, err := h.Reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && text != "" {
			return strings.TrimSpace(text), nil
		}
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func braces(labels []string) string {
	return "{" + strings.Join(labels, ", ") + "}"
}
