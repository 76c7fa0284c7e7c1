package runner

import (
	"context"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents one frame of the session.
	Output(ctx context.Context, f Frame) error

	// Input reads the next command.
	Input(ctx context.Context) (string, error)
}

// ContentRenderer transforms markdown before it is written, e.g. to ANSI.
type ContentRenderer func(string) (string, error)

// Frame is a snapshot of the session shown to the user after every command.
type Frame struct {
	SessionID string               `json:"session_id,omitempty"`
	Status    domain.SessionStatus `json:"status"`
	Input     string               `json:"input"`
	Consumed  int                  `json:"consumed"`
	Total     int                  `json:"total"`
	Current   []string             `json:"current"`
	Outcome   domain.Outcome       `json:"outcome,omitempty"`
	Symbol    string               `json:"symbol,omitempty"`
	Trace     [][]string           `json:"trace,omitempty"`
	// StuckAt names the state a DFA could not leave.
	StuckAt string `json:"stuck_at,omitempty"`
	Notice  string `json:"notice,omitempty"`
}

// Terminal reports whether the frame carries a verdict.
func (f Frame) Terminal() bool {
	return f.Outcome != "" && f.Outcome != domain.OutcomeContinue
}

func newFrame(s *domain.Session, res *domain.StepResult) Frame {
	f := Frame{
		SessionID: s.ID,
		Status:    s.Status,
		Input:     s.Input,
		Consumed:  s.Consumed,
		Total:     len(s.Symbols()),
		Current:   s.Current.Labels(s.Automaton),
	}
	if res == nil {
		return f
	}
	f.Outcome = res.Outcome
	f.Symbol = res.Symbol
	if res.State != nil {
		f.StuckAt = s.Automaton.Label(*res.State)
	}
	if f.Terminal() {
		f.Trace = make([][]string, len(res.Trace))
		for i, set := range res.Trace {
			f.Trace[i] = set.Labels(s.Automaton)
		}
	}
	return f
}
