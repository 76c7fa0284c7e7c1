package domain

import "time"

// SessionStatus is the lifecycle position of a step session.
type SessionStatus string

const (
	StatusIdle     SessionStatus = "idle"
	StatusRunning  SessionStatus = "running"
	StatusAccepted SessionStatus = "accepted"
	StatusRejected SessionStatus = "rejected"
	StatusStuck    SessionStatus = "stuck"
)

// Terminal reports whether no further symbol can be consumed.
func (s SessionStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusStuck
}

// StuckInfo records where a DFA step found no matching transition.
type StuckInfo struct {
	State  StateID `json:"state"`
	Symbol Symbol  `json:"symbol"`
}

// Session is the transient state of a step-by-step simulation.
// It owns a snapshot of the automaton so that it can be stored and resumed.
type Session struct {
	ID        string        `json:"id"`
	Automaton *Automaton    `json:"automaton,omitempty"`
	Input     string        `json:"input"`
	Consumed  int           `json:"consumed"`
	Current   StateSet      `json:"current"`
	Trace     []StateSet    `json:"trace"`
	Status    SessionStatus `json:"status"`
	Stuck     *StuckInfo    `json:"stuck,omitempty"`
	CreatedAt time.Time     `json:"created_at,omitzero"`
	UpdatedAt time.Time     `json:"updated_at,omitzero"`
}

// Symbols returns the input split into code points.
func (s *Session) Symbols() []Symbol {
	runes := []rune(s.Input)
	out := make([]Symbol, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

// Remaining returns the number of symbols still to be consumed.
func (s *Session) Remaining() int {
	return len([]rune(s.Input)) - s.Consumed
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Automaton = s.Automaton.Clone()
	c.Current = append(StateSet(nil), s.Current...)
	c.Trace = make([]StateSet, len(s.Trace))
	for i, set := range s.Trace {
		c.Trace[i] = append(StateSet(nil), set...)
	}
	if s.Stuck != nil {
		stuck := *s.Stuck
		c.Stuck = &stuck
	}
	return &c
}

// Outcome classifies the result of a single advance.
type Outcome string

const (
	OutcomeContinue Outcome = "continue"
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	OutcomeStuck    Outcome = "stuck"
)

// StepResult is what an advance reports back to the caller.
type StepResult struct {
	Outcome  Outcome    `json:"outcome"`
	States   StateSet   `json:"states"`
	Trace    []StateSet `json:"trace,omitempty"`
	Consumed int        `json:"consumed"`
	// Symbol is the symbol consumed by a continue step, or the one that could not be consumed when stuck.
	Symbol Symbol `json:"symbol,omitempty"`
	// State is the state a DFA got stuck in.
	State *StateID `json:"state,omitempty"`
}

// Terminal reports whether the result ends the session.
func (r StepResult) Terminal() bool {
	return r.Outcome != OutcomeContinue
}

// Verdict is the outcome of a one-shot run.
type Verdict struct {
	Accepted bool       `json:"accepted"`
	Final    StateSet   `json:"final"`
	Trace    []StateSet `json:"trace"`
}

// RunRecord is an entry of the run history.
type RunRecord struct {
	ID        string    `json:"id"`
	Automaton string    `json:"automaton"`
	Kind      Kind      `json:"kind"`
	Input     string    `json:"input"`
	Accepted  bool      `json:"accepted"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
