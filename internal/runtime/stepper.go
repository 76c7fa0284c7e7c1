package runtime

import (
	"errors"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// Start creates a step session for input over a snapshot of a.
func Start(a *domain.Automaton, input string) (*domain.Session, error) {
	current, err := initialSet(a)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		Automaton: a.Clone(),
		Input:     input,
		Consumed:  0,
		Current:   current,
		Trace:     []domain.StateSet{current},
		Status:    domain.StatusRunning,
	}, nil
}

// Advance consumes one symbol, or delivers the terminal verdict once the input is exhausted.
// A terminal session is left untouched and reports the same verdict again.
func Advance(s *domain.Session) (domain.StepResult, error) {
	if s == nil || s.Status == domain.StatusIdle || s.Status == "" || s.Automaton == nil {
		return domain.StepResult{}, domain.ErrSessionNotStarted
	}
	if s.Status.Terminal() {
		return terminalResult(s), nil
	}

	symbols := s.Symbols()
	if s.Consumed >= len(symbols) {
		if s.Automaton.Accepts(s.Current) {
			s.Status = domain.StatusAccepted
		} else {
			s.Status = domain.StatusRejected
		}
		return terminalResult(s), nil
	}

	sym := symbols[s.Consumed]
	next, err := step(s.Automaton, s.Current, sym, s.Consumed)
	if err != nil {
		var nt *domain.NoTransitionError
		if !errors.As(err, &nt) {
			return domain.StepResult{}, err
		}
		s.Status = domain.StatusStuck
		s.Stuck = &domain.StuckInfo{State: nt.State, Symbol: nt.Symbol}
		return terminalResult(s), nil
	}

	s.Current = next
	s.Trace = append(s.Trace, next)
	s.Consumed++
	return domain.StepResult{
		Outcome:  domain.OutcomeContinue,
		States:   next,
		Consumed: s.Consumed,
		Symbol:   sym,
	}, nil
}

// Reset discards the session. The automaton it was started from is not touched.
func Reset(s *domain.Session) {
	if s == nil {
		return
	}
	*s = domain.Session{ID: s.ID, Status: domain.StatusIdle}
}

func terminalResult(s *domain.Session) domain.StepResult {
	res := domain.StepResult{
		States:   s.Current,
		Trace:    s.Trace,
		Consumed: s.Consumed,
	}
	switch s.Status {
	case domain.StatusAccepted:
		res.Outcome = domain.OutcomeAccepted
	case domain.StatusRejected:
		res.Outcome = domain.OutcomeRejected
	case domain.StatusStuck:
		res.Outcome = domain.OutcomeStuck
		if s.Stuck != nil {
			state := s.Stuck.State
			res.State = &state
			res.Symbol = s.Stuck.Symbol
		}
	}
	return res
}
