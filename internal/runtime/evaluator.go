package runtime

import "github.com/LeenJaber1/automata-builder/pkg/domain"

// Run decides whether a accepts input.
// DFA kinds walk a single state and fail with *domain.NoTransitionError on a miss;
// NFA and ε-NFA kinds track the set of reachable states, closing over ε-transitions
// after every symbol. ε-transitions are honored even when the kind is NFA.
func Run(a *domain.Automaton, input string) (domain.Verdict, error) {
	current, err := initialSet(a)
	if err != nil {
		return domain.Verdict{}, err
	}

	trace := []domain.StateSet{current}
	index := 0
	for _, r := range input {
		next, err := step(a, current, string(r), index)
		if err != nil {
			return domain.Verdict{Final: current, Trace: trace}, err
		}
		current = next
		trace = append(trace, current)
		index++
	}

	return domain.Verdict{
		Accepted: a.Accepts(current),
		Final:    current,
		Trace:    trace,
	}, nil
}
