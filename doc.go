/*
Package automata is a finite automaton engine for DFA, NFA and ε-NFA graphs built by an
editing collaborator such as a canvas UI.

The engine validates structural well-formedness, decides acceptance of test strings with a
subset simulation, and drives a resumable step-by-step simulation for visualization. It never
mutates the automaton it is handed; step sessions carry their own snapshot so that they can be
stored and resumed by the adapters under pkg/adapters.

# Usage

	eng := automata.New()

	a := &domain.Automaton{
		Kind:     domain.KindDFA,
		Alphabet: domain.ParseAlphabet("a, b"),
		States: []domain.State{
			{ID: 0, Role: domain.RoleStart},
			{ID: 1, Role: domain.RoleAccept},
		},
		Transitions: []domain.Transition{
			{From: 0, To: 1, Label: "a"},
			{From: 0, To: 0, Label: "b"},
			{From: 1, To: 1, Label: "a"},
			{From: 1, To: 0, Label: "b"},
		},
	}

	for _, e := range eng.Validate(ctx, a) {
		log.Println(e.Message)
	}

	verdict, err := eng.Run(ctx, a, "ba")

	s, err := eng.Start(ctx, a, "ba")
	for {
		res, err := eng.Advance(ctx, s)
		if err != nil || res.Terminal() {
			break
		}
	}

Automata kept on disk as Markdown front matter, JSON or YAML documents are served by Open:

	eng, err := automata.Open("./library")
	a, err := eng.Load(ctx, "ends-ab")
*/
package automata
