package domain

// Transition is a labeled edge between two states. Self-loops are legal.
type Transition struct {
	From  StateID `json:"from" yaml:"from"`
	To    StateID `json:"to" yaml:"to"`
	Label Symbol  `json:"label" yaml:"label"`
}

// IsEpsilon reports whether the transition is taken without consuming input.
func (t Transition) IsEpsilon() bool {
	return t.Label == Epsilon
}
