package loam

// AutomatonMetadata is the document header of a stored automaton.
// Shape fields stay loose so that schema.DecodeMap applies the same
// endpoint and alphabet rules as for files read directly.
type AutomatonMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Type        string `json:"type" mapstructure:"type"`
	Alphabet    any    `json:"alphabet" mapstructure:"alphabet"`
	States      any    `json:"states" mapstructure:"states"`
	Transitions any    `json:"transitions" mapstructure:"transitions"`
}

// IsAutomaton reports whether the document declares any states.
// Notes and READMEs living next to automata have no states and are skipped.
func (m AutomatonMetadata) IsAutomaton() bool {
	return m.States != nil
}

func (m AutomatonMetadata) raw() map[string]any {
	raw := map[string]any{"type": m.Type}
	if m.Alphabet != nil {
		raw["alphabet"] = m.Alphabet
	}
	if m.States != nil {
		raw["states"] = m.States
	}
	if m.Transitions != nil {
		raw["transitions"] = m.Transitions
	}
	return raw
}
