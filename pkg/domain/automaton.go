package domain

import (
	"fmt"
	"strings"
)

// Kind is the declared type of an automaton.
type Kind string

const (
	KindDFA  Kind = "DFA"
	KindNFA  Kind = "NFA"
	KindENFA Kind = "ε-NFA"
)

// ParseKind maps user supplied spellings to a Kind.
// ASCII aliases such as "e-NFA" are accepted for the epsilon kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dfa":
		return KindDFA, nil
	case "nfa":
		return KindNFA, nil
	case "ε-nfa", "e-nfa", "eps-nfa", "epsilon-nfa", "enfa":
		return KindENFA, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Deterministic reports whether the kind is simulated as a single-state walk.
// The zero value is treated as a DFA, matching the editor default.
func (k Kind) Deterministic() bool {
	return k == KindDFA || k == ""
}

// String returns the canonical spelling.
func (k Kind) String() string {
	if k == "" {
		return string(KindDFA)
	}
	return string(k)
}

// Symbol is an input character or the Epsilon marker.
type Symbol = string

// Epsilon labels transitions taken without consuming input.
const Epsilon Symbol = "ε"

// Role marks the special states of an automaton.
type Role string

const (
	RoleNone   Role = "none"
	RoleStart  Role = "start"
	RoleAccept Role = "accept"
)

// StateID identifies a state for the lifetime of a simulation run.
type StateID int

// DefaultName is the display name used when a state has none.
func (id StateID) DefaultName() string {
	return fmt.Sprintf("q%d", int(id))
}

// State is a vertex of the automaton graph.
type State struct {
	ID   StateID `json:"id" yaml:"id"`
	Name string  `json:"name,omitempty" yaml:"name,omitempty"`
	Role Role    `json:"role,omitempty" yaml:"role,omitempty"`

	// X and Y are editor coordinates, ignored by the engine.
	X float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y float64 `json:"y,omitempty" yaml:"y,omitempty"`
}

// Label returns the display name as written, or q<id> when the name is blank.
func (s State) Label() string {
	if strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	return s.ID.DefaultName()
}

// IsStart reports whether the state holds the start role.
func (s State) IsStart() bool { return s.Role == RoleStart }

// IsAccept reports whether the state holds the accept role.
func (s State) IsAccept() bool { return s.Role == RoleAccept }

// Automaton is the graph handed to the engine by the editing collaborator.
// The engine reads it and never mutates it.
type Automaton struct {
	Kind        Kind         `json:"type" yaml:"type"`
	States      []State      `json:"states" yaml:"states"`
	Transitions []Transition `json:"transitions" yaml:"transitions"`
	Alphabet    Alphabet     `json:"alphabet" yaml:"alphabet"`
}

// StartState returns the first state holding the start role, in iteration order.
func (a *Automaton) StartState() (State, bool) {
	for _, s := range a.States {
		if s.IsStart() {
			return s, true
		}
	}
	return State{}, false
}

// State looks a state up by id.
func (a *Automaton) State(id StateID) (State, bool) {
	for _, s := range a.States {
		if s.ID == id {
			return s, true
		}
	}
	return State{}, false
}

// Label returns the display name of id, falling back to q<id> for unknown ids.
func (a *Automaton) Label(id StateID) string {
	if s, ok := a.State(id); ok {
		return s.Label()
	}
	return id.DefaultName()
}

// Outgoing returns the transitions leaving id, in declaration order.
func (a *Automaton) Outgoing(id StateID) []Transition {
	var out []Transition
	for _, t := range a.Transitions {
		if t.From == id {
			out = append(out, t)
		}
	}
	return out
}

// Accepts reports whether any state of set holds the accept role.
func (a *Automaton) Accepts(set StateSet) bool {
	for _, id := range set {
		if s, ok := a.State(id); ok && s.IsAccept() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, used to snapshot the graph into a session.
func (a *Automaton) Clone() *Automaton {
	if a == nil {
		return nil
	}
	c := &Automaton{Kind: a.Kind}
	c.States = append([]State(nil), a.States...)
	c.Transitions = append([]Transition(nil), a.Transitions...)
	c.Alphabet = append(Alphabet(nil), a.Alphabet...)
	return c
}
