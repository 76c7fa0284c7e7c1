package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// Document is the persisted shape of an automaton.
type Document struct {
	Type        string          `json:"type" yaml:"type" mapstructure:"type"`
	Alphabet    []string        `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	States      []StateDoc      `json:"states" yaml:"states" mapstructure:"states"`
	Transitions []TransitionDoc `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// StateDoc is a state record; X and Y are editor coordinates and carry no meaning for the engine.
type StateDoc struct {
	ID   domain.StateID `json:"id" yaml:"id" mapstructure:"id"`
	Name string         `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Role string         `json:"role,omitempty" yaml:"role,omitempty" mapstructure:"role"`
	X    float64        `json:"x,omitempty" yaml:"x,omitempty" mapstructure:"x"`
	Y    float64        `json:"y,omitempty" yaml:"y,omitempty" mapstructure:"y"`
}

// TransitionDoc is a transition record.
type TransitionDoc struct {
	From  domain.StateID `json:"from" yaml:"from" mapstructure:"from"`
	To    domain.StateID `json:"to" yaml:"to" mapstructure:"to"`
	Label string         `json:"label" yaml:"label" mapstructure:"label"`
}

var (
	stateIDType  = reflect.TypeOf(domain.StateID(0))
	alphabetType = reflect.TypeOf([]string(nil))
)

// DecodeMap maps a loose document (as produced by a JSON, YAML or front matter parser)
// onto a domain.Automaton.
func DecodeMap(raw map[string]any) (*domain.Automaton, error) {
	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			endpointHook,
			alphabetHook,
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode automaton: %w", err)
	}
	return doc.Automaton()
}

// endpointHook accepts a whole state object wherever a state id is expected.
func endpointHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != stateIDType {
		return data, nil
	}
	switch v := data.(type) {
	case map[string]any:
		id, ok := v["id"]
		if !ok {
			return nil, fmt.Errorf("state reference has no id")
		}
		return id, nil
	case map[any]any:
		id, ok := v["id"]
		if !ok {
			return nil, fmt.Errorf("state reference has no id")
		}
		return id, nil
	}
	return data, nil
}

// alphabetHook accepts the comma separated form typed into the editor toolbar.
func alphabetHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != alphabetType || from.Kind() != reflect.String {
		return data, nil
	}
	return []string(domain.ParseAlphabet(data.(string))), nil
}

// Automaton converts the document into the engine model.
// All field failures are collected into a single *AggregateError.
func (d Document) Automaton() (*domain.Automaton, error) {
	var errs []error

	kind, err := domain.ParseKind(d.Type)
	if err != nil {
		errs = append(errs, &FieldError{Key: "type", Reason: "unknown automaton type", Value: d.Type})
	}

	a := &domain.Automaton{
		Kind:        kind,
		Alphabet:    make(domain.Alphabet, 0, len(d.Alphabet)),
		States:      make([]domain.State, 0, len(d.States)),
		Transitions: make([]domain.Transition, 0, len(d.Transitions)),
	}
	// ε is kept so the validator can report it.
	seen := make(map[domain.Symbol]bool, len(d.Alphabet))
	for _, sym := range d.Alphabet {
		if sym = strings.TrimSpace(sym); sym != "" && !seen[sym] {
			seen[sym] = true
			a.Alphabet = append(a.Alphabet, sym)
		}
	}

	for i, s := range d.States {
		role, ok := parseRole(s.Role)
		if !ok {
			errs = append(errs, &FieldError{Key: fmt.Sprintf("states[%d].role", i), Reason: "unknown role", Value: s.Role})
		}
		a.States = append(a.States, domain.State{
			ID:   s.ID,
			Name: s.Name,
			Role: role,
			X:    s.X,
			Y:    s.Y,
		})
	}

	for i, t := range d.Transitions {
		label := strings.TrimSpace(t.Label)
		if label == "" {
			errs = append(errs, &FieldError{Key: fmt.Sprintf("transitions[%d].label", i), Reason: "label is required"})
			continue
		}
		a.Transitions = append(a.Transitions, domain.Transition{From: t.From, To: t.To, Label: label})
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return a, nil
}

// FromAutomaton builds the persisted shape of a.
func FromAutomaton(a *domain.Automaton) Document {
	doc := Document{
		Type:        a.Kind.String(),
		Alphabet:    append([]string{}, a.Alphabet...),
		States:      make([]StateDoc, 0, len(a.States)),
		Transitions: make([]TransitionDoc, 0, len(a.Transitions)),
	}
	for _, s := range a.States {
		sd := StateDoc{ID: s.ID, Name: s.Name, X: s.X, Y: s.Y}
		if s.Role != domain.RoleNone {
			sd.Role = string(s.Role)
		}
		doc.States = append(doc.States, sd)
	}
	for _, t := range a.Transitions {
		doc.Transitions = append(doc.Transitions, TransitionDoc{From: t.From, To: t.To, Label: t.Label})
	}
	return doc
}

func parseRole(s string) (domain.Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "normal":
		return domain.RoleNone, true
	case "start", "initial":
		return domain.RoleStart, true
	case "accept", "accepting", "final":
		return domain.RoleAccept, true
	}
	return domain.RoleNone, false
}
