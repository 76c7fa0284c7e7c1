// Package schema reads and writes the persisted automaton document.
//
// A document is the collaborator's save format, accepted as JSON, YAML or a
// Markdown file carrying YAML front matter:
//
//	type: ε-NFA
//	alphabet: a,b
//	states:
//	  - {id: 0, name: q0, role: start, x: 120, y: 80}
//	  - {id: 1, role: accept}
//	transitions:
//	  - {from: 0, to: 1, label: ε}
//	  - {from: {id: 1}, to: {id: 1}, label: a}
//
// Transition endpoints may be ids or whole state objects, the way the
// canvas editor saves them. The alphabet may be a list or a comma separated
// string; the string form is filtered like the editor toolbar does
// (see domain.ParseAlphabet), while an explicit list is kept as written.
//
// Decoding goes through a loose map[string]any first, so the same rules apply
// to documents read by this package and to front matter handed over by a
// document repository (see DecodeMap).
package schema
