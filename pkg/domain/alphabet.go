package domain

import "strings"

// Alphabet is an insertion ordered set of symbols, disjoint from Epsilon.
type Alphabet []Symbol

// ParseAlphabet reads a comma separated list, the way the editor toolbar accepts it.
// Entries are trimmed; blanks, Epsilon and duplicates are dropped.
func ParseAlphabet(s string) Alphabet {
	return NewAlphabet(strings.Split(s, ",")...)
}

// NewAlphabet builds an alphabet from raw symbols with the same filtering as ParseAlphabet.
func NewAlphabet(symbols ...string) Alphabet {
	out := make(Alphabet, 0, len(symbols))
	seen := make(map[Symbol]bool, len(symbols))
	for _, raw := range symbols {
		sym := strings.TrimSpace(raw)
		if sym == "" || sym == Epsilon || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	return out
}

// Contains reports whether sym belongs to the alphabet.
func (a Alphabet) Contains(sym Symbol) bool {
	for _, s := range a {
		if s == sym {
			return true
		}
	}
	return false
}

// String renders the alphabet the way it is typed: "a,b".
func (a Alphabet) String() string {
	return strings.Join(a, ",")
}
