package domain

import (
	"slices"
	"strings"
)

// StateSet is a set of state ids kept in ascending order, so that traces are reproducible.
type StateSet []StateID

// NewStateSet sorts and deduplicates ids.
func NewStateSet(ids ...StateID) StateSet {
	set := make(StateSet, len(ids))
	copy(set, ids)
	slices.Sort(set)
	return slices.Compact(set)
}

// Contains reports membership.
func (s StateSet) Contains(id StateID) bool {
	_, found := slices.BinarySearch(s, id)
	return found
}

// Equal compares two sets element-wise.
func (s StateSet) Equal(other StateSet) bool {
	return slices.Equal(s, other)
}

// IsEmpty reports whether no state is active.
func (s StateSet) IsEmpty() bool {
	return len(s) == 0
}

// String renders the set as {q0, q2} using default names.
func (s StateSet) String() string {
	parts := make([]string, len(s))
	for i, id := range s {
		parts[i] = id.DefaultName()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Labels renders the set using the display names of a.
func (s StateSet) Labels(a *Automaton) []string {
	out := make([]string, len(s))
	for i, id := range s {
		out[i] = a.Label(id)
	}
	return out
}
