/*
Package domain contains the core data model of the automaton engine.

It defines the automaton graph (states, transitions, alphabet), the verdicts and
traces produced by simulation, and the resumable step session used for interactive
visualization. This package is kept pure and free of external dependencies like
I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Automaton: the aggregate of kind, states, transitions and alphabet, owned by the caller.
  - StateSet: an ordered set of state ids; singleton in DFA mode.
  - Verdict: the outcome of a one-shot run (accepted flag, final set, trace).
  - Session: the transient state of a step-by-step run, serializable for persistence.
  - ValidationError: a non-fatal structural finding.
*/
package domain
