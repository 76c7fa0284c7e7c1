/*
Package runner drives a step session interactively for a terminal or a headless host.

The runner shows the active state set, waits for the user to advance one symbol at a time,
and prints the verdict with the visited trace once the session becomes terminal. Interaction is
delegated to an IOHandler so the same loop serves a human (TextHandler) and a program reading
JSON lines (JSONHandler).

# Commands

  - Enter, "next" or "n": consume one symbol.
  - "run" or "c": consume the rest of the input.
  - "reset" or "r": start over from the initial state set.
  - "quit", "q" or "exit": leave the loop, keeping the session as it is.

# Usage

	s, _ := eng.Start(ctx, a, "abba")
	r := runner.NewRunner()
	s, err := r.Run(ctx, eng, s)

SanitizeInput is the shared guard for test strings arriving from users.
*/
package runner
