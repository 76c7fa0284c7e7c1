// Package report formats engine results as Markdown for the terminal.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// Validation lists the findings of a validation run.
func Validation(name string, a *domain.Automaton, errs domain.ValidationErrors) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s (%s)\n\n", name, a.Kind.String())
	fmt.Fprintf(&sb, "%d states, %d transitions, alphabet %s\n\n", len(a.States), len(a.Transitions), alphabet(a.Alphabet))

	if len(errs) == 0 {
		sb.WriteString("**Valid** ✅\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "**%d problem(s)** ❌\n\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(&sb, "- `%s` %s\n", e.Code, e.Message)
	}
	return sb.String()
}

// Verdict describes the outcome of a one-shot run, including the visited sets.
// err is the error returned by the run, if any.
func Verdict(a *domain.Automaton, input string, v domain.Verdict, err error) string {
	var sb strings.Builder

	var nt *domain.NoTransitionError
	switch {
	case errors.As(err, &nt):
		fmt.Fprintf(&sb, "**Stuck** %q: %s.\n", input, nt.Error())
	case err != nil:
		fmt.Fprintf(&sb, "**Error** %q: %s.\n", input, err)
	case v.Accepted:
		fmt.Fprintf(&sb, "**Accepted** %q in %s.\n", input, braces(v.Final.Labels(a)))
	default:
		fmt.Fprintf(&sb, "**Rejected** %q in %s.\n", input, braces(v.Final.Labels(a)))
	}

	if len(v.Trace) > 0 {
		fmt.Fprintf(&sb, "\nTrace: %s\n", Trace(a, v.Trace))
	}
	return sb.String()
}

// Trace renders visited sets as {q0} → {q1, q2}.
func Trace(a *domain.Automaton, trace []domain.StateSet) string {
	parts := make([]string, len(trace))
	for i, set := range trace {
		parts[i] = braces(set.Labels(a))
	}
	return strings.Join(parts, " → ")
}

// History renders run records as a table, newest first.
func History(records []domain.RunRecord) string {
	if len(records) == 0 {
		return "No runs recorded.\n"
	}

	var sb strings.Builder
	sb.WriteString("| When | Automaton | Kind | Input | Result |\n")
	sb.WriteString("|------|-----------|------|-------|--------|\n")
	for _, r := range records {
		result := "rejected"
		switch {
		case r.Error != "":
			result = "error: " + r.Error
		case r.Accepted:
			result = "accepted"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			cell(r.Automaton), r.Kind.String(), cell(fmt.Sprintf("%q", r.Input)), cell(result))
	}
	return sb.String()
}

func alphabet(a domain.Alphabet) string {
	parts := make([]string, len(a))
	for i, s := range a {
		parts[i] = string(s)
	}
	return braces(parts)
}

func braces(labels []string) string {
	return "{" + strings.Join(labels, ", ") + "}"
}

// cell escapes pipes so values cannot break the table.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
