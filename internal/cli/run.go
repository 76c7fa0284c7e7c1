package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/LeenJaber1/automata-builder/internal/presentation/report"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// RunOptions configures the run command.
type RunOptions struct {
	Ref    string
	Inputs []string
	JSON   bool
	// History records every run in the SQLite history.
	History bool
}

type runReport struct {
	Input    string         `json:"input"`
	Accepted bool           `json:"accepted"`
	Verdict  domain.Verdict `json:"verdict"`
	Error    string         `json:"error,omitempty"`
}

// Run evaluates each input against the automaton in one shot.
// A missing DFA transition is reported as a stuck verdict, not as a command failure.
func Run(ctx context.Context, app *App, opts RunOptions) error {
	engine, err := app.OpenEngine()
	if err != nil {
		return err
	}
	a, name, err := ResolveAutomaton(ctx, engine, opts.Ref)
	if err != nil {
		return err
	}

	inputs := opts.Inputs
	if len(inputs) == 0 {
		inputs = []string{""}
	}

	var record func(domain.RunRecord)
	if opts.History {
		history, err := app.OpenHistory()
		if err != nil {
			return err
		}
		defer history.Close()
		record = func(rec domain.RunRecord) {
			if err := history.Record(ctx, rec); err != nil {
				app.Logger.Warn("failed to record run", "err", err)
			}
		}
	}

	reports := make([]runReport, 0, len(inputs))
	for _, raw := range inputs {
		input, err := app.Sanitize(raw)
		if err != nil {
			return fmt.Errorf("invalid input %q: %w", raw, err)
		}

		verdict, runErr := engine.Run(ctx, a, input)
		if runErr != nil && !errors.Is(runErr, domain.ErrNoTransition) {
			return runErr
		}

		if record != nil {
			rec := domain.RunRecord{
				Automaton: name,
				Kind:      a.Kind,
				Input:     input,
				Accepted:  runErr == nil && verdict.Accepted,
			}
			if runErr != nil {
				rec.Error = runErr.Error()
			}
			record(rec)
		}

		if opts.JSON {
			rep := runReport{Input: input, Accepted: runErr == nil && verdict.Accepted, Verdict: verdict}
			if runErr != nil {
				rep.Error = runErr.Error()
			}
			reports = append(reports, rep)
			continue
		}
		if err := app.Print(report.Verdict(a, input, verdict, runErr)); err != nil {
			return err
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(app.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	return nil
}
