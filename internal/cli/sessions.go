package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ListSessions prints the ids of stored sessions.
func ListSessions(ctx context.Context, app *App) error {
	p, err := app.OpenPersistence(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	ids, err := p.Manager.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(app.Out, "No active sessions found.")
		return nil
	}

	fmt.Fprintln(app.Out, "Active Sessions:")
	for _, id := range ids {
		fmt.Fprintln(app.Out, "- "+id)
	}
	return nil
}

// InspectSession pretty-prints a stored session as JSON.
func InspectSession(ctx context.Context, app *App, id string) error {
	p, err := app.OpenPersistence(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	s, err := p.Manager.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("error loading session '%s': %w", id, err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling session: %w", err)
	}
	fmt.Fprintln(app.Out, string(data))
	return nil
}

// RemoveSessions deletes the given sessions, or all of them when all is set.
func RemoveSessions(ctx context.Context, app *App, ids []string, all bool) error {
	p, err := app.OpenPersistence(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	if all {
		if ids, err = p.Manager.List(ctx); err != nil {
			return fmt.Errorf("error listing sessions: %w", err)
		}
	}

	var errs []error
	for _, id := range ids {
		if err := p.Manager.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
			continue
		}
		fmt.Fprintf(app.Out, "Removed session '%s'\n", id)
	}
	return errors.Join(errs...)
}
