package domain

// SessionDiff represents the changes between two snapshots of a session.
// It is designed to be serialized to JSON for partial updates on the client.
type SessionDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Status   *SessionStatus `json:"status,omitempty"`
	Consumed *int           `json:"consumed,omitempty"`
	Current  StateSet       `json:"current,omitempty"`

	// Appended holds trace entries added since the old snapshot.
	Appended []StateSet `json:"appended,omitempty"`

	Stuck *StuckInfo `json:"stuck,omitempty"`
}

// Diff calculates the difference between oldSession and newSession.
// If oldSession is nil, it returns a diff representing the entire newSession.
// It returns nil when nothing changed.
func Diff(oldSession, newSession *Session) *SessionDiff {
	if newSession == nil {
		return nil
	}

	diff := &SessionDiff{SessionID: newSession.ID}

	if oldSession == nil || oldSession.Status != newSession.Status {
		diff.Status = &newSession.Status
	}
	if oldSession == nil || oldSession.Consumed != newSession.Consumed {
		diff.Consumed = &newSession.Consumed
	}
	if oldSession == nil || !oldSession.Current.Equal(newSession.Current) {
		diff.Current = newSession.Current
	}
	if newSession.Stuck != nil && (oldSession == nil || oldSession.Stuck == nil) {
		diff.Stuck = newSession.Stuck
	}
	diff.Appended = diffTrace(oldSession, newSession)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// diffTrace assumes the trace is append-only.
func diffTrace(old, new *Session) []StateSet {
	if len(new.Trace) == 0 {
		return nil
	}
	if old == nil {
		return new.Trace
	}
	if len(new.Trace) > len(old.Trace) {
		return new.Trace[len(old.Trace):]
	}
	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SessionDiff) IsEmpty() bool {
	return d.Status == nil &&
		d.Consumed == nil &&
		d.Current == nil &&
		d.Stuck == nil &&
		len(d.Appended) == 0
}
