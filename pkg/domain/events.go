package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventValidate EventType = "validate"
	EventRun      EventType = "run"
	EventStep     EventType = "step"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Kind      Kind      `json:"kind"`
}

// ValidationEvent is emitted after every validation.
type ValidationEvent struct {
	EventBase
	Errors []ValidationError `json:"errors,omitempty"`
}

// RunEvent is emitted after every one-shot run, successful or not.
type RunEvent struct {
	EventBase
	Input    string `json:"input"`
	Accepted bool   `json:"accepted"`
	Err      error  `json:"-"`
}

// StepEvent is emitted after every successful advance.
type StepEvent struct {
	EventBase
	SessionID string     `json:"session_id"`
	Result    StepResult `json:"result"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnValidate func(context.Context, *ValidationEvent)
	OnRun      func(context.Context, *RunEvent)
	OnStep     func(context.Context, *StepEvent)
}
