package observability

import (
	"context"
	"log/slog"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// ChainHooks calls every non-nil hook of each set, in order.
func ChainHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		if h.OnValidate != nil {
			prev, next := out.OnValidate, h.OnValidate
			out.OnValidate = func(ctx context.Context, e *domain.ValidationEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnRun != nil {
			prev, next := out.OnRun, h.OnRun
			out.OnRun = func(ctx context.Context, e *domain.RunEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnStep != nil {
			prev, next := out.OnStep, h.OnStep
			out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
	}
	return out
}

// AuditHooks logs every engine event at info level.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			logger.InfoContext(ctx, "validate",
				"automaton_kind", e.Kind.String(),
				"errors", len(e.Errors),
			)
		},
		OnRun: func(ctx context.Context, e *domain.RunEvent) {
			attrs := []any{
				"automaton_kind", e.Kind.String(),
				"input", e.Input,
				"accepted", e.Accepted,
			}
			if e.Err != nil {
				attrs = append(attrs, "err", e.Err)
			}
			logger.InfoContext(ctx, "run", attrs...)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "step",
				"session_id", e.SessionID,
				"automaton_kind", e.Kind.String(),
				"outcome", string(e.Result.Outcome),
				"consumed", e.Result.Consumed,
			)
		},
	}
}
