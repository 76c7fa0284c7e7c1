package observability

import (
	"context"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// Metrics holds the engine collectors.
type Metrics struct {
	Runs             *prometheus.CounterVec
	ValidationErrors *prometheus.CounterVec
	Steps            *prometheus.CounterVec
	InputSymbols     *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_runs_total",
				Help: "Total number of one-shot runs by automaton kind and verdict",
			},
			[]string{"kind", "verdict"},
		),
		ValidationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_validation_errors_total",
				Help: "Total number of validation findings by automaton kind and code",
			},
			[]string{"kind", "code"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_steps_total",
				Help: "Total number of stepper advances by automaton kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		InputSymbols: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_run_input_symbols",
				Help:    "Length in symbols of the inputs given to one-shot runs",
				Buckets: prometheus.ExponentialBuckets(1, 4, 7),
			},
			[]string{"kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.ValidationErrors, m.Steps, m.InputSymbols)
	}
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnValidate: func(_ context.Context, e *domain.ValidationEvent) {
			for _, v := range e.Errors {
				m.ValidationErrors.WithLabelValues(e.Kind.String(), v.Code).Inc()
			}
		},
		OnRun: func(_ context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(e.Kind.String(), verdict(e)).Inc()
			m.InputSymbols.WithLabelValues(e.Kind.String()).Observe(float64(utf8.RuneCountInString(e.Input)))
		},
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Kind.String(), string(e.Result.Outcome)).Inc()
		},
	}
}

func verdict(e *domain.RunEvent) string {
	switch {
	case e.Err != nil:
		return "error"
	case e.Accepted:
		return "accepted"
	default:
		return "rejected"
	}
}
