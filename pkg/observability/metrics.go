package observability

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/interchange/pkg/domain"
)

// Metrics records dispatch activity as Prometheus series.
type Metrics struct {
	traces      *prometheus.CounterVec
	dispatches  *prometheus.CounterVec
	results     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	completions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// Collectors already registered on reg are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		traces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interchange_traces_total",
				Help: "Total number of traced dispatches by conclusion",
			},
			[]string{"command", "conclusion"},
		),
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interchange_dispatches_total",
				Help: "Total number of branch actions invoked",
			},
			[]string{"command", "address"},
		),
		results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interchange_results_total",
				Help: "Total number of concluded executions by result",
			},
			[]string{"command", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "interchange_execution_duration_seconds",
				Help:    "Duration of executions, gates included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interchange_completions_total",
				Help: "Total number of completion requests",
			},
			[]string{"command"},
		),
	}

	var err error
	if m.traces, err = register(reg, m.traces); err != nil {
		return nil, err
	}
	if m.dispatches, err = register(reg, m.dispatches); err != nil {
		return nil, err
	}
	if m.results, err = register(reg, m.results); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.completions, err = register(reg, m.completions); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrace: func(_ context.Context, e *domain.TraceEvent) {
			m.traces.WithLabelValues(e.Command, e.Conclusion.String()).Inc()
		},
		OnDispatch: func(_ context.Context, e *domain.DispatchEvent) {
			m.dispatches.WithLabelValues(e.Command, e.Address).Inc()
		},
		OnResult: func(_ context.Context, e *domain.ResultEvent) {
			m.results.WithLabelValues(e.Command, e.Result.String()).Inc()
			m.duration.WithLabelValues(e.Command).Observe(e.Duration.Seconds())
		},
		OnComplete: func(_ context.Context, e *domain.CompleteEvent) {
			m.completions.WithLabelValues(e.Command).Inc()
		},
	}
}
