// Package metrics provides Prometheus instrumentation for the workflow
// engine, wired in through domain.LifecycleHooks so the core stays free of
// any metrics dependency.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inevo/formflow/pkg/domain"
)

// Metrics holds the workflow collectors.
type Metrics struct {
	agentRuns     *prometheus.CounterVec
	agentDuration *prometheus.HistogramVec
	routes        *prometheus.CounterVec
	fieldUpdates  prometheus.Counter
	propagations  prometheus.Counter
}

// New registers the collectors on reg (use prometheus.DefaultRegisterer for
// the global registry) and returns the Metrics facade.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		agentRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formflow",
			Name:      "agent_runs_total",
			Help:      "Number of sub-task executions, by agent.",
		}, []string{"agent"}),
		agentDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "formflow",
			Name:      "agent_duration_seconds",
			Help:      "Sub-task execution duration, by agent.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"agent"}),
		routes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formflow",
			Name:      "route_decisions_total",
			Help:      "Orchestrator routing decisions, by phase and target.",
		}, []string{"phase", "next"}),
		fieldUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "formflow",
			Name:      "field_updates_total",
			Help:      "Successful field mappings.",
		}),
		propagations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "formflow",
			Name:      "field_propagations_total",
			Help:      "Cross-form copies performed by field mappings.",
		}),
	}
}

// Hooks returns lifecycle hooks feeding these collectors. Pass the result to
// the engine via WithLifecycleHooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAgentLeave: func(_ context.Context, ev *domain.AgentEvent) {
			agent := string(ev.Agent)
			m.agentRuns.WithLabelValues(agent).Inc()
			m.agentDuration.WithLabelValues(agent).Observe(ev.Duration.Seconds())
		},
		OnRoute: func(_ context.Context, ev *domain.RouteEvent) {
			next := string(ev.Next)
			if next == "" {
				next = "halt"
			}
			m.routes.WithLabelValues(string(ev.Phase), next).Inc()
		},
		OnFieldUpdate: func(_ context.Context, ev *domain.FieldEvent) {
			m.fieldUpdates.Inc()
			m.propagations.Add(float64(ev.Propagated))
		},
	}
}
