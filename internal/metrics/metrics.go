// Package metrics defines the Prometheus collectors for the matcher.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the matcher's collectors.
type Metrics struct {
	Admissions    *prometheus.CounterVec
	Outcomes      *prometheus.CounterVec
	Cancellations prometheus.Counter
	Conflicts     *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Admissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ottshare",
			Name:      "admissions_total",
			Help:      "Waiting entries created, by service type and role.",
		}, []string{"service_type", "role"}),
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ottshare",
			Name:      "formation_outcomes_total",
			Help:      "Group formation attempts, by service type and outcome.",
		}, []string{"service_type", "outcome"}),
		Cancellations: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ottshare",
			Name:      "cancellations_total",
			Help:      "Waiting entries removed by explicit cancellation.",
		}),
		Conflicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ottshare",
			Name:      "formation_conflicts_total",
			Help:      "Formations rolled back because the selected entries changed.",
		}, []string{"service_type"}),
	}
}

// Role returns the admissions label for an entry.
func Role(leader bool) string {
	if leader {
		return "leader"
	}
	return "member"
}
