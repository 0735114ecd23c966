// Package metrics exposes Prometheus metrics for the scheduling service.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"priority-scheduler/internal/schedulers"
)

const namespace = "prisched"

type Collector struct {
	schedules          *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	processes          prometheus.Histogram
	makespan           prometheus.Histogram
	activeSessions     prometheus.Gauge
}

// NewCollector registers on the default registry.
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector with a custom registry.
// Useful for testing to avoid duplicate registration panics.
func NewCollectorWithRegistry(registry prometheus.Registerer) *Collector {
	c := &Collector{
		schedules: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "schedules_total",
				Help:      "Schedule computations by algorithm, mode, tie-break and result",
			},
			[]string{"algorithm", "mode", "tie_break", "result"},
		),
		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Rejected request fields",
			},
			[]string{"field"},
		),
		processes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "schedule_processes",
				Help:      "Number of processes per schedule request",
				Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512},
			},
		),
		makespan: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "schedule_makespan",
				Help:      "Simulated completion time of the last process",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "workspace_sessions",
				Help:      "Workspace sessions currently held in memory",
			},
		),
	}
	registry.MustRegister(c.schedules, c.validationFailures, c.processes, c.makespan, c.activeSessions)
	return c
}

// ObserveSchedule records one engine call. err is the engine's error, if any.
func (c *Collector) ObserveSchedule(algorithm, mode, tieBreak string, processCount int, makespan float64, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "rejected"
		var verr *schedulers.ValidationErrors
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				c.validationFailures.WithLabelValues(f.Field).Inc()
			}
		}
	}
	c.schedules.WithLabelValues(algorithm, mode, tieBreak, result).Inc()
	c.processes.Observe(float64(processCount))
	if err == nil {
		c.makespan.Observe(makespan)
	}
}

func (c *Collector) SetSessions(n int) {
	if c == nil {
		return
	}
	c.activeSessions.Set(float64(n))
}
