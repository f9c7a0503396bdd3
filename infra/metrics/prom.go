// Package metrics provides the solve-event sink implementations: Prometheus,
// InfluxDB and a fan-out over both.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/wardplan/wardplan/core/metrics"
)

// PromSink records solve events in Prometheus metrics.
type PromSink struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	vars     prometheus.Gauge
}

// NewPromSink registers solve metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartPromServer.
func NewPromSink() (coremetrics.SolveSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.SolveSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solve_requests_total",
		Help: "Total number of schedule solve requests",
	}, []string{"status", "custom_rules"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solve_duration_seconds",
		Help:    "Wall-clock time spent building and solving a roster model",
		Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"status"})
	vars := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solve_model_variables",
		Help: "Number of boolean variables in the last solved model",
	})

	if err := reg.Register(requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			requests = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(vars); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			vars = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{requests: requests, duration: duration, vars: vars}, nil
}

// RecordSolve increments the request counter and observes the solve duration.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	s.requests.WithLabelValues(ev.Status, strconv.FormatBool(ev.CustomRules)).Inc()
	s.duration.WithLabelValues(ev.Status).Observe(ev.Duration.Seconds())
	s.vars.Set(float64(ev.Variables))
	return nil
}
