// Package metrics provides Prometheus metrics for bend sheet generation
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder collects generation metrics in its own registry
type Recorder struct {
	registry *prometheus.Registry

	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	WarningsTotal      *prometheus.CounterVec
}

// NewRecorder creates a recorder with a fresh registry
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		GenerationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobend_generations_total",
				Help: "Total number of bend sheet generations",
			},
			[]string{"status"},
		),
		GenerationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gobend_generation_duration_seconds",
				Help:    "Time taken to generate a bend sheet",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		WarningsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobend_warnings_total",
				Help: "Total number of warnings attached to generated bend sheets",
			},
			[]string{"kind"},
		),
	}
}

// Registry returns the registry the metrics are registered with
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordGeneration records one generation outcome
func (r *Recorder) RecordGeneration(status string, duration time.Duration) {
	r.GenerationsTotal.WithLabelValues(status).Inc()
	r.GenerationDuration.Observe(duration.Seconds())
}

// RecordWarning records a warning of the given kind
func (r *Recorder) RecordWarning(kind string) {
	r.WarningsTotal.WithLabelValues(kind).Inc()
}

// WriteToTextfile writes the metrics in the node exporter textfile format
func (r *Recorder) WriteToTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, r.registry)
}
