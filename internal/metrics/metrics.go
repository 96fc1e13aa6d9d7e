// Package metrics counts patch outcomes with Prometheus collectors. A run is
// short-lived, so the registry is written out as a node-exporter textfile
// instead of being scraped.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"formrestyle/internal/patch"
)

// Metrics holds the collectors for one process.
type Metrics struct {
	registry     *prometheus.Registry
	Files        *prometheus.CounterVec
	StepChanges  *prometheus.CounterVec
	FileDuration prometheus.Histogram
}

// New creates and registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "formrestyle_files_total",
			Help: "Targets processed, by outcome status",
		}, []string{"status"}),
		StepChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "formrestyle_step_changes_total",
			Help: "Times a step altered a target's content",
		}, []string{"step"}),
		FileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "formrestyle_file_duration_seconds",
			Help:    "Time spent reading, patching and writing one target",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
	m.registry.MustRegister(m.Files, m.StepChanges, m.FileDuration)
	return m
}

// Observe records one outcome. It satisfies patch.Recorder.
func (m *Metrics) Observe(o patch.Outcome) {
	m.Files.WithLabelValues(string(o.Status)).Inc()
	for _, step := range o.Changed {
		m.StepChanges.WithLabelValues(step).Inc()
	}
	if o.Status != patch.StatusMissing {
		m.FileDuration.Observe(o.Duration.Seconds())
	}
}

// Gatherer exposes the registry for tests and custom exporters.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

// WriteTextfile writes the registry in text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
