// Package metrics records conversion counters in a Prometheus registry.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors of one process. Each instance owns its
// registry so tests do not share state.
type Metrics struct {
	registry *prometheus.Registry

	EventsScanned   prometheus.Counter
	EventsDropped   prometheus.Counter
	Buckets         prometheus.Gauge
	RowsWritten     *prometheus.CounterVec
	FilesWritten    prometheus.Counter
	EmitErrors      prometheus.Counter
	ConvertDuration prometheus.Histogram
}

// New creates and registers the conversion collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		EventsScanned: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "xes2arff_events_scanned_total",
				Help: "Total number of events read from the input log",
			},
		),

		EventsDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "xes2arff_events_dropped_total",
				Help: "Total number of events skipped for lacking the classifier attribute",
			},
		),

		Buckets: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "xes2arff_buckets",
				Help: "Number of distinct classifier values in the last conversion",
			},
		),

		RowsWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xes2arff_rows_written_total",
				Help: "Total number of data rows written, by classifier value",
			},
			[]string{"bucket"},
		),

		FilesWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "xes2arff_files_written_total",
				Help: "Total number of ARFF files written",
			},
		),

		EmitErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "xes2arff_emit_errors_total",
				Help: "Total number of tables that failed to be written",
			},
		),

		ConvertDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "xes2arff_convert_duration_seconds",
				Help:    "Duration of a conversion run in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
