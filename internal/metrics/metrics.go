// Package metrics exports batch analysis results as Prometheus metrics in the
// node exporter textfile format.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sartorproj/goextreme/analysis"
)

const namespace = "goextreme"

// Metrics holds the gauges and counters of one batch run.
type Metrics struct {
	registry *prometheus.Registry

	FieldsAnalyzed prometheus.Counter
	FitFailures    *prometheus.CounterVec // labels: field, status
	Samples        *prometheus.GaugeVec   // labels: field
	ReturnValue    *prometheus.GaugeVec   // labels: field, period
	Skewness       *prometheus.GaugeVec   // labels: field
	RunDuration    prometheus.Gauge
	LastRun        prometheus.Gauge
}

// New creates metrics registered on their own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FieldsAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fields_analyzed_total",
			Help:      "Fields analyzed in this run.",
		}),
		FitFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fit_failures_total",
			Help:      "Fields whose distribution could not be fitted, by status.",
		}, []string{"field", "status"}),
		Samples: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "extreme_samples",
			Help:      "Number of period extremes per field.",
		}, []string{"field"}),
		ReturnValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "return_value",
			Help:      "Pearson III design value per field and return period in years.",
		}, []string{"field", "period"}),
		Skewness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "skewness",
			Help:      "Fitted skewness coefficient per field.",
		}, []string{"field"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the analysis run.",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the run finished.",
		}),
	}

	m.registry.MustRegister(
		m.FieldsAnalyzed,
		m.FitFailures,
		m.Samples,
		m.ReturnValue,
		m.Skewness,
		m.RunDuration,
		m.LastRun,
	)
	return m
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records the outcome of one field.
func (m *Metrics) Observe(r *analysis.Result) {
	m.FieldsAnalyzed.Inc()
	m.Samples.WithLabelValues(r.Field).Set(float64(len(r.Samples)))
	if !r.Fitted() {
		m.FitFailures.WithLabelValues(r.Field, string(r.Status)).Inc()
		return
	}
	m.Skewness.WithLabelValues(r.Field).Set(r.Params.Skewness)
	for _, rv := range r.ReturnValues {
		m.ReturnValue.WithLabelValues(r.Field, FormatPeriod(rv.Period)).Set(rv.Value)
	}
}

// Finish records the run duration and completion time.
func (m *Metrics) Finish(duration time.Duration, now time.Time) {
	m.RunDuration.Set(duration.Seconds())
	m.LastRun.Set(float64(now.Unix()))
}

// WriteTextfile writes all metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// FormatPeriod renders a return period as a label value ("100", "2.5").
func FormatPeriod(period float64) string {
	return strconv.FormatFloat(period, 'f', -1, 64)
}
