// Package metrics records run metrics for the listingqa CLI and exports them
// in the Prometheus text format.
package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	listingqa "github.com/reoring/listingqa"
)

// Check outcome label values.
const (
	OutcomePassed  = "passed"
	OutcomeFailed  = "failed"
	OutcomeErrored = "errored"
	OutcomeSkipped = "skipped"
)

// Metrics provides observability for check and clean runs.
type Metrics struct {
	reg *prometheus.Registry

	// Check outcomes by check name and outcome
	ChecksTotal *prometheus.CounterVec

	// Check latencies by check name
	CheckDuration *prometheus.HistogramVec

	// Rows loaded per dataset role ("data", "reference", "input", "output")
	DatasetRows *prometheus.GaugeVec

	// Last computed neighbourhood_group divergence by reference artifact;
	// absent when the drift check did not run
	KLDivergence *prometheus.GaugeVec

	// Rows removed by the cleaning stage by reason
	DroppedRows *prometheus.CounterVec
}

// New creates a Metrics instance registered on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		ChecksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "listingqa_checks_total",
			Help: "Total data check outcomes by check and outcome",
		}, []string{"check", "outcome"}),

		CheckDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "listingqa_check_duration_seconds",
			Help:    "Duration of individual data checks",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"check"}),

		DatasetRows: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "listingqa_dataset_rows",
			Help: "Number of rows in the loaded datasets",
		}, []string{"dataset"}),

		KLDivergence: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "listingqa_neighbourhood_kl_divergence",
			Help: "KL divergence of neighbourhood_group from the reference, in bits",
		}, []string{"reference"}),

		DroppedRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "listingqa_cleaning_dropped_rows_total",
			Help: "Rows removed by the cleaning stage by reason",
		}, []string{"reason"}),
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveCheck records one check result. It implements listingqa.Observer.
func (m *Metrics) ObserveCheck(r listingqa.Result) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(r.Name, Outcome(r)).Inc()
	if !r.Skipped {
		m.CheckDuration.WithLabelValues(r.Name).Observe(r.Duration.Seconds())
	}
}

// SetDatasetRows records the size of a loaded dataset.
func (m *Metrics) SetDatasetRows(role string, d *listingqa.Dataset) {
	if m != nil {
		m.DatasetRows.WithLabelValues(role).Set(float64(d.Len()))
	}
}

// SetDivergence records the divergence computed against reference. NaN is
// not recorded; +Inf is exported as is.
func (m *Metrics) SetDivergence(reference string, v float64) {
	if m != nil && !math.IsNaN(v) {
		m.KLDivergence.WithLabelValues(reference).Set(v)
	}
}

// AddDropped records rows removed by the cleaning stage.
func (m *Metrics) AddDropped(reason string, n int) {
	if m != nil && n > 0 {
		m.DroppedRows.WithLabelValues(reason).Add(float64(n))
	}
}

// WriteFile writes the current metrics to path in the text exposition
// format, e.g. for the node_exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

// Outcome maps a result to its outcome label.
func Outcome(r listingqa.Result) string {
	switch {
	case r.Skipped:
		return OutcomeSkipped
	case r.Err != nil:
		return OutcomeErrored
	case !r.Passed:
		return OutcomeFailed
	default:
		return OutcomePassed
	}
}

var _ listingqa.Observer = (*Metrics)(nil)
