package metrics

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listingqa "github.com/reoring/listingqa"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomePassed, Outcome(listingqa.Result{Passed: true}))
	assert.Equal(t, OutcomeSkipped, Outcome(listingqa.Result{Passed: true, Skipped: true}))
	assert.Equal(t, OutcomeFailed, Outcome(listingqa.Result{Issues: listingqa.Issues{{Code: listingqa.CodeOutOfBounds}}}))
	assert.Equal(t, OutcomeErrored, Outcome(listingqa.Result{Err: errors.New("boom")}))
}

func TestObserveCheck(t *testing.T) {
	m := New()
	m.ObserveCheck(listingqa.Result{Name: "row_count", Passed: true, Duration: time.Millisecond})
	m.ObserveCheck(listingqa.Result{Name: "row_count", Passed: true, Duration: time.Millisecond})
	m.ObserveCheck(listingqa.Result{Name: "price_range"})
	m.ObserveCheck(listingqa.Result{Name: "column_names", Passed: true, Skipped: true})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChecksTotal.WithLabelValues("row_count", OutcomePassed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChecksTotal.WithLabelValues("price_range", OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChecksTotal.WithLabelValues("column_names", OutcomeSkipped)))
	// skipped checks are not timed
	assert.Equal(t, 2, testutil.CollectAndCount(m.CheckDuration))

	n, err := testutil.GatherAndCount(m.Registry(), "listingqa_checks_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGaugesAndCounters(t *testing.T) {
	m := New()
	m.SetDatasetRows("data", &listingqa.Dataset{Rows: make([]listingqa.Listing, 3)})
	m.SetDatasetRows("reference", nil)
	m.SetDivergence("clean_sample.csv:v1", 0.25)
	m.SetDivergence("clean_sample.csv:v2", math.NaN())
	m.AddDropped("price", 4)
	m.AddDropped("geo", 0)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.DatasetRows.WithLabelValues("data")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DatasetRows.WithLabelValues("reference")))
	assert.Equal(t, 0.25, testutil.ToFloat64(m.KLDivergence.WithLabelValues("clean_sample.csv:v1")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.KLDivergence))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.DroppedRows.WithLabelValues("price")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.DroppedRows))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveCheck(listingqa.Result{Name: "row_count"})
	m.SetDatasetRows("data", nil)
	m.SetDivergence("ref", 1)
	m.AddDropped("price", 1)
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.ObserveCheck(listingqa.Result{Name: "row_count", Passed: true})
	path := filepath.Join(t.TempDir(), "listingqa.prom")
	require.NoError(t, m.WriteFile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `listingqa_checks_total{check="row_count",outcome="passed"} 1`)
	assert.NotContains(t, string(b), "listingqa_neighbourhood_kl_divergence{")
}
