package runrecord

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listingqa "github.com/reoring/listingqa"
)

func TestRecord_WriteRead(t *testing.T) {
	rec := New(JobCheck)
	_, err := uuid.Parse(rec.ID)
	require.NoError(t, err)

	rec.Inputs = []string{"clean_sample.csv:v2", "clean_sample.csv:reference"}
	rec.Config = map[string]any{"kl_threshold": 0.2}
	rec.AddReport(listingqa.Report{Results: []listingqa.Result{
		{Name: listingqa.NameColumnNames, Passed: true, Duration: 2 * time.Millisecond},
		{Name: listingqa.NameSimilarNeighbourhoodDist, Issues: listingqa.Issues{{
			Path:    "/neighbourhood_group",
			Code:    listingqa.CodeDistributionDrift,
			Message: "drift",
			Hint:    "refresh the reference",
			Params:  map[string]any{"divergence": math.Inf(1), "threshold": 0.2},
		}}},
		{Name: listingqa.NameRowCount, Err: errors.New("boom")},
	}})
	rec.Finish()
	assert.False(t, rec.Passed)

	path, err := rec.Write(filepath.Join(t.TempDir(), "runs"))
	require.NoError(t, err)
	assert.Equal(t, rec.ID+".json", filepath.Base(path))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, JobCheck, got.JobType)
	assert.Equal(t, rec.Inputs, got.Inputs)
	require.Len(t, got.Results, 3)
	assert.Equal(t, "passed", got.Results[0].Outcome)
	assert.InDelta(t, 2.0, got.Results[0].DurationMS, 1e-9)
	assert.Equal(t, "failed", got.Results[1].Outcome)
	require.Len(t, got.Results[1].Issues, 1)
	assert.Equal(t, "+Inf", got.Results[1].Issues[0].Params["divergence"])
	assert.Equal(t, "refresh the reference", got.Results[1].Issues[0].Hint)
	assert.Equal(t, "errored", got.Results[2].Outcome)
	assert.Equal(t, "boom", got.Results[2].Error)
	assert.False(t, got.FinishedAt.Before(got.StartedAt))
}

func TestRecord_PassedReport(t *testing.T) {
	rec := New(JobClean)
	rec.AddReport(listingqa.Report{Results: []listingqa.Result{{Name: "row_count", Passed: true}}})
	assert.True(t, rec.Passed)
	assert.NotEqual(t, rec.ID, New(JobClean).ID)
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
