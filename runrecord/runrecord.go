// Package runrecord persists one JSON document per CLI run: the job type,
// the effective configuration, the artifacts used and produced, and the
// check outcomes.
package runrecord

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	listingqa "github.com/reoring/listingqa"
	"github.com/reoring/listingqa/internal/metrics"
)

// Job types.
const (
	JobCheck = "data_check"
	JobClean = "basic_cleaning"
)

// Issue is the serialized form of a listingqa.Issue.
type Issue struct {
	Path    string            `json:"path"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Hint    string            `json:"hint,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
}

// CheckResult is the serialized form of a listingqa.Result.
type CheckResult struct {
	Name       string  `json:"name"`
	Outcome    string  `json:"outcome"`
	DurationMS float64 `json:"duration_ms"`
	Error      string  `json:"error,omitempty"`
	Issues     []Issue `json:"issues,omitempty"`
}

// Record describes one run.
type Record struct {
	ID         string         `json:"id"`
	JobType    string         `json:"job_type"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Config     any            `json:"config,omitempty"`
	Inputs     []string       `json:"inputs,omitempty"`
	Outputs    []string       `json:"outputs,omitempty"`
	Summary    map[string]int `json:"summary,omitempty"`
	Results    []CheckResult  `json:"results,omitempty"`
	Passed     bool           `json:"passed"`
}

// New starts a record for jobType with a fresh random ID.
func New(jobType string) *Record {
	return &Record{
		ID:        uuid.NewString(),
		JobType:   jobType,
		StartedAt: time.Now().UTC(),
	}
}

// AddReport appends the results of a check run and sets Passed.
func (r *Record) AddReport(rep listingqa.Report) {
	for _, res := range rep.Results {
		cr := CheckResult{
			Name:       res.Name,
			Outcome:    metrics.Outcome(res),
			DurationMS: float64(res.Duration) / float64(time.Millisecond),
		}
		if res.Err != nil {
			cr.Error = res.Err.Error()
		}
		for _, it := range res.Issues {
			cr.Issues = append(cr.Issues, Issue{
				Path:    it.Path,
				Code:    it.Code,
				Message: it.Message,
				Hint:    it.Hint,
				Params:  listingqa.IssueParams(it),
			})
		}
		r.Results = append(r.Results, cr)
	}
	r.Passed = rep.Passed()
}

// Finish stamps FinishedAt.
func (r *Record) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Write stores the record as <dir>/<id>.json and returns the file path.
func (r *Record) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("runrecord: %w", err)
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("runrecord: encode: %w", err)
	}
	path := filepath.Join(dir, r.ID+".json")
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("runrecord: %w", err)
	}
	return path, nil
}

// Read loads a record written by Write.
func Read(path string) (*Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("runrecord: %w", err)
	}
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("runrecord: decode %s: %w", path, err)
	}
	return &r, nil
}
