package listingqa

import "time"

// Params are the caller-supplied scalar parameters of the checks.
type Params struct {
	MinPrice    float64
	MaxPrice    float64
	KLThreshold float64
}

// Input bundles everything a Check may read. Reference is only consulted by
// checks that compare distributions.
type Input struct {
	Data      *Dataset
	Reference *Dataset
	Params    Params
}

// RunOpt configures a suite run.
type RunOpt struct {
	// FailFast stops scanning checks at their first violation. It does not
	// stop other checks from running.
	FailFast bool
	// Concurrency bounds how many checks run at once; <= 1 runs sequentially.
	Concurrency int
	// Skip lists check names that are not executed.
	Skip []string
	// Logger receives one entry per check. Nil disables logging.
	Logger *Logger
	// Observer is notified after each check completes.
	Observer Observer
}

// Result is the outcome of one check.
type Result struct {
	Name     string
	Passed   bool
	Skipped  bool
	Issues   Issues
	Err      error // infrastructure error (not a check violation)
	Duration time.Duration
}

// Observer receives check outcomes, e.g. to record metrics.
type Observer interface {
	ObserveCheck(r Result)
}
