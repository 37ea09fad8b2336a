package listingqa

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// Report collects the results of a suite run in suite order.
type Report struct {
	Results []Result
}

// Passed reports whether every executed check passed.
func (r Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Failed returns the names of checks that failed or could not be evaluated.
func (r Report) Failed() []string {
	var out []string
	for _, res := range r.Results {
		if !res.Passed || res.Err != nil {
			out = append(out, res.Name)
		}
	}
	return out
}

// Issues returns all issues of the report, each tagged with its check name.
func (r Report) Issues() Issues {
	var all Issues
	for _, res := range r.Results {
		all = append(all, res.Issues...)
	}
	return all
}

// Run executes checks against in and returns their results in the order the
// checks were given. Checks are independent, so with opt.Concurrency > 1 they
// run concurrently; a failing check never stops the others.
func Run(ctx context.Context, checks []Check, in Input, opt RunOpt) Report {
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	results := make([]Result, len(checks))
	limit := opt.Concurrency
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i, c := range checks {
		i, c := i, c
		g.Go(func() error {
			results[i] = runOne(ctx, c, in, opt)
			return nil
		})
	}
	_ = g.Wait()

	rep := Report{Results: results}
	if opt.Logger != nil {
		opt.Logger.LogReport(ctx, rep)
	}
	return rep
}

func runOne(ctx context.Context, c Check, in Input, opt RunOpt) (res Result) {
	res.Name = c.Name()
	defer func() {
		if opt.Logger != nil {
			opt.Logger.LogCheck(ctx, res)
		}
		if opt.Observer != nil {
			opt.Observer.ObserveCheck(res)
		}
	}()
	if slices.Contains(opt.Skip, res.Name) {
		res.Skipped = true
		res.Passed = true
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	err := safeRun(ctx, c, in)
	res.Duration = time.Since(start)
	if err == nil {
		res.Passed = true
		return res
	}
	if iss, ok := AsIssues(err); ok {
		res.Issues = iss.WithRule(res.Name)
		return res
	}
	res.Err = err
	return res
}

func safeRun(ctx context.Context, c Check, in Input) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check %s panicked: %v", c.Name(), r)
		}
	}()
	return c.Run(ctx, in)
}
