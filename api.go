package listingqa

import (
	"context"
)

// Check names, as reported in results, logs and run records.
const (
	NameColumnNames              = "column_names"
	NameNeighbourhoodNames       = "neighbourhood_names"
	NameProperBoundaries         = "proper_boundaries"
	NameRowCount                 = "row_count"
	NamePriceRange               = "price_range"
	NameSimilarNeighbourhoodDist = "similar_neigh_distrib"
)

// Check is a named, stateless assertion over the Input. Run returns nil when
// the dataset satisfies the check and Issues when it does not. Any other error
// means the check could not be evaluated.
type Check interface {
	Name() string
	Run(ctx context.Context, in Input) error
}

// CheckFunc adapts a function to the Check interface.
type CheckFunc struct {
	name string
	fn   func(ctx context.Context, in Input) error
}

// NewCheck returns a Check named name that runs fn.
func NewCheck(name string, fn func(ctx context.Context, in Input) error) Check {
	return CheckFunc{name: name, fn: fn}
}

func (c CheckFunc) Name() string { return c.name }

func (c CheckFunc) Run(ctx context.Context, in Input) error { return c.fn(ctx, in) }

// DefaultChecks returns the full listings suite in its canonical order.
func DefaultChecks() []Check {
	return []Check{
		NewCheck(NameColumnNames, func(_ context.Context, in Input) error {
			return CheckColumnNames(in.Data)
		}),
		NewCheck(NameNeighbourhoodNames, func(_ context.Context, in Input) error {
			return CheckNeighbourhoodNames(in.Data)
		}),
		NewCheck(NameProperBoundaries, func(ctx context.Context, in Input) error {
			return CheckProperBoundaries(ctx, in.Data)
		}),
		NewCheck(NameSimilarNeighbourhoodDist, func(_ context.Context, in Input) error {
			return CheckSimilarNeighbourhoodDistribution(in.Data, in.Reference, in.Params.KLThreshold)
		}),
		NewCheck(NameRowCount, func(_ context.Context, in Input) error {
			return CheckRowCount(in.Data)
		}),
		NewCheck(NamePriceRange, func(ctx context.Context, in Input) error {
			return CheckPriceRange(ctx, in.Data, in.Params.MinPrice, in.Params.MaxPrice)
		}),
	}
}

// ---- Check-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that makes scanning checks stop at the
// first violating record. Run sets it from RunOpt.FailFast.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current check should stop on the first violation.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}

// missingInput is returned when a check is handed a nil dataset.
func missingInput(rule, what string) error {
	return Issues{IssueAt(Root(), CodeDependencyUnavailable, "", map[string]any{"what": what})}.WithRule(rule)
}
