package listingqa

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/reoring/listingqa/i18n"
)

// maxReportedRows caps the row indices listed in an out_of_bounds issue.
const maxReportedRows = 10

// CheckProperBoundaries verifies every listing lies inside NYCBoundary,
// edges included. Longitude and latitude violations are reported as separate
// issues.
func CheckProperBoundaries(ctx context.Context, d *Dataset) error {
	if d == nil {
		return missingInput(NameProperBoundaries, "dataset")
	}
	box := NYCBoundary()
	iss := scanBounds(ctx, d,
		bound{col: ColLongitude, min: box.MinLongitude, max: box.MaxLongitude, value: func(l *Listing) float64 { return l.Longitude }},
		bound{col: ColLatitude, min: box.MinLatitude, max: box.MaxLatitude, value: func(l *Listing) float64 { return l.Latitude }},
	)
	return issuesOrNil(iss.WithRule(NameProperBoundaries))
}

// CheckPriceRange verifies every price lies in [minPrice, maxPrice]. The
// bounds themselves are not validated; minPrice > maxPrice fails every row.
func CheckPriceRange(ctx context.Context, d *Dataset, minPrice, maxPrice float64) error {
	if d == nil {
		return missingInput(NamePriceRange, "dataset")
	}
	iss := scanBounds(ctx, d,
		bound{col: ColPrice, min: minPrice, max: maxPrice, value: func(l *Listing) float64 { return l.Price }},
	)
	return issuesOrNil(iss.WithRule(NamePriceRange))
}

// CheckRowCount verifies MinRowCount < rows < MaxRowCount.
func CheckRowCount(d *Dataset) error {
	if d == nil {
		return missingInput(NameRowCount, "dataset")
	}
	n := d.Len()
	if n > MinRowCount && n < MaxRowCount {
		return nil
	}
	params := map[string]any{"min": MinRowCount, "max": MaxRowCount, "got": n}
	msg := i18n.T("out_of_bounds.row_count", stringParams(params))
	return Issues{IssueAt(Root().Field("rows"), CodeOutOfBounds, msg, params)}.WithRule(NameRowCount)
}

// bound is an inclusive [min, max] constraint on one numeric column.
type bound struct {
	col      string
	min, max float64
	value    func(*Listing) float64
}

func (b bound) contains(v float64) bool { return between(v, b.min, b.max) }

// scanBounds evaluates all bounds in a single pass over the rows and returns
// one aggregated issue per violated bound. Under fail-fast the scan stops at
// the first violating row.
func scanBounds(ctx context.Context, d *Dataset, bounds ...bound) Issues {
	failFast := IsFailFast(ctx)
	bad := make([]*roaring.Bitmap, len(bounds))
	for i := range bad {
		bad[i] = roaring.New()
	}
	for i := range d.Rows {
		row := &d.Rows[i]
		violated := false
		for j, b := range bounds {
			if !b.contains(b.value(row)) {
				bad[j].Add(uint32(i))
				violated = true
			}
		}
		if violated && failFast {
			break
		}
	}

	var iss Issues
	for j, b := range bounds {
		if bad[j].IsEmpty() {
			continue
		}
		iss = append(iss, boundsIssue(d, b, bad[j]))
	}
	return iss
}

func boundsIssue(d *Dataset, b bound, rows *roaring.Bitmap) Issue {
	first := int(rows.Minimum())
	sample := make([]int, 0, maxReportedRows)
	it := rows.Iterator()
	for it.HasNext() && len(sample) < maxReportedRows {
		sample = append(sample, int(it.Next()))
	}
	params := map[string]any{
		"field":      b.col,
		"min":        b.min,
		"max":        b.max,
		"got":        b.value(&d.Rows[first]),
		"violations": rows.GetCardinality(),
		"rows":       sample,
	}
	issue := IssueAt(RowPath(first, b.col), CodeOutOfBounds, "", params)
	issue.Hint = fmt.Sprintf("fix or drop the rows with %s outside [%s, %s]", b.col, formatParam(b.min), formatParam(b.max))
	return issue
}
