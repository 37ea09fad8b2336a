package listingqa_test

import (
	"context"
	"math"
	"testing"

	listingqa "github.com/reoring/listingqa"
)

func TestCheckProperBoundaries(t *testing.T) {
	ctx := context.Background()
	d := sample(4)
	d.Rows[0].Longitude, d.Rows[0].Latitude = -74.25, 40.5
	d.Rows[1].Longitude, d.Rows[1].Latitude = -73.50, 41.2
	if err := listingqa.CheckProperBoundaries(ctx, d); err != nil {
		t.Fatalf("edges are inside, got %v", err)
	}

	d.Rows[2].Longitude = -73.0
	iss := issuesOf(listingqa.CheckProperBoundaries(ctx, d))
	if len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", iss)
	}
	if iss[0].Code != listingqa.CodeOutOfBounds || iss[0].Path != "/rows/2/longitude" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}

	d.Rows[3].Latitude = math.NaN()
	iss = issuesOf(listingqa.CheckProperBoundaries(ctx, d))
	if len(iss) != 2 || iss[1].Path != "/rows/3/latitude" {
		t.Fatalf("expected longitude and latitude issues, got %v", iss)
	}
}

func TestCheckPriceRange(t *testing.T) {
	ctx := context.Background()
	d := sample(2)
	d.Rows[0].Price, d.Rows[1].Price = 10, 100
	if err := listingqa.CheckPriceRange(ctx, d, 10, 100); err != nil {
		t.Fatalf("bounds are inclusive, got %v", err)
	}

	d = sample(4)
	d.Rows[1].Price = 9.99
	d.Rows[3].Price = 100.01
	iss := issuesOf(listingqa.CheckPriceRange(ctx, d, 10, 100))
	if len(iss) != 1 {
		t.Fatalf("expected one aggregated issue, got %v", iss)
	}
	it := iss[0]
	if it.Path != "/rows/1/price" || it.Rule != listingqa.NamePriceRange {
		t.Fatalf("unexpected issue: %+v", it)
	}
	if it.Hint != "fix or drop the rows with price outside [10, 100]" {
		t.Fatalf("hint: %q", it.Hint)
	}
	if got := it.Params["violations"]; got != uint64(2) {
		t.Fatalf("violations: got %v", got)
	}
	if rows, _ := it.Params["rows"].([]int); len(rows) != 2 || rows[0] != 1 || rows[1] != 3 {
		t.Fatalf("rows: got %v", it.Params["rows"])
	}
}

func TestCheckPriceRange_InvertedBoundsFailEveryRow(t *testing.T) {
	iss := issuesOf(listingqa.CheckPriceRange(context.Background(), sample(3), 100, 10))
	if len(iss) != 1 || iss[0].Params["violations"] != uint64(3) {
		t.Fatalf("expected all rows to violate, got %v", iss)
	}
}

func TestCheckPriceRange_EmptyPasses(t *testing.T) {
	if err := listingqa.CheckPriceRange(context.Background(), &listingqa.Dataset{}, 10, 100); err != nil {
		t.Fatalf("expected vacuous pass, got %v", err)
	}
}

func TestCheckPriceRange_FailFast(t *testing.T) {
	d := sample(5)
	for i := range d.Rows {
		d.Rows[i].Price = 1
	}
	ctx := listingqa.WithFailFast(context.Background(), true)
	iss := issuesOf(listingqa.CheckPriceRange(ctx, d, 10, 100))
	if len(iss) != 1 || iss[0].Params["violations"] != uint64(1) {
		t.Fatalf("fail-fast should stop at the first row, got %v", iss)
	}
}

func TestCheckRowCount(t *testing.T) {
	cases := []struct {
		rows int
		pass bool
	}{
		{0, false},
		{listingqa.MinRowCount, false},
		{listingqa.MinRowCount + 1, true},
		{listingqa.MaxRowCount - 1, true},
		{listingqa.MaxRowCount, false},
	}
	for _, tc := range cases {
		if tc.rows >= listingqa.MaxRowCount-1 && testing.Short() {
			continue
		}
		d := &listingqa.Dataset{Rows: make([]listingqa.Listing, tc.rows)}
		err := listingqa.CheckRowCount(d)
		if (err == nil) != tc.pass {
			t.Fatalf("rows=%d: pass=%v, err=%v", tc.rows, tc.pass, err)
		}
		if err != nil {
			iss := issuesOf(err)
			if len(iss) != 1 || iss[0].Path != "/rows" || iss[0].Params["got"] != tc.rows {
				t.Fatalf("rows=%d: unexpected issue %v", tc.rows, iss)
			}
		}
	}
}

func TestBoundaryBox(t *testing.T) {
	box := listingqa.NYCBoundary()
	if !box.Contains(-74.25, 41.2) || !box.Contains(-73.5, 40.5) {
		t.Fatalf("corners must be contained")
	}
	if box.Contains(-74.2501, 40.7) || box.Contains(-73.9, 41.2001) || box.Contains(math.NaN(), 40.7) {
		t.Fatalf("points outside must not be contained")
	}
}
