package clean

import (
	"context"
	"math"
	"testing"

	listingqa "github.com/reoring/listingqa"
)

func listing(id int64, price, lon, lat float64) listingqa.Listing {
	return listingqa.Listing{ID: id, NeighbourhoodGroup: "Manhattan", Price: price, Longitude: lon, Latitude: lat}
}

func TestRun_FiltersPriceThenGeo(t *testing.T) {
	in := &listingqa.Dataset{
		Name:    "sample.csv",
		Columns: listingqa.ExpectedColumns(),
		Rows: []listingqa.Listing{
			listing(1, 100, -73.95, 40.7),   // kept
			listing(2, 9.99, -73.95, 40.7),  // price
			listing(3, 350, -74.25, 41.2),   // kept, edges inclusive
			listing(4, 120, -73.0, 40.7),    // geo
			listing(5, 5, -73.0, 40.7),      // both, counted as price
			listing(6, math.NaN(), -74, 41), // price
			listing(7, 10, -74, 40.4),       // geo
		},
	}
	out, sum, err := Run(in, Options{MinPrice: 10, MaxPrice: 350})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Summary{Input: 7, DroppedPrice: 3, DroppedGeo: 2, Output: 2}
	if sum != want {
		t.Fatalf("summary: got %+v want %+v", sum, want)
	}
	if sum.Dropped(ReasonPrice) != 3 || sum.Dropped(ReasonGeo) != 2 || sum.Dropped("other") != 0 {
		t.Fatalf("Dropped mismatch: %+v", sum)
	}
	if out.Len() != 2 || out.Rows[0].ID != 1 || out.Rows[1].ID != 3 {
		t.Fatalf("unexpected rows: %+v", out.Rows)
	}
	if out.Name != in.Name || len(out.Columns) != len(in.Columns) {
		t.Fatalf("header not preserved: %+v", out)
	}
	if in.Len() != 7 {
		t.Fatalf("input modified: %d rows", in.Len())
	}
}

func TestRun_OutputPassesRangeChecks(t *testing.T) {
	in := &listingqa.Dataset{Rows: []listingqa.Listing{
		listing(1, 5, -73.9, 40.7),
		listing(2, 50, -75, 40.7),
		listing(3, 60, -73.9, 40.8),
	}}
	out, _, err := Run(in, Options{MinPrice: 10, MaxPrice: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := listingqa.CheckPriceRange(ctx, out, 10, 100); err != nil {
		t.Fatalf("price check failed on cleaned data: %v", err)
	}
	if err := listingqa.CheckProperBoundaries(ctx, out); err != nil {
		t.Fatalf("boundary check failed on cleaned data: %v", err)
	}
}

func TestRun_InvalidInput(t *testing.T) {
	if _, _, err := Run(nil, Options{MaxPrice: 1}); err == nil {
		t.Fatalf("expected error for nil dataset")
	}
	if _, _, err := Run(&listingqa.Dataset{}, Options{MinPrice: 2, MaxPrice: 1}); err == nil {
		t.Fatalf("expected error for inverted price range")
	}
}
