// Package clean implements the cleaning stage that turns a raw listings
// sample into the dataset the checks are run against.
package clean

import (
	"fmt"

	listingqa "github.com/reoring/listingqa"
)

// Drop reasons, as used in Summary and metrics labels.
const (
	ReasonPrice = "price"
	ReasonGeo   = "geo"
)

// Options configures a cleaning run.
type Options struct {
	MinPrice float64
	MaxPrice float64
}

// Summary counts the rows seen and removed by Run.
type Summary struct {
	Input        int
	DroppedPrice int
	DroppedGeo   int
	Output       int
}

// Dropped returns the rows removed for reason.
func (s Summary) Dropped(reason string) int {
	switch reason {
	case ReasonPrice:
		return s.DroppedPrice
	case ReasonGeo:
		return s.DroppedGeo
	default:
		return 0
	}
}

// Run returns a copy of d that keeps only rows priced within
// [MinPrice, MaxPrice] and located inside listingqa.NYCBoundary. Rows are
// checked for price first, so a row failing both is counted as a price drop.
// The header and row order are preserved; d is not modified.
func Run(d *listingqa.Dataset, opts Options) (*listingqa.Dataset, Summary, error) {
	if d == nil {
		return nil, Summary{}, fmt.Errorf("clean: nil dataset")
	}
	if opts.MinPrice > opts.MaxPrice {
		return nil, Summary{}, fmt.Errorf("clean: min price %g exceeds max price %g", opts.MinPrice, opts.MaxPrice)
	}
	box := listingqa.NYCBoundary()
	out := &listingqa.Dataset{
		Name:    d.Name,
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]listingqa.Listing, 0, len(d.Rows)),
	}
	sum := Summary{Input: len(d.Rows)}
	for _, row := range d.Rows {
		if !(row.Price >= opts.MinPrice && row.Price <= opts.MaxPrice) {
			sum.DroppedPrice++
			continue
		}
		if !box.Contains(row.Longitude, row.Latitude) {
			sum.DroppedGeo++
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	sum.Output = len(out.Rows)
	return out, sum, nil
}
