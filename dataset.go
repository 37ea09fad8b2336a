package listingqa

import "time"

// Canonical column names of the listings dataset, in file order.
const (
	ColID                          = "id"
	ColName                        = "name"
	ColHostID                      = "host_id"
	ColHostName                    = "host_name"
	ColNeighbourhoodGroup          = "neighbourhood_group"
	ColNeighbourhood               = "neighbourhood"
	ColLatitude                    = "latitude"
	ColLongitude                   = "longitude"
	ColRoomType                    = "room_type"
	ColPrice                       = "price"
	ColMinimumNights               = "minimum_nights"
	ColNumberOfReviews             = "number_of_reviews"
	ColLastReview                  = "last_review"
	ColReviewsPerMonth             = "reviews_per_month"
	ColCalculatedHostListingsCount = "calculated_host_listings_count"
	ColAvailability365             = "availability_365"
)

var expectedColumns = [...]string{
	ColID,
	ColName,
	ColHostID,
	ColHostName,
	ColNeighbourhoodGroup,
	ColNeighbourhood,
	ColLatitude,
	ColLongitude,
	ColRoomType,
	ColPrice,
	ColMinimumNights,
	ColNumberOfReviews,
	ColLastReview,
	ColReviewsPerMonth,
	ColCalculatedHostListingsCount,
	ColAvailability365,
}

// ExpectedColumns returns the canonical column order. The result is a fresh
// slice owned by the caller.
func ExpectedColumns() []string {
	out := make([]string, len(expectedColumns))
	copy(out, expectedColumns[:])
	return out
}

var neighbourhoodGroups = [...]string{"Bronx", "Brooklyn", "Manhattan", "Queens", "Staten Island"}

// NeighbourhoodGroups returns the closed set of accepted neighbourhood_group
// values, sorted.
func NeighbourhoodGroups() []string {
	out := make([]string, len(neighbourhoodGroups))
	copy(out, neighbourhoodGroups[:])
	return out
}

// Open row-count interval: MinRowCount < rows < MaxRowCount.
const (
	MinRowCount = 15000
	MaxRowCount = 1000000
)

// Listing is one record of the dataset. Nullable columns are pointers.
type Listing struct {
	ID                          int64
	Name                        string
	HostID                      int64
	HostName                    string
	NeighbourhoodGroup          string
	Neighbourhood               string
	Latitude                    float64
	Longitude                   float64
	RoomType                    string
	Price                       float64
	MinimumNights               int64
	NumberOfReviews             int64
	LastReview                  *time.Time
	ReviewsPerMonth             *float64
	CalculatedHostListingsCount int64
	Availability365             int64
}

// Dataset is a fully materialized table of listings.
//
// Columns keeps the header exactly as read, so a dataset with an unexpected
// schema can still be loaded and reported on.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Listing
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// NeighbourhoodGroupValues returns the neighbourhood_group column.
func (d *Dataset) NeighbourhoodGroupValues() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.Rows))
	for i := range d.Rows {
		out[i] = d.Rows[i].NeighbourhoodGroup
	}
	return out
}

// BoundaryBox is a closed longitude/latitude rectangle.
type BoundaryBox struct {
	MinLongitude float64
	MaxLongitude float64
	MinLatitude  float64
	MaxLatitude  float64
}

// NYCBoundary returns the box that every listing must fall within.
func NYCBoundary() BoundaryBox {
	return BoundaryBox{
		MinLongitude: -74.25,
		MaxLongitude: -73.50,
		MinLatitude:  40.5,
		MaxLatitude:  41.2,
	}
}

// ContainsLongitude reports min <= lon <= max. NaN is never contained.
func (b BoundaryBox) ContainsLongitude(lon float64) bool {
	return between(lon, b.MinLongitude, b.MaxLongitude)
}

// ContainsLatitude reports min <= lat <= max. NaN is never contained.
func (b BoundaryBox) ContainsLatitude(lat float64) bool {
	return between(lat, b.MinLatitude, b.MaxLatitude)
}

// Contains reports whether the point lies inside the box, edges included.
func (b BoundaryBox) Contains(lon, lat float64) bool {
	return b.ContainsLongitude(lon) && b.ContainsLatitude(lat)
}

func between(v, lo, hi float64) bool { return v >= lo && v <= hi }
