package listingqa_test

import (
	listingqa "github.com/reoring/listingqa"
)

// sample builds n valid listings cycling through every neighbourhood group.
func sample(n int) *listingqa.Dataset {
	groups := listingqa.NeighbourhoodGroups()
	d := &listingqa.Dataset{Name: "sample", Columns: listingqa.ExpectedColumns(), Rows: make([]listingqa.Listing, n)}
	for i := range d.Rows {
		d.Rows[i] = listingqa.Listing{
			ID:                 int64(i + 1),
			NeighbourhoodGroup: groups[i%len(groups)],
			Latitude:           40.7,
			Longitude:          -73.9,
			Price:              50,
		}
	}
	return d
}

// withGroups builds one listing per value.
func withGroups(values ...string) *listingqa.Dataset {
	d := sample(len(values))
	for i, v := range values {
		d.Rows[i].NeighbourhoodGroup = v
	}
	return d
}

func issuesOf(err error) listingqa.Issues {
	iss, _ := listingqa.AsIssues(err)
	return iss
}
