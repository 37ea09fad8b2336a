package listingqa

import (
	"sort"

	"github.com/reoring/listingqa/stats"
)

// CheckNeighbourhoodNames verifies the distinct neighbourhood_group values
// equal NeighbourhoodGroups as a set: no unexpected value and none missing.
func CheckNeighbourhoodNames(d *Dataset) error {
	if d == nil {
		return missingInput(NameNeighbourhoodNames, "dataset")
	}
	firstRow := make(map[string]int)
	for i := range d.Rows {
		v := d.Rows[i].NeighbourhoodGroup
		if _, ok := firstRow[v]; !ok {
			firstRow[v] = i
		}
	}
	observed := make([]string, 0, len(firstRow))
	for v := range firstRow {
		observed = append(observed, v)
	}
	sort.Strings(observed)
	known := neighbourhoodGroups[:]

	var iss Issues
	for _, v := range stats.Difference(observed, known) {
		iss = append(iss, IssueAt(RowPath(firstRow[v], ColNeighbourhoodGroup), CodeUnexpectedCategory, "",
			map[string]any{"value": v, "expected": NeighbourhoodGroups()}))
	}
	for _, v := range stats.Difference(known, observed) {
		iss = append(iss, IssueAt(Root().Field(ColNeighbourhoodGroup), CodeMissingCategory, "",
			map[string]any{"value": v, "expected": NeighbourhoodGroups()}))
	}
	return issuesOrNil(iss.WithRule(NameNeighbourhoodNames))
}
