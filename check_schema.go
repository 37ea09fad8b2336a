package listingqa

// CheckColumnNames verifies the dataset header equals ExpectedColumns exactly,
// order included.
func CheckColumnNames(d *Dataset) error {
	if d == nil {
		return missingInput(NameColumnNames, "dataset")
	}
	want := expectedColumns[:]
	got := d.Columns
	idx := firstDifference(want, got)
	if idx < 0 {
		return nil
	}
	p := Root().Field("columns")
	if idx < len(got) {
		p = p.Index(idx)
	}
	params := map[string]any{
		"expected": ExpectedColumns(),
		"got":      append([]string(nil), got...),
		"index":    idx,
	}
	return Issues{IssueAt(p, CodeSchemaMismatch, "", params)}.WithRule(NameColumnNames)
}

// firstDifference returns the first index at which a and b differ, or -1 when
// they are equal.
func firstDifference(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
