package stats

import "sort"

// ValueCounts tallies the distinct values and returns them sorted by key
// together with their counts.
func ValueCounts(values []string) (keys []string, counts []float64) {
	m := make(map[string]float64)
	for _, v := range values {
		m[v]++
	}
	keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	counts = make([]float64, len(keys))
	for i, k := range keys {
		counts[i] = m[k]
	}
	return keys, counts
}

// Align lays two keyed count vectors over the sorted union of their keys.
// Keys absent from one side get a zero count on that side. pk and qk must be
// sorted and free of duplicates, as returned by ValueCounts.
func Align(pk []string, pc []float64, qk []string, qc []float64) (keys []string, p, q []float64) {
	i, j := 0, 0
	for i < len(pk) || j < len(qk) {
		switch {
		case j >= len(qk) || (i < len(pk) && pk[i] < qk[j]):
			keys = append(keys, pk[i])
			p = append(p, pc[i])
			q = append(q, 0)
			i++
		case i >= len(pk) || qk[j] < pk[i]:
			keys = append(keys, qk[j])
			p = append(p, 0)
			q = append(q, qc[j])
			j++
		default:
			keys = append(keys, pk[i])
			p = append(p, pc[i])
			q = append(q, qc[j])
			i++
			j++
		}
	}
	return keys, p, q
}

// Difference returns the sorted keys present in a but not in b. Both inputs
// must be sorted.
func Difference(a, b []string) []string {
	var out []string
	j := 0
	for _, k := range a {
		for j < len(b) && b[j] < k {
			j++
		}
		if j < len(b) && b[j] == k {
			continue
		}
		out = append(out, k)
	}
	return out
}
