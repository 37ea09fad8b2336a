package listingqa

import (
	"math"

	"github.com/reoring/listingqa/i18n"
	"github.com/reoring/listingqa/stats"
)

// DistributionComparison describes the neighbourhood_group distributions of a
// candidate and a reference dataset aligned over the sorted union of their
// categories.
type DistributionComparison struct {
	Categories []string
	Candidate  []float64 // raw counts, aligned with Categories
	Reference  []float64 // raw counts, aligned with Categories
	// Missing lists categories seen in the reference but not the candidate;
	// Extra lists categories seen in the candidate but not the reference.
	Missing []string
	Extra   []string
	// Divergence is D_KL(candidate || reference) in bits. It is +Inf when the
	// supports differ and NaN when either side is empty.
	Divergence float64
}

// SupportMismatch reports whether the two datasets observed different
// category sets.
func (c DistributionComparison) SupportMismatch() bool {
	return len(c.Missing) > 0 || len(c.Extra) > 0
}

// CompareNeighbourhoodDistributions computes the neighbourhood_group value
// counts of both datasets and their KL divergence.
//
// Differing supports are treated as infinite divergence in both directions,
// including a category that only the reference observed, which the plain
// relative-entropy formula would score as finite.
func CompareNeighbourhoodDistributions(d, ref *Dataset) DistributionComparison {
	pk, pc := stats.ValueCounts(d.NeighbourhoodGroupValues())
	qk, qc := stats.ValueCounts(ref.NeighbourhoodGroupValues())
	keys, p, q := stats.Align(pk, pc, qk, qc)
	cmp := DistributionComparison{
		Categories: keys,
		Candidate:  p,
		Reference:  q,
		Missing:    stats.Difference(qk, pk),
		Extra:      stats.Difference(pk, qk),
	}
	switch {
	case len(pk) == 0 || len(qk) == 0:
		cmp.Divergence = math.NaN()
	case cmp.SupportMismatch():
		cmp.Divergence = math.Inf(1)
	default:
		div, err := stats.KLDivergence(p, q, 2)
		if err != nil {
			div = math.NaN()
		}
		cmp.Divergence = div
	}
	return cmp
}

// CheckSimilarNeighbourhoodDistribution fails unless the KL divergence of the
// candidate's neighbourhood_group distribution from the reference's is
// strictly below threshold.
func CheckSimilarNeighbourhoodDistribution(d, ref *Dataset, threshold float64) error {
	if d == nil {
		return missingInput(NameSimilarNeighbourhoodDist, "dataset")
	}
	if ref == nil {
		return missingInput(NameSimilarNeighbourhoodDist, "reference dataset")
	}
	cmp := CompareNeighbourhoodDistributions(d, ref)
	if cmp.Divergence < threshold {
		return nil
	}

	params := map[string]any{
		"divergence": cmp.Divergence,
		"threshold":  threshold,
		"categories": cmp.Categories,
	}
	key := CodeDistributionDrift
	switch {
	case math.IsNaN(cmp.Divergence):
		key = "distribution_drift.empty"
		params["candidate_rows"] = d.Len()
		params["reference_rows"] = ref.Len()
	case cmp.SupportMismatch():
		key = "distribution_drift.support"
		params["missing"] = cmp.Missing
		params["extra"] = cmp.Extra
	}
	msg := i18n.T(key, stringParams(params))
	return Issues{IssueAt(Root().Field(ColNeighbourhoodGroup), CodeDistributionDrift, msg, params)}.
		WithRule(NameSimilarNeighbourhoodDist)
}
