package stats

import (
	"errors"
	"math"
)

var (
	ErrLengthMismatch    = errors.New("stats: count vectors differ in length")
	ErrInvalidCount      = errors.New("stats: counts must be finite and non-negative")
	ErrEmptyDistribution = errors.New("stats: counts sum to zero")
	ErrInvalidBase       = errors.New("stats: logarithm base must be positive and not 1")
)

// KLDivergence returns D_KL(P || Q) in the given logarithm base, where p and q
// are raw count vectors aligned position-wise. Both are normalized to sum to 1
// before the divergence is computed.
//
// The result is +Inf when some p_i > 0 has q_i = 0.
func KLDivergence(p, q []float64, base float64) (float64, error) {
	if len(p) != len(q) {
		return math.NaN(), ErrLengthMismatch
	}
	if base <= 0 || base == 1 || math.IsNaN(base) || math.IsInf(base, 0) {
		return math.NaN(), ErrInvalidBase
	}
	sp, err := sum(p)
	if err != nil {
		return math.NaN(), err
	}
	sq, err := sum(q)
	if err != nil {
		return math.NaN(), err
	}
	if sp == 0 || sq == 0 {
		return math.NaN(), ErrEmptyDistribution
	}

	var d float64
	for i := range p {
		pi := p[i] / sp
		if pi == 0 {
			continue
		}
		qi := q[i] / sq
		if qi == 0 {
			return math.Inf(1), nil
		}
		d += pi * math.Log(pi/qi)
	}
	d /= math.Log(base)
	// Rounding can leave a tiny negative value for (near) identical inputs.
	if d < 0 {
		d = 0
	}
	return d, nil
}

func sum(v []float64) (float64, error) {
	var s float64
	for _, x := range v {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, ErrInvalidCount
		}
		s += x
	}
	return s, nil
}
