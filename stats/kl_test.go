package stats

import (
	"errors"
	"math"
	"testing"
)

func TestKLDivergence_IdenticalIsZero(t *testing.T) {
	p := []float64{10, 20, 30, 5, 1}
	d, err := KLDivergence(p, p, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestKLDivergence_ScaleInvariant(t *testing.T) {
	// raw counts are normalized, so proportional vectors are identical distributions
	d, err := KLDivergence([]float64{1, 2, 3}, []float64{100, 200, 300}, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d > 1e-12 {
		t.Fatalf("expected ~0, got %v", d)
	}
}

func TestKLDivergence_KnownValueBase2(t *testing.T) {
	// P = (1/2, 1/2), Q = (1/4, 3/4)
	// D = 0.5*log2(2) + 0.5*log2(2/3) = 0.5 + 0.5*(1 - log2 3)
	want := 0.5 + 0.5*(1-math.Log2(3))
	d, err := KLDivergence([]float64{5, 5}, []float64{1, 3}, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(d-want) > 1e-12 {
		t.Fatalf("want %v, got %v", want, d)
	}
	// natural base differs by a factor ln 2
	dn, _ := KLDivergence([]float64{5, 5}, []float64{1, 3}, math.E)
	if math.Abs(dn-want*math.Ln2) > 1e-12 {
		t.Fatalf("want %v, got %v", want*math.Ln2, dn)
	}
}

func TestKLDivergence_Asymmetric(t *testing.T) {
	p := []float64{9, 1}
	q := []float64{5, 5}
	a, _ := KLDivergence(p, q, 2)
	b, _ := KLDivergence(q, p, 2)
	if a == b {
		t.Fatalf("expected asymmetric divergence, both %v", a)
	}
}

func TestKLDivergence_ZeroReferenceMassIsInfinite(t *testing.T) {
	d, err := KLDivergence([]float64{0, 10}, []float64{10, 0}, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !math.IsInf(d, 1) {
		t.Fatalf("expected +Inf, got %v", d)
	}
}

func TestKLDivergence_ZeroCandidateMassContributesNothing(t *testing.T) {
	d, err := KLDivergence([]float64{10, 0}, []float64{10, 10}, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(d-1) > 1e-12 {
		t.Fatalf("expected 1 bit, got %v", d)
	}
}

func TestKLDivergence_Errors(t *testing.T) {
	cases := []struct {
		name string
		p, q []float64
		base float64
		want error
	}{
		{"length", []float64{1}, []float64{1, 2}, 2, ErrLengthMismatch},
		{"negative", []float64{-1, 2}, []float64{1, 2}, 2, ErrInvalidCount},
		{"nan", []float64{math.NaN(), 2}, []float64{1, 2}, 2, ErrInvalidCount},
		{"empty p", []float64{0, 0}, []float64{1, 2}, 2, ErrEmptyDistribution},
		{"empty q", []float64{1, 2}, []float64{0, 0}, 2, ErrEmptyDistribution},
		{"no values", nil, nil, 2, ErrEmptyDistribution},
		{"base one", []float64{1}, []float64{1}, 1, ErrInvalidBase},
		{"base zero", []float64{1}, []float64{1}, 0, ErrInvalidBase},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := KLDivergence(tc.p, tc.q, tc.base)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			if !math.IsNaN(d) {
				t.Fatalf("expected NaN alongside error, got %v", d)
			}
		})
	}
}
