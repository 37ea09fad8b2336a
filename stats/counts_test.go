package stats

import (
	"reflect"
	"testing"
)

func TestValueCounts_SortedByKey(t *testing.T) {
	keys, counts := ValueCounts([]string{"Queens", "Bronx", "Queens", "Manhattan", "Queens"})
	if !reflect.DeepEqual(keys, []string{"Bronx", "Manhattan", "Queens"}) {
		t.Fatalf("unexpected keys: %v", keys)
	}
	if !reflect.DeepEqual(counts, []float64{1, 1, 3}) {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestValueCounts_Empty(t *testing.T) {
	keys, counts := ValueCounts(nil)
	if len(keys) != 0 || len(counts) != 0 {
		t.Fatalf("expected empty result, got %v %v", keys, counts)
	}
}

func TestAlign_UnionWithZeros(t *testing.T) {
	keys, p, q := Align(
		[]string{"a", "c", "d"}, []float64{1, 3, 4},
		[]string{"b", "c"}, []float64{20, 30},
	)
	if !reflect.DeepEqual(keys, []string{"a", "b", "c", "d"}) {
		t.Fatalf("unexpected keys: %v", keys)
	}
	if !reflect.DeepEqual(p, []float64{1, 0, 3, 4}) {
		t.Fatalf("unexpected p: %v", p)
	}
	if !reflect.DeepEqual(q, []float64{0, 20, 30, 0}) {
		t.Fatalf("unexpected q: %v", q)
	}
}

func TestDifference(t *testing.T) {
	got := Difference([]string{"a", "b", "c", "e"}, []string{"b", "d", "e"})
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("unexpected difference: %v", got)
	}
	if got := Difference([]string{"a"}, []string{"a"}); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
