package rsl

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestGreaterOrEqualTiny(t *testing.T) {
	table := mat.NewDense(5, 2, []float64{
		1, 0,
		2, 2,
		1, 1,
		2, 0,
		1, 2,
	})

	if got := GreaterOrEqual(table, 0, 0); !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("wrong set for the lower branch %v", got)
	}
	if got := GreaterOrEqual(table, 3, 0); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("wrong set for the upper branch %v", got)
	}
	if got := GreaterOrEqual(table, 2, 1); !reflect.DeepEqual(got, []int{1, 2, 4}) {
		t.Errorf("wrong set for class 1 %v", got)
	}
}

//Every record belongs to its own greater-or-equal set, so the intersection is never empty.
func TestGreaterOrEqualIsReflexive(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	h := 40
	values := make([]float64, h)
	labels := make([]int, h)
	for p := range values {
		values[p] = float64(rnd.Intn(6))
		labels[p] = rnd.Intn(3)
	}
	values[3] = math.NaN()
	ds := &Dataset{Features: mat.NewDense(h, 1, values), Labels: labels, NumClasses: 3}
	view, err := NewSortedView(ds, 0)
	if err != nil {
		t.Fatal(err)
	}

	for _, threshold := range []float64{-1, 0, 2, 5} {
		marked := markRecords(threshold, view)
		for p := 0; p < h; p++ {
			for _, col := range []int{markedBranch, markedClass} {
				set := GreaterOrEqual(marked, p, col)
				if !containsInt(set, p) {
					t.Fatalf("record %d is missing from its own set on column %d", p, col)
				}
			}
			inter := intersection(GreaterOrEqual(marked, p, markedBranch), GreaterOrEqual(marked, p, markedClass))
			if !containsInt(inter, p) {
				t.Fatalf("record %d is missing from its own intersection", p)
			}
		}
	}
}

func TestIntersection(t *testing.T) {
	got := intersection([]int{0, 2, 3, 5, 8}, []int{1, 2, 5, 6, 8, 9})
	if !reflect.DeepEqual(got, []int{2, 5, 8}) {
		t.Errorf("wrong intersection %v", got)
	}
	if got := intersection(nil, []int{1}); len(got) != 0 {
		t.Errorf("intersection with an empty set should be empty, got %v", got)
	}
}

func TestMarkRecordsSendsMissingUp(t *testing.T) {
	ds := &Dataset{
		Features:   mat.NewDense(4, 1, []float64{1, 3, math.NaN(), 2}),
		Labels:     []int{0, 1, 1, 0},
		NumClasses: 2,
	}
	view, err := NewSortedView(ds, 0)
	if err != nil {
		t.Fatal(err)
	}

	marked := markRecords(2, view)
	want := []float64{1, 1, 2, 2}
	for pos := 0; pos < view.Len(); pos++ {
		if marked.At(pos, markedBranch) != want[pos] {
			t.Errorf("position %d marked %g, want %g", pos, marked.At(pos, markedBranch), want[pos])
		}
		if int(marked.At(pos, markedClass)) != view.Label(pos) {
			t.Errorf("position %d lost its label", pos)
		}
	}
}

func containsInt(values []int, val int) bool {
	for _, current := range values {
		if current == val {
			return true
		}
	}
	return false
}
