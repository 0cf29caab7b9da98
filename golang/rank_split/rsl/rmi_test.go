package rsl

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func newColumnDataset(values []float64, labels []int, numClasses int) *Dataset {
	return &Dataset{
		Features:   mat.NewDense(len(values), 1, append([]float64(nil), values...)),
		Labels:     append([]int(nil), labels...),
		NumClasses: numClasses,
	}
}

func TestScoreRMISeparatedClasses(t *testing.T) {
	ds := newColumnDataset([]float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5}, []int{0, 0, 0, 0, 1, 1, 1, 1, 1, 1}, 2)
	view, err := IdentityView(ds, 0)
	if err != nil {
		t.Fatal(err)
	}

	expected := map[float64]float64{
		1: 0.13388613078852582,
		2: 0.3064953742595944,
		3: 0.20433024950639628,
		4: 0.10216512475319814,
		5: 0.0,
	}
	for threshold, want := range expected {
		if got := ScoreRMI(threshold, view); math.Abs(got-want) > 1e-12 {
			t.Errorf("rmi at %g is %.17g, want %.17g", threshold, got, want)
		}
	}
}

func TestScoreRMIWithMissingValues(t *testing.T) {
	ds := newColumnDataset([]float64{1, 2, 3, 4, math.NaN(), math.NaN()}, []int{0, 0, 1, 1, 0, 1}, 2)
	view, err := NewSortedView(ds, 0)
	if err != nil {
		t.Fatal(err)
	}

	if got := ScoreRMI(2, view); math.Abs(got-0.20273255405408222) > 1e-12 {
		t.Errorf("rmi with missing values is %.17g", got)
	}
}

//The rank table and the explicit sets must give exactly the same score.
func TestScoreRMIMatchesSets(t *testing.T) {
	rnd := rand.New(rand.NewSource(1979))

	for trial := 0; trial < 25; trial++ {
		h := 5 + rnd.Intn(60)
		numClasses := 1 + rnd.Intn(4)
		values := make([]float64, h)
		labels := make([]int, h)
		for p := 0; p < h; p++ {
			values[p] = float64(rnd.Intn(12)) / 4
			if rnd.Float64() < 0.1 {
				values[p] = math.NaN()
			}
			labels[p] = rnd.Intn(numClasses)
		}
		ds := newColumnDataset(values, labels, numClasses)
		view, err := NewSortedView(ds, 0)
		if err != nil {
			t.Fatal(err)
		}

		for _, threshold := range []float64{-1, 0.5, 1.25, 2, 3} {
			fast := ScoreRMI(threshold, view)
			naive := ScoreRMISets(threshold, view)
			if fast != naive {
				t.Fatalf("trial %d threshold %g: rank table gives %.17g, sets give %.17g", trial, threshold, fast, naive)
			}
		}
	}
}

func TestScoreRMIKeepsRecords(t *testing.T) {
	ds := newColumnDataset([]float64{3, 1, 2, math.NaN(), 5}, []int{1, 0, 0, 1, 1}, 2)
	before := mat.DenseCopyOf(ds.Features)
	view, err := NewSortedView(ds, 0)
	if err != nil {
		t.Fatal(err)
	}

	ScoreRMI(2, view)
	ScoreRMISets(2, view)

	for p := 0; p < 5; p++ {
		got, want := ds.Features.At(p, 0), before.At(p, 0)
		if got != want && !(math.IsNaN(got) && math.IsNaN(want)) {
			t.Fatalf("record %d was changed from %g to %g", p, want, got)
		}
	}
}

func TestRankTableSuffixSums(t *testing.T) {
	marked := mat.NewDense(6, 2, []float64{
		1, 0,
		1, 1,
		2, 0,
		2, 2,
		2, 2,
		1, 2,
	})
	rt := newRankTable(marked, 2, 3)

	expected := [][]float64{
		{6, 4, 3},
		{3, 2, 2},
	}
	for b := range expected {
		for c := range expected[b] {
			if got := rt.atLeast(b, c); got != expected[b][c] {
				t.Errorf("atLeast(%d, %d) = %g, want %g", b, c, got, expected[b][c])
			}
		}
	}
	if rt.atLeast(2, 0) != 0 || rt.atLeast(0, 3) != 0 {
		t.Errorf("counts past the table edge should be zero")
	}
}
