package rsl

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gorgonia.org/tensor"
)

//rankTable counts records per (branch, class) pair of a marked table and turns the counts into suffix sums
//over both axes: entry (b, c) is the number of records with branch code >= b+1 and class label >= c.
type rankTable struct {
	counts                  *tensor.Dense
	numBranches, numClasses int
}

func newRankTable(marked *mat.Dense, numBranches, numClasses int) *rankTable {
	rt := &rankTable{
		counts:      tensor.New(tensor.WithShape(numBranches, numClasses), tensor.Of(tensor.Float64)),
		numBranches: numBranches,
		numClasses:  numClasses,
	}

	h := Height(marked)
	for p := 0; p < h; p++ {
		b := int(marked.At(p, markedBranch)) - 1
		c := int(marked.At(p, markedClass))
		rt.set(b, c, rt.at(b, c)+1)
	}

	for b := numBranches - 1; b >= 0; b-- {
		for c := numClasses - 1; c >= 0; c-- {
			rt.set(b, c, rt.at(b, c)+rt.atLeast(b+1, c)+rt.atLeast(b, c+1)-rt.atLeast(b+1, c+1))
		}
	}
	return rt
}

func (rt *rankTable) at(b, c int) float64 {
	val, err := rt.counts.At(b, c)
	HandleError(err)
	return val.(float64)
}

func (rt *rankTable) set(b, c int, val float64) {
	HandleError(rt.counts.SetAt(val, b, c))
}

//atLeast returns the number of records with branch index >= b and class >= c; zero past the table edge.
func (rt *rankTable) atLeast(b, c int) float64 {
	if b >= rt.numBranches || c >= rt.numClasses {
		return 0
	}
	return rt.at(b, c)
}

func rmiTerm(sizeB, sizeD, sizeInter, n float64) float64 {
	return -math.Log((sizeB * sizeD) / (sizeInter * n))
}

//ScoreRMI returns the rank mutual information between the binary split of the view attribute at threshold
//and the class labels, averaged over all records of the view.
func ScoreRMI(threshold float64, view *SortedView) float64 {
	return scoreMarked(markRecords(threshold, view), 2, view.Data.NumClasses)
}

//ScoreRMISets computes the same value as ScoreRMI by materializing the greater-or-equal sets of every record.
//It costs O(n^2) per threshold.
func ScoreRMISets(threshold float64, view *SortedView) float64 {
	return scoreMarkedSets(markRecords(threshold, view))
}

func scoreMarked(marked *mat.Dense, numBranches, numClasses int) float64 {
	rt := newRankTable(marked, numBranches, numClasses)
	n := rt.atLeast(0, 0)

	terms := make([]float64, Height(marked))
	for p := range terms {
		b := int(marked.At(p, markedBranch)) - 1
		c := int(marked.At(p, markedClass))
		terms[p] = rmiTerm(rt.atLeast(b, 0), rt.atLeast(0, c), rt.atLeast(b, c), n)
	}
	return stat.Mean(terms, nil)
}

func scoreMarkedSets(marked *mat.Dense) float64 {
	n := Height(marked)

	terms := make([]float64, n)
	for p := range terms {
		grOrEqValue := GreaterOrEqual(marked, p, markedBranch)
		grOrEqDecision := GreaterOrEqual(marked, p, markedClass)
		inter := intersection(grOrEqValue, grOrEqDecision)
		terms[p] = rmiTerm(float64(len(grOrEqValue)), float64(len(grOrEqDecision)), float64(len(inter)), float64(n))
	}
	return stat.Mean(terms, nil)
}
