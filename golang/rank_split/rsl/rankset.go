package rsl

import (
	"gonum.org/v1/gonum/mat"
)

//Columns of the marked table built for one threshold.
const (
	markedBranch = iota
	markedClass
)

//GreaterOrEqual returns the rows of table whose entry in column col is greater than or equal to the entry
//of the pivot row. The pivot itself is always part of the result. Rows are returned in ascending order.
func GreaterOrEqual(table mat.Matrix, pivot, col int) []int {
	h := Height(table)
	val := table.At(pivot, col)
	ans := make([]int, 0, h)
	for p := 0; p < h; p++ {
		if table.At(p, col) >= val {
			ans = append(ans, p)
		}
	}
	return ans
}

// intersection returns the common elements of two ascending slices.
func intersection(first, second []int) []int {
	ans := make([]int, 0)
	p, q := 0, 0
	for p < len(first) && q < len(second) {
		switch {
		case first[p] < second[q]:
			p++
		case first[p] > second[q]:
			q++
		default:
			ans = append(ans, first[p])
			p++
			q++
		}
	}
	return ans
}

//markRecords builds a scratch table with one row per record of the view. The first column holds 1 when the
//attribute value is at most threshold and 2 otherwise (a missing value gets 2), the second holds the class label.
func markRecords(threshold float64, view *SortedView) *mat.Dense {
	n := view.Len()
	marked := mat.NewDense(n, 2, nil)
	for pos := 0; pos < n; pos++ {
		if view.Value(pos) <= threshold {
			marked.Set(pos, markedBranch, 1)
		} else {
			marked.Set(pos, markedBranch, 2)
		}
		marked.Set(pos, markedClass, float64(view.Label(pos)))
	}
	return marked
}
