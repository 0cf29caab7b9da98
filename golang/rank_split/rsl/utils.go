package rsl

import (
	"log"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// small is the tolerance used by all weight and score comparisons.
const small = 1e-6

//ErrMalformedInput is wrapped by every error caused by input that violates a precondition
//of the split search (shape mismatches, unsorted views, bad labels and so on).
var ErrMalformedInput = errors.New("malformed input")

func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedInput, format, args...)
}

//HandleError panics when err is not nil.
func HandleError(err error) {
	if err != nil {
		log.Panic(err)
	}
}

//Height returns the number of rows of a matrix.
func Height(m mat.Matrix) int {
	h, _ := m.Dims()
	return h
}

// gr reports whether a is greater than b by more than small.
func gr(a, b float64) bool {
	return a-b > small
}

// grOrEq reports whether a is greater than or equal to b up to small.
func grOrEq(a, b float64) bool {
	return b-a < small
}

// sm reports whether a is smaller than b by more than small.
func sm(a, b float64) bool {
	return b-a > small
}

// smOrEq reports whether a is smaller than or equal to b up to small.
func smOrEq(a, b float64) bool {
	return a-b < small
}
