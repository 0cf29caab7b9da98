package rsl

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

//NominalSplit is a split with one branch per category code of a nominal attribute.
//Category codes are the non-negative integers stored in the attribute column.
type NominalSplit struct {
	attIndex     int
	minNoObj     int
	numValues    int
	numSubsets   int
	rmi          float64
	distribution *Distribution
}

//NewNominalSplit initializes the split model.
func NewNominalSplit(attIndex, minNoObj int) *NominalSplit {
	return &NominalSplit{attIndex: attIndex, minNoObj: minNoObj, rmi: -math.MaxFloat64}
}

//Build counts the classes per category. The split is used only when at least two categories
//hold minNoObj weight.
func (s *NominalSplit) Build(ds *Dataset) error {
	h, _, err := ds.validatedDimensions()
	if err != nil {
		return err
	}
	if err = ds.checkAttribute(s.attIndex); err != nil {
		return err
	}
	if s.minNoObj < 1 {
		return malformed("the minimum number of objects should be positive not %d", s.minNoObj)
	}

	numValues := 0
	for row := 0; row < h; row++ {
		if ds.IsMissing(row, s.attIndex) {
			continue
		}
		val := ds.Features.At(row, s.attIndex)
		if val < 0 || val != math.Trunc(val) {
			return malformed("value %g of record %d is not a category code", val, row)
		}
		numValues = max(numValues, int(val)+1)
	}

	s.numValues = numValues
	s.numSubsets = 0
	s.rmi = -math.MaxFloat64
	s.distribution = NewDistribution(max(numValues, 1), ds.NumClasses)
	for row := 0; row < h; row++ {
		if !ds.IsMissing(row, s.attIndex) {
			s.distribution.Add(int(ds.Features.At(row, s.attIndex)), ds.Labels[row], ds.Weight(row))
		}
	}

	if !s.distribution.Check(float64(s.minNoObj)) {
		return nil
	}
	s.numSubsets = numValues
	s.rmi = scoreMarked(markCategories(ds, s.attIndex, numValues), numValues+1, ds.NumClasses)
	return nil
}

//markCategories builds the scratch table of a nominal attribute: branch code is the category code plus one,
//records with a missing value get the highest code.
func markCategories(ds *Dataset, attIndex, numValues int) *mat.Dense {
	h := len(ds.Labels)
	marked := mat.NewDense(h, 2, nil)
	for row := 0; row < h; row++ {
		if ds.IsMissing(row, attIndex) {
			marked.Set(row, markedBranch, float64(numValues+1))
		} else {
			marked.Set(row, markedBranch, ds.Features.At(row, attIndex)+1)
		}
		marked.Set(row, markedClass, float64(ds.Labels[row]))
	}
	return marked
}

func (s *NominalSplit) AttIndex() int {
	return s.attIndex
}

//Threshold is undefined for nominal splits and always returns math.MaxFloat64.
func (s *NominalSplit) Threshold() float64 {
	return math.MaxFloat64
}

func (s *NominalSplit) NumSubsets() int {
	return s.numSubsets
}

func (s *NominalSplit) NumValues() int {
	return s.numValues
}

func (s *NominalSplit) RMI() float64 {
	return s.rmi
}

func (s *NominalSplit) Distribution() *Distribution {
	return s.distribution
}

//subsetOf returns the branch of a known category code the split was built with.
func (s *NominalSplit) subsetOf(r Record) (int, bool) {
	if r.IsMissing(s.attIndex) {
		return -1, false
	}
	val := r.Values[s.attIndex]
	if val < 0 || val != math.Trunc(val) || int(val) >= s.numSubsets {
		return -1, false
	}
	return int(val), true
}

//WhichSubset returns the branch of the record. A missing value or a category code unknown to the split
//gives -1 and the record is spread over all branches by Weights.
func (s *NominalSplit) WhichSubset(r Record) int {
	subset, _ := s.subsetOf(r)
	return subset
}

func (s *NominalSplit) Weights(r Record) []float64 {
	if _, ok := s.subsetOf(r); !ok {
		return branchWeights(s.distribution, s.numSubsets)
	}
	return nil
}

func (s *NominalSplit) ClassProb(classIndex int, r Record, theSubset int) float64 {
	return classProb(s, s.distribution, classIndex, r, theSubset)
}

//ResetDistribution recounts the branch distribution on data.
func (s *NominalSplit) ResetDistribution(data *Dataset) error {
	if _, _, err := data.validatedDimensions(); err != nil {
		return err
	}
	if s.numSubsets == 0 {
		return nil
	}
	for row := 0; row < len(data.Labels); row++ {
		if data.IsMissing(row, s.attIndex) {
			continue
		}
		code := data.Features.At(row, s.attIndex)
		if code < 0 || int(code) >= s.numSubsets {
			return malformed("category %g of record %d is unknown to the split", code, row)
		}
	}
	s.distribution = resetDistribution(s, data, s.attIndex)
	return nil
}

func (s *NominalSplit) LeftSide(ds *Dataset) string {
	return ds.AttributeName(s.attIndex)
}

func (s *NominalSplit) RightSide(index int, _ *Dataset) string {
	return " = " + strconv.Itoa(index)
}
