package rsl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// boundaryGap is the smallest difference between neighbouring values that makes a split boundary.
const boundaryGap = 1e-5

//Candidate describes one value boundary met while scanning a sorted attribute.
type Candidate struct {
	Index       int // view position of the last record below the boundary
	Threshold   float64
	Score       float64 // NaN when the candidate is not admissible
	Admissible  bool
	BelowWeight float64
	AboveWeight float64
}

//scanOutcome is the state left by a scan over the boundaries of one attribute.
type scanOutcome struct {
	bestIndex  int
	bestRMI    float64
	admissible int
}

//minSplitWeight computes the minimum weight required in each branch.
func minSplitWeight(totalKnownWeight float64, numClasses, minNoObj int) float64 {
	minSplit := 0.1 * totalKnownWeight / float64(numClasses)
	if smOrEq(minSplit, float64(minNoObj)) {
		minSplit = float64(minNoObj)
	} else if gr(minSplit, 25) {
		minSplit = 25
	}
	return minSplit
}

//iterateBoundaries walks through the known values of a sorted view, moves records from the upper bag into
//the lower one at every value boundary, scores the admissible boundaries and keeps the first best one.
//visit, when not nil, is called for every boundary in scan order. The commit closing the last value group is
//reported only when it is admissible.
func iterateBoundaries(view *SortedView, minNoObj int, visit func(Candidate)) (outcome scanOutcome) {
	outcome = scanOutcome{bestIndex: -1, bestRMI: -math.MaxFloat64}

	distribution := NewDistribution(2, view.Data.NumClasses)
	distribution.AddRange(1, view, 0, view.FirstMissing)

	minSplit := minSplitWeight(distribution.Total(), view.Data.NumClasses, minNoObj)
	if sm(float64(view.FirstMissing), 2*minSplit) {
		return
	}

	last := 0
	commit := func(next int, tail bool) {
		distribution.ShiftRange(1, 0, view, last, next)
		candidate := Candidate{
			Index:       next - 1,
			Threshold:   view.Value(next - 1),
			Score:       math.NaN(),
			BelowWeight: distribution.PerBag(0),
			AboveWeight: distribution.PerBag(1),
		}
		if grOrEq(candidate.BelowWeight, minSplit) && grOrEq(candidate.AboveWeight, minSplit) {
			candidate.Admissible = true
			candidate.Score = ScoreRMI(candidate.Threshold, view)
			if gr(candidate.Score, outcome.bestRMI) {
				outcome.bestRMI = candidate.Score
				outcome.bestIndex = next - 1
			}
			outcome.admissible++
		}
		if visit != nil && (!tail || candidate.Admissible) {
			visit(candidate)
		}
		last = next
	}

	positions := NewRange(1, view.FirstMissing, 1)
	for positions.HasNext() {
		next := positions.GetNext()
		if view.Value(next-1)+boundaryGap < view.Value(next) {
			commit(next, false)
		}
	}
	commit(view.FirstMissing, true)

	return
}

//ScanCandidates returns every boundary of the view attribute with its admissibility and score.
func ScanCandidates(view *SortedView, minNoObj int) ([]Candidate, error) {
	if err := view.validate(); err != nil {
		return nil, err
	}
	if minNoObj < 1 {
		return nil, malformed("the minimum number of objects should be positive not %d", minNoObj)
	}
	candidates := make([]Candidate, 0, NewRange(1, view.FirstMissing, 1).Len()+1)
	iterateBoundaries(view, minNoObj, func(candidate Candidate) {
		candidates = append(candidates, candidate)
	})
	return candidates, nil
}

//RankEntropySplit is a binary C4.5 type split on a numeric attribute whose split point maximizes
//the rank mutual information between the split and the class labels.
type RankEntropySplit struct {
	attIndex         int
	minNoObj         int
	useMDLcorrection bool
	sumOfWeights     float64
	complexityIndex  int

	numSubsets   int
	splitPoint   float64
	rmi          float64
	infoGain     float64
	gainRatio    float64
	index        int
	distribution *Distribution
}

//NewRankEntropySplit initializes the split model. useMDLcorrection is stored for the callers but the
//rank mutual information criterion does not apply any correction.
func NewRankEntropySplit(attIndex, minNoObj int, sumOfWeights float64, useMDLcorrection bool) *RankEntropySplit {
	return &RankEntropySplit{
		attIndex:         attIndex,
		minNoObj:         minNoObj,
		sumOfWeights:     sumOfWeights,
		useMDLcorrection: useMDLcorrection,
		complexityIndex:  2,
		splitPoint:       math.MaxFloat64,
		rmi:              -math.MaxFloat64,
	}
}

//Build sorts the records of ds by the split attribute and searches the split.
func (s *RankEntropySplit) Build(ds *Dataset) error {
	view, err := NewSortedView(ds, s.attIndex)
	if err != nil {
		return err
	}
	return s.BuildSorted(view)
}

//BuildSorted searches the split on a view sorted by the split attribute. Finding no split is not an error:
//NumSubsets stays zero and Threshold stays math.MaxFloat64.
func (s *RankEntropySplit) BuildSorted(view *SortedView) error {
	if err := view.validate(); err != nil {
		return err
	}
	if view.AttIndex != s.attIndex {
		return malformed("the view is sorted by attribute %d, the split is on attribute %d", view.AttIndex, s.attIndex)
	}
	if s.minNoObj < 1 {
		return malformed("the minimum number of objects should be positive not %d", s.minNoObj)
	}

	s.numSubsets = 0
	s.splitPoint = math.MaxFloat64
	s.infoGain = 0
	s.gainRatio = 0
	s.complexityIndex = 2

	outcome := iterateBoundaries(view, s.minNoObj, nil)
	s.index = outcome.admissible
	s.rmi = outcome.bestRMI

	if s.index == 0 {
		s.distribution = NewDistribution(1, view.Data.NumClasses)
		s.distribution.AddRange(0, view, 0, view.FirstMissing)
		return nil
	}

	s.finalize(view, outcome.bestIndex)
	return nil
}

//finalize sets the split point between the best boundary and the next value and recounts both branches.
func (s *RankEntropySplit) finalize(view *SortedView, splitIndex int) {
	s.numSubsets = 2
	s.splitPoint = (view.Value(splitIndex+1) + view.Value(splitIndex)) / 2

	// adjacent doubles: the middle collapses onto the upper value
	if s.splitPoint == view.Value(splitIndex+1) {
		s.splitPoint = view.Value(splitIndex)
	}

	s.distribution = NewDistribution(2, view.Data.NumClasses)
	s.distribution.AddRange(0, view, 0, splitIndex+1)
	s.distribution.AddRange(1, view, splitIndex+1, view.FirstMissing)
}

//AttIndex returns index of attribute for which split was generated.
func (s *RankEntropySplit) AttIndex() int {
	return s.attIndex
}

//Threshold returns the split point.
func (s *RankEntropySplit) Threshold() float64 {
	return s.splitPoint
}

//NumSubsets returns 2 for a found split and 0 otherwise.
func (s *RankEntropySplit) NumSubsets() int {
	return s.numSubsets
}

//RMI returns the score of the chosen split point, -math.MaxFloat64 when there is none.
func (s *RankEntropySplit) RMI() float64 {
	return s.rmi
}

func (s *RankEntropySplit) InfoGain() float64 {
	return s.infoGain
}

func (s *RankEntropySplit) GainRatio() float64 {
	return s.gainRatio
}

func (s *RankEntropySplit) UseMDLCorrection() bool {
	return s.useMDLcorrection
}

func (s *RankEntropySplit) ComplexityIndex() int {
	return s.complexityIndex
}

func (s *RankEntropySplit) SumOfWeights() float64 {
	return s.sumOfWeights
}

//AdmissibleCandidates returns the number of boundaries that satisfied the minimum branch weight.
func (s *RankEntropySplit) AdmissibleCandidates() int {
	return s.index
}

//CodingCost returns the coding cost of the split used by rule learners.
func (s *RankEntropySplit) CodingCost() float64 {
	return math.Log2(float64(s.index))
}

//Distribution returns the class weights per branch of the split.
func (s *RankEntropySplit) Distribution() *Distribution {
	return s.distribution
}

//WhichSubset returns the branch of the record, -1 when its value is missing.
func (s *RankEntropySplit) WhichSubset(r Record) int {
	if r.IsMissing(s.attIndex) {
		return -1
	}
	if smOrEq(r.Values[s.attIndex], s.splitPoint) {
		return 0
	}
	return 1
}

//Weights returns the branch weights of a record with a missing value and nil otherwise.
func (s *RankEntropySplit) Weights(r Record) []float64 {
	if r.IsMissing(s.attIndex) {
		return branchWeights(s.distribution, s.numSubsets)
	}
	return nil
}

//ClassProb returns the probability of a class for a record that falls into theSubset.
func (s *RankEntropySplit) ClassProb(classIndex int, r Record, theSubset int) float64 {
	return classProb(s, s.distribution, classIndex, r, theSubset)
}

//SetSplitPoint moves the split point down to the greatest known value of allRecords not above it.
func (s *RankEntropySplit) SetSplitPoint(allRecords *Dataset) {
	if s.numSubsets <= 1 || allRecords.IsNominal(s.attIndex) {
		return
	}
	newSplitPoint := -math.MaxFloat64
	for row := 0; row < len(allRecords.Labels); row++ {
		if allRecords.IsMissing(row, s.attIndex) {
			continue
		}
		tempValue := allRecords.Features.At(row, s.attIndex)
		if gr(tempValue, newSplitPoint) && smOrEq(tempValue, s.splitPoint) {
			newSplitPoint = tempValue
		}
	}
	s.splitPoint = newSplitPoint
}

//ResetDistribution recounts the branch distribution on data. Records with a missing value are spread over
//the branches by the weights of the known records.
func (s *RankEntropySplit) ResetDistribution(data *Dataset) error {
	if _, _, err := data.validatedDimensions(); err != nil {
		return err
	}
	if s.numSubsets == 0 {
		return nil
	}
	s.distribution = resetDistribution(s, data, s.attIndex)
	return nil
}

func resetDistribution(model SplitModel, data *Dataset, attIndex int) *Distribution {
	newD := NewDistribution(model.NumSubsets(), data.NumClasses)
	for row := 0; row < len(data.Labels); row++ {
		r := data.Record(row)
		if bag := model.WhichSubset(r); bag > -1 {
			newD.Add(bag, r.Label, r.Weight)
		}
	}
	newD.AddWithUnknown(data, attIndex)
	return newD
}

//LeftSide returns the left side of the split condition.
func (s *RankEntropySplit) LeftSide(ds *Dataset) string {
	return ds.AttributeName(s.attIndex)
}

//RightSide returns the condition satisfied by the records of a branch.
func (s *RankEntropySplit) RightSide(index int, _ *Dataset) string {
	if index == 0 {
		return " <= " + formatThreshold(s.splitPoint)
	}
	return " > " + formatThreshold(s.splitPoint)
}

func (s *RankEntropySplit) String() string {
	if s.numSubsets == 0 {
		return fmt.Sprintf("f_%d: no split", s.attIndex)
	}
	return fmt.Sprintf("f_%d <= %s (rmi %.6g)", s.attIndex, formatThreshold(s.splitPoint), s.rmi)
}

func formatThreshold(val float64) string {
	text := strconv.FormatFloat(val, 'f', 6, 64)
	text = strings.TrimRight(text, "0")
	return strings.TrimSuffix(text, ".")
}
