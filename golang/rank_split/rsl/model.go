package rsl

//SplitModel is what a tree growing driver needs from a split found on one attribute.
type SplitModel interface {
	//WhichSubset returns the branch of a record or -1 when the record has to be distributed over all branches.
	WhichSubset(r Record) int
	//Weights returns the fractional branch weights of a record, or nil when it belongs to one branch.
	Weights(r Record) []float64
	NumSubsets() int
	Threshold() float64
}

//RankedSplit is a SplitModel carrying the data needed to compare splits found on different attributes.
type RankedSplit interface {
	SplitModel
	AttIndex() int
	RMI() float64
	Distribution() *Distribution
	LeftSide(ds *Dataset) string
	RightSide(index int, ds *Dataset) string
}

// branchWeights returns the share of every bag in the total weight of a distribution.
func branchWeights(distribution *Distribution, numSubsets int) []float64 {
	weights := make([]float64, numSubsets)
	total := distribution.Total()
	for bag := range weights {
		weights[bag] = distribution.PerBag(bag) / total
	}
	return weights
}

// classProb implements the class probability shared by all split kinds.
func classProb(model SplitModel, distribution *Distribution, classIndex int, r Record, theSubset int) float64 {
	if theSubset <= -1 {
		weights := model.Weights(r)
		if weights == nil {
			return distribution.Prob(classIndex)
		}
		prob := 0.0
		for bag, weight := range weights {
			prob += weight * distribution.ProbInBag(classIndex, bag)
		}
		return prob
	}
	if gr(distribution.PerBag(theSubset), 0) {
		return distribution.ProbInBag(classIndex, theSubset)
	}
	return distribution.Prob(classIndex)
}
