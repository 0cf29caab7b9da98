package rsl

import (
	"encoding/json"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Distribution is a table of weighted class counts per bag (branch of a split).
//Rows are bags, columns are classes.
type Distribution struct {
	perClassPerBag *mat.Dense
}

//NewDistribution creates an empty distribution.
func NewDistribution(numBags, numClasses int) *Distribution {
	return &Distribution{perClassPerBag: mat.NewDense(numBags, numClasses, nil)}
}

//NumBags returns the number of bags.
func (d *Distribution) NumBags() int {
	h, _ := d.perClassPerBag.Dims()
	return h
}

//NumClasses returns the number of classes.
func (d *Distribution) NumClasses() int {
	_, w := d.perClassPerBag.Dims()
	return w
}

//Add adds weight to the class count of a bag.
func (d *Distribution) Add(bag, class int, weight float64) {
	d.perClassPerBag.Set(bag, class, d.perClassPerBag.At(bag, class)+weight)
}

//AddRange adds the records at the view positions [start, end) to a bag.
func (d *Distribution) AddRange(bag int, view *SortedView, start, end int) {
	for pos := start; pos < end; pos++ {
		d.Add(bag, view.Label(pos), view.Weight(pos))
	}
}

//ShiftRange moves the records at the view positions [start, end) from one bag to another.
func (d *Distribution) ShiftRange(from, to int, view *SortedView, start, end int) {
	for pos := start; pos < end; pos++ {
		class, weight := view.Label(pos), view.Weight(pos)
		d.Add(from, class, -weight)
		d.Add(to, class, weight)
	}
}

//AddWithUnknown assigns every record of ds with a missing value of attIndex fractionally to all bags,
//in proportion to the bag weights present before the call.
func (d *Distribution) AddWithUnknown(ds *Dataset, attIndex int) {
	numBags := d.NumBags()
	probs := make([]float64, numBags)
	total := d.Total()
	for bag := range probs {
		if total > 0 {
			probs[bag] = d.PerBag(bag) / total
		} else {
			probs[bag] = 1.0 / float64(numBags)
		}
	}

	for row := 0; row < len(ds.Labels); row++ {
		if !ds.IsMissing(row, attIndex) {
			continue
		}
		weight := ds.Weight(row)
		for bag, prob := range probs {
			d.Add(bag, ds.Labels[row], prob*weight)
		}
	}
}

//PerBag returns the total weight of a bag.
func (d *Distribution) PerBag(bag int) float64 {
	return floats.Sum(d.perClassPerBag.RawRowView(bag))
}

//PerClass returns the total weight of a class over all bags.
func (d *Distribution) PerClass(class int) float64 {
	return floats.Sum(mat.Col(nil, class, d.perClassPerBag))
}

//PerClassPerBag returns the weight of a class in a bag.
func (d *Distribution) PerClassPerBag(bag, class int) float64 {
	return d.perClassPerBag.At(bag, class)
}

//Total returns the weight of the whole table.
func (d *Distribution) Total() float64 {
	return mat.Sum(d.perClassPerBag)
}

//Prob returns the relative frequency of a class over all bags.
func (d *Distribution) Prob(class int) float64 {
	total := d.Total()
	if total > 0 {
		return d.PerClass(class) / total
	}
	return 0
}

//ProbInBag returns the relative frequency of a class inside a bag, or the overall one for an empty bag.
func (d *Distribution) ProbInBag(class, bag int) float64 {
	perBag := d.PerBag(bag)
	if perBag > 0 {
		return d.PerClassPerBag(bag, class) / perBag
	}
	return d.Prob(class)
}

//Check reports whether at least two bags hold minNoObj weight or more.
func (d *Distribution) Check(minNoObj float64) bool {
	counter := 0
	for bag := 0; bag < d.NumBags(); bag++ {
		if grOrEq(d.PerBag(bag), minNoObj) {
			counter++
		}
	}
	return counter > 1
}

//Matrix returns a copy of the table.
func (d *Distribution) Matrix() *mat.Dense {
	return mat.DenseCopyOf(d.perClassPerBag)
}

//Rows returns the table as a slice of bag rows.
func (d *Distribution) Rows() [][]float64 {
	rows := make([][]float64, d.NumBags())
	for bag := range rows {
		rows[bag] = mat.Row(nil, bag, d.perClassPerBag)
	}
	return rows
}

//MarshalJSON stores the table as an array of bag rows.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Rows())
}
