package rsl

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

//SortedView is an order of the records of a Dataset ascending by one attribute. Records with a missing
//value on the attribute occupy the tail of the order starting at FirstMissing.
type SortedView struct {
	Data         *Dataset
	AttIndex     int
	Order        []int
	FirstMissing int
}

//NewSortedView sorts the records of ds by the attribute attIndex. The dataset itself is not reordered.
func NewSortedView(ds *Dataset, attIndex int) (*SortedView, error) {
	h, _, err := ds.validatedDimensions()
	if err != nil {
		return nil, err
	}
	if err = ds.checkAttribute(attIndex); err != nil {
		return nil, err
	}

	knownRows := make([]int, 0, h)
	missingRows := make([]int, 0)
	for p := 0; p < h; p++ {
		if ds.IsMissing(p, attIndex) {
			missingRows = append(missingRows, p)
		} else {
			knownRows = append(knownRows, p)
		}
	}

	values := make([]float64, len(knownRows))
	for ind, row := range knownRows {
		values[ind] = ds.Features.At(row, attIndex)
	}
	inds := make([]int, len(values))
	floats.Argsort(values, inds)

	order := make([]int, 0, h)
	for _, ind := range inds {
		order = append(order, knownRows[ind])
	}
	order = append(order, missingRows...)

	return &SortedView{Data: ds, AttIndex: attIndex, Order: order, FirstMissing: len(knownRows)}, nil
}

//NewSortedViewFromOrder wraps an order produced elsewhere. The order must be a permutation of the rows of ds,
//ascending on the known values of the attribute and with every missing value after every known one.
func NewSortedViewFromOrder(ds *Dataset, attIndex int, order []int) (*SortedView, error) {
	if _, _, err := ds.validatedDimensions(); err != nil {
		return nil, err
	}
	if err := ds.checkAttribute(attIndex); err != nil {
		return nil, err
	}

	view := &SortedView{Data: ds, AttIndex: attIndex, Order: append([]int(nil), order...)}
	view.FirstMissing = len(order)
	for pos, row := range order {
		if row >= 0 && row < len(ds.Labels) && ds.IsMissing(row, attIndex) {
			view.FirstMissing = pos
			break
		}
	}
	if err := view.validate(); err != nil {
		return nil, err
	}
	return view, nil
}

//validate checks that the view is a sorted permutation of its dataset with the missing values at the tail.
func (v *SortedView) validate() error {
	if v == nil || v.Data == nil {
		return malformed("the view has no dataset")
	}
	h, _, err := v.Data.validatedDimensions()
	if err != nil {
		return err
	}
	if err = v.Data.checkAttribute(v.AttIndex); err != nil {
		return err
	}
	if len(v.Order) != h {
		return malformed("the order length %d is not equal to the number of records %d", len(v.Order), h)
	}
	if v.FirstMissing < 0 || v.FirstMissing > h {
		return malformed("the first missing position %d is outside [0, %d]", v.FirstMissing, h)
	}

	seen := make([]bool, h)
	for pos, row := range v.Order {
		if row < 0 || row >= h || seen[row] {
			return malformed("the order is not a permutation of the records at position %d", pos)
		}
		seen[row] = true

		value := v.Data.Features.At(row, v.AttIndex)
		if pos >= v.FirstMissing {
			if !math.IsNaN(value) {
				return malformed("record %d with a known value follows a missing value at position %d", row, v.FirstMissing)
			}
			continue
		}
		if math.IsNaN(value) {
			return malformed("record %d with a missing value precedes known values at position %d", row, pos)
		}
		if pos > 0 && value < v.Data.Features.At(v.Order[pos-1], v.AttIndex) {
			return malformed("the order is not ascending on attribute %d at position %d", v.AttIndex, pos)
		}
	}
	return nil
}

//IdentityView uses the row order of ds as it is. It fails when the rows are not sorted by the attribute.
func IdentityView(ds *Dataset, attIndex int) (*SortedView, error) {
	order := make([]int, len(ds.Labels))
	for p := range order {
		order[p] = p
	}
	return NewSortedViewFromOrder(ds, attIndex, order)
}

//Len returns the number of records including the ones with missing values.
func (v *SortedView) Len() int {
	return len(v.Order)
}

//Value returns the attribute value at the position pos of the view.
func (v *SortedView) Value(pos int) float64 {
	return v.Data.Features.At(v.Order[pos], v.AttIndex)
}

//Label returns the class label at the position pos of the view.
func (v *SortedView) Label(pos int) int {
	return v.Data.Labels[v.Order[pos]]
}

//Weight returns the record weight at the position pos of the view.
func (v *SortedView) Weight(pos int) float64 {
	return v.Data.Weight(v.Order[pos])
}
