package rsl

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

//Dataset holds the records a split is searched on. Features is a matrix with one row per record
//and one column per attribute; a missing attribute value is stored as NaN. Labels are class codes
//in [0, NumClasses) and are never missing. A nil Weights slice means unit weights.
type Dataset struct {
	Features       *mat.Dense
	Labels         []int
	Weights        []float64
	NumClasses     int
	Nominal        []bool
	AttributeNames []string
	Description    *string
}

//Record is a read-only copy of one row of a Dataset.
type Record struct {
	Values []float64
	Label  int
	Weight float64
}

//IsMissing reports whether the record has no value for the attribute.
func (r Record) IsMissing(attIndex int) bool {
	return math.IsNaN(r.Values[attIndex])
}

//SetDescription sets a description for a Dataset object
func (ds *Dataset) SetDescription(description string) {
	ds.Description = &description
}

//Weight returns the weight of the record in the given row.
func (ds *Dataset) Weight(row int) float64 {
	if ds.Weights == nil {
		return 1.0
	}
	return ds.Weights[row]
}

//IsMissing reports whether the value of attribute attIndex in the given row is unknown.
func (ds *Dataset) IsMissing(row, attIndex int) bool {
	return math.IsNaN(ds.Features.At(row, attIndex))
}

//IsNominal reports whether the attribute holds category codes instead of numbers.
func (ds *Dataset) IsNominal(attIndex int) bool {
	return ds.Nominal != nil && ds.Nominal[attIndex]
}

//AttributeName returns the configured name of the attribute or f_<index> when none is set.
func (ds *Dataset) AttributeName(attIndex int) string {
	if attIndex < len(ds.AttributeNames) && ds.AttributeNames[attIndex] != "" {
		return ds.AttributeNames[attIndex]
	}
	return fmt.Sprintf("f_%d", attIndex)
}

//Record returns a copy of the given row.
func (ds *Dataset) Record(row int) Record {
	return Record{
		Values: mat.Row(nil, row, ds.Features),
		Label:  ds.Labels[row],
		Weight: ds.Weight(row),
	}
}

//TotalWeight returns the sum of the weights of all records.
func (ds *Dataset) TotalWeight() float64 {
	if ds.Weights == nil {
		return float64(len(ds.Labels))
	}
	total := 0.0
	for _, w := range ds.Weights {
		total += w
	}
	return total
}

//validatedDimensions checks the consistency of the dataset and returns the height (the number of records)
//and the width (the number of attributes).
func (ds *Dataset) validatedDimensions() (h, w int, err error) {
	if ds.Features == nil {
		return 0, 0, malformed("dataset has no features")
	}
	h, w = ds.Features.Dims()
	if h == 0 {
		return 0, 0, malformed("dataset is empty")
	}
	if len(ds.Labels) != h {
		return 0, 0, malformed("the labels length %d is not equal to the features height %d", len(ds.Labels), h)
	}
	if ds.Weights != nil && len(ds.Weights) != h {
		return 0, 0, malformed("the weights length %d is not equal to the features height %d", len(ds.Weights), h)
	}
	if ds.Nominal != nil && len(ds.Nominal) != w {
		return 0, 0, malformed("the nominal flags length %d is not equal to the features width %d", len(ds.Nominal), w)
	}
	if ds.NumClasses < 1 {
		return 0, 0, malformed("the number of classes should be positive not %d", ds.NumClasses)
	}
	for p, label := range ds.Labels {
		if label < 0 || label >= ds.NumClasses {
			return 0, 0, malformed("label %d of record %d is outside [0, %d)", label, p, ds.NumClasses)
		}
	}
	for p, weight := range ds.Weights {
		if weight < 0 || math.IsNaN(weight) {
			return 0, 0, malformed("weight %g of record %d is not a non-negative number", weight, p)
		}
	}
	return h, w, nil
}

//checkAttribute checks the attribute index and rejects infinite values in its column.
func (ds *Dataset) checkAttribute(attIndex int) error {
	h, w := ds.Features.Dims()
	if attIndex < 0 || attIndex >= w {
		return malformed("attribute index %d is outside [0, %d)", attIndex, w)
	}
	for row := 0; row < h; row++ {
		if val := ds.Features.At(row, attIndex); math.IsInf(val, 0) {
			return malformed("value %g of record %d on attribute %d is infinite", val, row, attIndex)
		}
	}
	return nil
}

//ReadDataset reads the components of a data set and unites them into one Dataset object.
//The weights file is optional. When numClasses is zero it is inferred from the largest label.
func ReadDataset(fileNameFeatures, fileNameLabels, fileNameWeights string, numClasses int) (ds Dataset, err error) {
	log.Print("\ttry to load features <", fileNameFeatures, ">")
	ds.Features, err = ReadNpy(fileNameFeatures)
	if err != nil {
		return Dataset{}, err
	}

	log.Print("\ttry to load labels <", fileNameLabels, ">")
	rawLabels, err := readNpyVector(fileNameLabels)
	if err != nil {
		return Dataset{}, err
	}
	ds.Labels = make([]int, len(rawLabels))
	maxLabel := -1
	for p, val := range rawLabels {
		if val != math.Trunc(val) {
			return Dataset{}, malformed("label %g of record %d is not an integer class code", val, p)
		}
		ds.Labels[p] = int(val)
		if ds.Labels[p] > maxLabel {
			maxLabel = ds.Labels[p]
		}
	}

	if fileNameWeights != "" {
		log.Print("\ttry to load weights <", fileNameWeights, ">")
		ds.Weights, err = readNpyVector(fileNameWeights)
		if err != nil {
			return Dataset{}, err
		}
	}

	ds.NumClasses = numClasses
	if ds.NumClasses == 0 {
		ds.NumClasses = maxLabel + 1
	}

	if _, _, err = ds.validatedDimensions(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

//ReadNpy reads the content of npy file into a matrix
func ReadNpy(fileName string) (denseMat *mat.Dense, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fileName)
	}
	defer func() { HandleError(f.Close()) }()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read npy header of %s", fileName)
	}

	denseMat = &mat.Dense{}
	if err = r.Read(denseMat); err != nil {
		return nil, errors.Wrapf(err, "read npy data of %s", fileName)
	}
	return denseMat, nil
}

func readNpyVector(fileName string) (values []float64, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fileName)
	}
	defer func() { HandleError(f.Close()) }()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read npy header of %s", fileName)
	}
	if err = r.Read(&values); err != nil {
		return nil, errors.Wrapf(err, "read npy data of %s", fileName)
	}
	return values, nil
}

//WriteNpy stores a matrix into a npy file. npyio writes only dense matrices, so other kinds are copied first.
func WriteNpy(fileName string, m mat.Matrix) error {
	dst, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "create %s", fileName)
	}
	if err = npyio.Write(dst, mat.DenseCopyOf(m)); err != nil {
		_ = dst.Close()
		return errors.Wrapf(err, "write npy data to %s", fileName)
	}
	return dst.Close()
}
