// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"sync"
	"unsafe"

	"github.com/tarstars/rank_entropy_split/golang/rank_split/rsl"
	"gonum.org/v1/gonum/mat"
)

//foundSplit keeps a split together with the data it was searched on.
type foundSplit struct {
	split rsl.RankedSplit // nil when no attribute yields a split
	ds    *rsl.Dataset
}

var (
	handleMu   sync.Mutex
	nextHandle uint64 = 1
	splits            = make(map[uint64]*foundSplit)

	lastErrorMu sync.Mutex
	lastError   string

	logSilenceOnce sync.Once
)

func setLastError(err error) {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

func getLastError() string {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError
}

func storeSplit(s *foundSplit) uint64 {
	handleMu.Lock()
	defer handleMu.Unlock()
	handle := nextHandle
	splits[handle] = s
	nextHandle++
	return handle
}

func fetchSplit(handle uint64) (*foundSplit, error) {
	handleMu.Lock()
	defer handleMu.Unlock()
	s, ok := splits[handle]
	if !ok {
		return nil, errors.New("invalid split handle")
	}
	return s, nil
}

//export FreeSplit
func FreeSplit(handle C.ulonglong) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(splits, uint64(handle))
}

func copyFloatSlice(ptr *C.double, length int) ([]float64, error) {
	if length < 0 {
		return nil, errors.New("negative length")
	}
	if length == 0 {
		return nil, nil
	}
	if ptr == nil {
		return nil, errors.New("null pointer for non-empty slice")
	}
	src := unsafe.Slice((*float64)(unsafe.Pointer(ptr)), length)
	dst := make([]float64, length)
	copy(dst, src)
	return dst, nil
}

func sliceFromPtr(ptr *C.double, length int) ([]float64, error) {
	if length < 0 {
		return nil, errors.New("negative length")
	}
	if length == 0 {
		return nil, nil
	}
	if ptr == nil {
		return nil, errors.New("null pointer for non-empty slice")
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(ptr)), length), nil
}

func buildDense(ptr *C.double, rows, cols C.int) (*mat.Dense, error) {
	r := int(rows)
	c := int(cols)
	if r <= 0 || c <= 0 {
		return nil, errors.New("invalid matrix dimensions")
	}
	data, err := copyFloatSlice(ptr, r*c)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(r, c, data), nil
}

func buildLabels(ptr *C.double, rows int) ([]int, error) {
	raw, err := copyFloatSlice(ptr, rows)
	if err != nil {
		return nil, err
	}
	labels := make([]int, rows)
	for ind, val := range raw {
		if val != math.Trunc(val) {
			return nil, errors.New("labels should be integer class codes")
		}
		labels[ind] = int(val)
	}
	return labels, nil
}

func buildNominal(ptr *C.int, cols int) []bool {
	if ptr == nil {
		return nil
	}
	flags := unsafe.Slice((*C.int)(unsafe.Pointer(ptr)), cols)
	nominal := make([]bool, cols)
	for ind, flag := range flags {
		nominal[ind] = flag != 0
	}
	return nominal
}

func buildDataset(
	featuresPtr *C.double,
	rows C.int,
	cols C.int,
	labelsPtr *C.double,
	weightsPtr *C.double,
	nominalPtr *C.int,
	numClasses C.int,
) (*rsl.Dataset, error) {
	features, err := buildDense(featuresPtr, rows, cols)
	if err != nil {
		return nil, err
	}
	labels, err := buildLabels(labelsPtr, int(rows))
	if err != nil {
		return nil, err
	}
	var weights []float64
	if weightsPtr != nil {
		if weights, err = copyFloatSlice(weightsPtr, int(rows)); err != nil {
			return nil, err
		}
	}
	return &rsl.Dataset{
		Features:   features,
		Labels:     labels,
		Weights:    weights,
		NumClasses: int(numClasses),
		Nominal:    buildNominal(nominalPtr, int(cols)),
	}, nil
}

//export FindSplit
func FindSplit(
	featuresPtr *C.double,
	rows C.int,
	cols C.int,
	labelsPtr *C.double,
	weightsPtr *C.double,
	nominalPtr *C.int,
	numClasses C.int,
	minLeafSize C.int,
	useMDLCorrection C.int,
	threadsNum C.int,
) C.ulonglong {
	setLastError(nil)
	logSilenceOnce.Do(func() {
		log.SetOutput(io.Discard)
	})

	ds, err := buildDataset(featuresPtr, rows, cols, labelsPtr, weightsPtr, nominalPtr, numClasses)
	if err != nil {
		setLastError(err)
		return 0
	}

	best, err := rsl.TheBestSplit(context.Background(), ds, splitParams(int(minLeafSize), useMDLCorrection != 0, int(threadsNum)))
	if err != nil {
		setLastError(err)
		return 0
	}

	return C.ulonglong(storeSplit(&foundSplit{split: best, ds: ds}))
}

//export FindAttributeSplit
func FindAttributeSplit(
	featuresPtr *C.double,
	rows C.int,
	cols C.int,
	labelsPtr *C.double,
	weightsPtr *C.double,
	numClasses C.int,
	attIndex C.int,
	minLeafSize C.int,
) C.ulonglong {
	setLastError(nil)

	ds, err := buildDataset(featuresPtr, rows, cols, labelsPtr, weightsPtr, nil, numClasses)
	if err != nil {
		setLastError(err)
		return 0
	}

	split := rsl.NewRankEntropySplit(int(attIndex), int(minLeafSize), ds.TotalWeight(), false)
	if err = split.Build(ds); err != nil {
		setLastError(err)
		return 0
	}

	found := &foundSplit{ds: ds}
	if split.NumSubsets() > 0 {
		found.split = split
	}
	return C.ulonglong(storeSplit(found))
}

//export SplitNumSubsets
func SplitNumSubsets(handle C.ulonglong) C.int {
	setLastError(nil)
	s, err := fetchSplit(uint64(handle))
	if err != nil {
		setLastError(err)
		return -1
	}
	if s.split == nil {
		return 0
	}
	return C.int(s.split.NumSubsets())
}

//export SplitAttribute
func SplitAttribute(handle C.ulonglong) C.int {
	setLastError(nil)
	s, err := fetchSplit(uint64(handle))
	if err != nil {
		setLastError(err)
		return -1
	}
	if s.split == nil {
		return -1
	}
	return C.int(s.split.AttIndex())
}

//export SplitThreshold
func SplitThreshold(handle C.ulonglong) C.double {
	setLastError(nil)
	s, err := fetchSplit(uint64(handle))
	if err != nil {
		setLastError(err)
		return C.double(math.NaN())
	}
	if s.split == nil {
		return C.double(math.MaxFloat64)
	}
	return C.double(s.split.Threshold())
}

//export SplitScore
func SplitScore(handle C.ulonglong) C.double {
	setLastError(nil)
	s, err := fetchSplit(uint64(handle))
	if err != nil {
		setLastError(err)
		return C.double(math.NaN())
	}
	if s.split == nil {
		return C.double(-math.MaxFloat64)
	}
	return C.double(s.split.RMI())
}

//export SplitDistribution
func SplitDistribution(handle C.ulonglong, outputPtr *C.double, length C.int) C.int {
	setLastError(nil)
	s, err := fetchSplit(uint64(handle))
	if err != nil {
		setLastError(err)
		return 1
	}
	if s.split == nil {
		setLastError(errors.New("no split was found"))
		return 2
	}
	data := s.split.Distribution().Matrix().RawMatrix().Data
	if int(length) != len(data) {
		setLastError(errors.New("output length does not match subsets times classes"))
		return 3
	}
	outSlice, err := sliceFromPtr(outputPtr, len(data))
	if err != nil {
		setLastError(err)
		return 4
	}
	copy(outSlice, data)
	return 0
}

//export SplitWhichSubset
func SplitWhichSubset(handle C.ulonglong, valuesPtr *C.double, cols C.int, weightsPtr *C.double, weightsLen C.int) C.int {
	setLastError(nil)
	s, err := fetchSplit(uint64(handle))
	if err != nil {
		setLastError(err)
		return -2
	}
	values, err := copyFloatSlice(valuesPtr, int(cols))
	if err != nil {
		setLastError(err)
		return -2
	}
	var weightsOut []float64
	if weightsPtr != nil {
		if weightsOut, err = sliceFromPtr(weightsPtr, int(weightsLen)); err != nil {
			setLastError(err)
			return -2
		}
	}

	subset, err := s.whichSubset(values, weightsOut, weightsPtr != nil)
	if err != nil {
		setLastError(err)
		return -2
	}
	return C.int(subset)
}

//export RenderSplit
func RenderSplit(handle C.ulonglong, figureType, path *C.char) C.int {
	setLastError(nil)
	s, err := fetchSplit(uint64(handle))
	if err != nil {
		setLastError(err)
		return 1
	}
	if s.split == nil {
		setLastError(errors.New("no split was found"))
		return 2
	}
	goFigureType := C.GoString(figureType)
	if goFigureType == "" {
		goFigureType = "svg"
	}
	if err = rsl.RenderSplit(s.split, s.ds, goFigureType, C.GoString(path)); err != nil {
		setLastError(err)
		return 3
	}
	return 0
}

//export GetLastError
func GetLastError() *C.char {
	errStr := getLastError()
	if errStr == "" {
		return nil
	}
	return C.CString(errStr)
}

//export FreeCString
func FreeCString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func main() {}
