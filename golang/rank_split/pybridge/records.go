// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"

	"github.com/tarstars/rank_entropy_split/golang/rank_split/rsl"
)

//splitParams passes the bridge arguments through; threadsNum <= 0 lets the library use GOMAXPROCS.
func splitParams(minLeafSize int, useMDLCorrection bool, threadsNum int) rsl.SplitParams {
	return rsl.SplitParams{
		MinLeafSize:      minLeafSize,
		UseMDLCorrection: useMDLCorrection,
		ThreadsNum:       threadsNum,
	}
}

//whichSubset routes one record through the split. When wantWeights is set, weightsOut must hold one slot
//per subset and receives the fractional weights of a record that goes to no single branch.
func (s *foundSplit) whichSubset(values, weightsOut []float64, wantWeights bool) (int, error) {
	if s.split == nil {
		return -2, errors.New("no split was found")
	}
	_, w := s.ds.Features.Dims()
	if len(values) != w {
		return -2, errors.New("record width does not match the dataset")
	}
	if wantWeights && len(weightsOut) != s.split.NumSubsets() {
		return -2, errors.New("weights length does not match the number of subsets")
	}

	record := rsl.Record{Values: values, Weight: 1}
	subset := s.split.WhichSubset(record)
	if subset == -1 && wantWeights {
		copy(weightsOut, s.split.Weights(record))
	}
	return subset, nil
}
