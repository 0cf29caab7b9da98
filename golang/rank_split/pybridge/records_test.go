// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tarstars/rank_entropy_split/golang/rank_split/rsl"
	"gonum.org/v1/gonum/mat"
)

func nominalFoundSplit(t *testing.T) *foundSplit {
	t.Helper()
	ds := &rsl.Dataset{
		Features:   mat.NewDense(6, 1, []float64{0, 0, 1, 1, 2, 2}),
		Labels:     []int{0, 0, 1, 1, 0, 1},
		NumClasses: 2,
		Nominal:    []bool{true},
	}
	split := rsl.NewNominalSplit(0, 1)
	require.NoError(t, split.Build(ds))
	require.Equal(t, 3, split.NumSubsets())
	return &foundSplit{split: split, ds: ds}
}

func TestWhichSubsetChecksWeightsLength(t *testing.T) {
	found := nominalFoundSplit(t)
	missing := []float64{math.NaN()}

	buffer := make([]float64, 3)
	_, err := found.whichSubset(missing, buffer[:2], true)
	require.Error(t, err)
	require.Equal(t, []float64{0, 0, 0}, buffer)

	subset, err := found.whichSubset(missing, buffer, true)
	require.NoError(t, err)
	require.Equal(t, -1, subset)
	require.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, buffer, 1e-12)

	subset, err = found.whichSubset([]float64{2}, nil, false)
	require.NoError(t, err)
	require.Equal(t, 2, subset)

	_, err = found.whichSubset([]float64{2, 1}, nil, false)
	require.Error(t, err)

	_, err = (&foundSplit{ds: found.ds}).whichSubset([]float64{2}, nil, false)
	require.Error(t, err)
}

func TestSplitParamsKeepThreads(t *testing.T) {
	params := splitParams(2, true, 0)
	require.Equal(t, 0, params.ThreadsNum)
	require.Equal(t, 2, params.MinLeafSize)
	require.True(t, params.UseMDLCorrection)
	require.Equal(t, -3, splitParams(1, false, -3).ThreadsNum)

	ds := &rsl.Dataset{
		Features:   mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
		Labels:     []int{0, 0, 1, 1},
		NumClasses: 2,
	}
	best, err := rsl.TheBestSplit(context.Background(), ds, splitParams(1, false, 0))
	require.NoError(t, err)
	require.Equal(t, 2.5, best.Threshold())
}
