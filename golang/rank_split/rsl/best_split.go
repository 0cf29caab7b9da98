package rsl

import (
	"context"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"
)

//SplitParams collect arguments required to search a split over all attributes.
type SplitParams struct {
	MinLeafSize      int
	UseMDLCorrection bool
	ThreadsNum       int
	Verbose          bool
}

//buildAttributeSplit searches the split on one attribute with its own sorted view and scratch tables.
func buildAttributeSplit(ds *Dataset, attIndex int, params SplitParams, sumOfWeights float64) (RankedSplit, error) {
	if ds.IsNominal(attIndex) {
		split := NewNominalSplit(attIndex, params.MinLeafSize)
		if err := split.Build(ds); err != nil {
			return nil, err
		}
		return split, nil
	}
	split := NewRankEntropySplit(attIndex, params.MinLeafSize, sumOfWeights, params.UseMDLCorrection)
	if err := split.Build(ds); err != nil {
		return nil, err
	}
	return split, nil
}

//TheBestSplit finds the split with the highest rank mutual information over all attributes of ds.
//Attributes are scanned concurrently when ThreadsNum is not 1. A tie goes to the lower attribute index.
//It returns nil when no attribute yields a split.
func TheBestSplit(ctx context.Context, ds *Dataset, params SplitParams) (RankedSplit, error) {
	_, w, err := ds.validatedDimensions()
	if err != nil {
		return nil, err
	}
	sumOfWeights := ds.TotalWeight()
	result := make([]RankedSplit, w)

	if params.ThreadsNum == 1 {
		for q := 0; q < w; q++ {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
			if result[q], err = buildAttributeSplit(ds, q, params, sumOfWeights); err != nil {
				return nil, err
			}
		}
	} else {
		threadsNum := params.ThreadsNum
		if threadsNum <= 0 {
			threadsNum = runtime.GOMAXPROCS(0)
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(threadsNum, w))
		for q := 0; q < w; q++ {
			g.Go(func(localQ int) func() error {
				return func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					split, err := buildAttributeSplit(ds, localQ, params, sumOfWeights)
					if err != nil {
						return err
					}
					result[localQ] = split
					return nil
				}
			}(q))
		}
		if err = g.Wait(); err != nil {
			return nil, err
		}
	}

	var best RankedSplit
	for _, currentSplit := range result {
		if params.Verbose {
			log.Printf("attribute %s: subsets %d, rmi %g", ds.AttributeName(currentSplit.AttIndex()), currentSplit.NumSubsets(), currentSplit.RMI())
		}
		if currentSplit.NumSubsets() > 0 && (best == nil || gr(currentSplit.RMI(), best.RMI())) {
			best = currentSplit
		}
	}
	return best, nil
}
