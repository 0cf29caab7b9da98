package rsl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitDescriptions(t *testing.T) {
	ds := newColumnDataset([]float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5}, []int{0, 0, 0, 0, 1, 1, 1, 1, 1, 1}, 2)
	ds.AttributeNames = []string{"dose"}
	split := buildSplit(t, ds, 2)

	node := SplitNodeDescription(split, ds)
	require.True(t, strings.HasPrefix(node, "# 10\n"), node)
	require.True(t, strings.HasSuffix(node, "dose"), node)

	branch := BranchDescription(split, ds, 1)
	require.True(t, strings.HasPrefix(branch, "dose > 2.5\n"), branch)
	require.Contains(t, branch, "    6.00,")
}

func TestDrawGraph(t *testing.T) {
	ds := newColumnDataset([]float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5}, []int{0, 0, 0, 0, 1, 1, 1, 1, 1, 1}, 2)
	split := buildSplit(t, ds, 2)

	graphViz, graph, err := DrawGraph(split, ds)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, graph.Close())
		require.NoError(t, graphViz.Close())
	}()
	require.Equal(t, 3, graph.NumberNodes())
	require.Equal(t, 2, graph.NumberEdges())

	flat := newColumnDataset([]float64{1, 1, 1, 1}, []int{0, 1, 0, 1}, 2)
	_, _, err = DrawGraph(buildSplit(t, flat, 1), flat)
	require.Error(t, err)
}
