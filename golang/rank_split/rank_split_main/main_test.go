package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNominalFlags(t *testing.T) {
	flags, err := nominalFlags([]int{0, 2}, 3)
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, true}, flags)

	flags, err = nominalFlags(nil, 3)
	require.NoError(t, err)
	require.Nil(t, flags)

	for _, col := range []int{3, -1} {
		_, err = nominalFlags([]int{0, col}, 3)
		require.Error(t, err, "column %d", col)
	}
}
