// SPDX-License-Identifier: MIT
package dia_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blocksparse/coo"
	"github.com/katalvlaran/blocksparse/dense"
	"github.com/katalvlaran/blocksparse/dia"
)

func TestFromCOORoundTrip(t *testing.T) {
	t.Parallel()

	d, err := dense.FromRows([][]float64{
		{1, 2, 0},
		{0, 3, 0},
		{5, 0, 4},
	})
	require.NoError(t, err)

	m, err := dia.FromCOO(coo.FromDense(d))
	require.NoError(t, err)
	require.Equal(t, []int{-2, 0, 1}, m.Offsets())
	require.Equal(t, 3, m.NumDiagonals())
	require.Equal(t, []float64{5, 0, 0}, m.Diagonal(0))
	require.Equal(t, []float64{1, 3, 4}, m.Diagonal(1))
	require.Equal(t, []float64{0, 2, 0}, m.Diagonal(2))

	back, err := m.ToCOO()
	require.NoError(t, err)
	got, err := back.ToDense()
	require.NoError(t, err)
	require.True(t, d.Equal(got))
}
