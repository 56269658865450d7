// SPDX-License-Identifier: MIT
package dok_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blocksparse/coo"
	"github.com/katalvlaran/blocksparse/dok"
)

func TestAtSet(t *testing.T) {
	t.Parallel()

	m, err := dok.New[int](2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.Equal(t, 1, m.Len())

	require.NoError(t, m.Set(1, 2, 0))
	require.Equal(t, 0, m.Len())

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, dok.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 3, 1), dok.ErrOutOfRange)

	_, err = dok.New[int](0, 1)
	require.ErrorIs(t, err, dok.ErrInvalidDimensions)
}

func TestFromCOO(t *testing.T) {
	t.Parallel()

	c, err := coo.New(2, 2, []int{1, 0, 1, 0}, []int{1, 0, 1, 1}, []float64{2, 1, 3, 0})
	require.NoError(t, err)

	m, err := dok.FromCOO(c)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	back, err := m.ToCOO()
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, back.Row())
	require.Equal(t, []int{0, 1}, back.Col())
	require.Equal(t, []float64{1, 5}, back.Data())
}
