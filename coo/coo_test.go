// SPDX-License-Identifier: MIT
package coo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blocksparse/coo"
	"github.com/katalvlaran/blocksparse/dense"
	"github.com/katalvlaran/blocksparse/layout"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rows, cols int
		row, col   []int
		data       []float64
		want       error
	}{
		{"ok", 2, 2, []int{0, 1}, []int{1, 0}, []float64{1, 2}, nil},
		{"bad shape", 0, 2, nil, nil, nil, coo.ErrInvalidDimensions},
		{"length", 2, 2, []int{0}, []int{0, 1}, []float64{1}, coo.ErrLengthMismatch},
		{"row range", 2, 2, []int{2}, []int{0}, []float64{1}, coo.ErrOutOfRange},
		{"col negative", 2, 2, []int{0}, []int{-1}, []float64{1}, coo.ErrOutOfRange},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := coo.New(tc.rows, tc.cols, tc.row, tc.col, tc.data)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDenseRoundTripSumsDuplicates(t *testing.T) {
	t.Parallel()

	m, err := coo.New(2, 3, []int{0, 1, 0}, []int{2, 0, 2}, []int{4, 5, 6})
	require.NoError(t, err)

	d, err := m.ToDense()
	require.NoError(t, err)
	require.Equal(t, []int{0, 0, 10, 5, 0, 0}, d.RawData())

	back := coo.FromDense(d)
	require.Equal(t, 2, back.NNZ())
	require.Equal(t, []int{0, 1}, back.Row())
	require.Equal(t, []int{2, 0}, back.Col())
	require.Equal(t, []int{10, 5}, back.Data())
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	m, err := coo.New(3, 3,
		[]int{2, 0, 0, 1, 0},
		[]int{0, 2, 1, 1, 2},
		[]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	rm := m.Canonical(layout.RowMajor)
	require.Equal(t, []int{0, 0, 1, 2}, rm.Row())
	require.Equal(t, []int{1, 2, 1, 0}, rm.Col())
	require.Equal(t, []float64{3, 7, 4, 1}, rm.Data())

	cm := m.Canonical(layout.ColMajor)
	require.Equal(t, []int{0, 1, 1, 2}, cm.Col())
	require.Equal(t, []int{2, 0, 1, 0}, cm.Row())
	require.Equal(t, []float64{1, 3, 4, 7}, cm.Data())

	// Canonical never mutates the receiver.
	require.Equal(t, []float64{1, 2, 3, 4, 5}, m.Data())

	d1, err := m.ToDense()
	require.NoError(t, err)
	d2, err := cm.ToDense()
	require.NoError(t, err)
	require.True(t, d1.Equal(d2))
}

func TestFromDenseEmpty(t *testing.T) {
	t.Parallel()

	d, err := dense.New[float64](2, 2)
	require.NoError(t, err)
	m := coo.FromDense(d)
	require.Equal(t, 0, m.NNZ())
	require.Equal(t, layout.Dims{Rows: 2, Cols: 2}, m.Shape())
}
