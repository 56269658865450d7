// SPDX-License-Identifier: MIT
// Package bsr_test contains shared fixtures.
//
// Purpose:
//   • Small deterministic matrices reused across construction, check, sort
//     and conversion tests.
//   • Helpers that fail the test early instead of returning errors.

package bsr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blocksparse/bsr"
	"github.com/katalvlaran/blocksparse/numeric"
)

// exampleRows touches all four 2×2 blocks.
var exampleRows = [][]float64{
	{1, 0, 0, 2},
	{0, 0, 0, 0},
	{3, 0, 0, 4},
	{0, 0, 0, 0},
}

// twoBlockRows touches only the top two 2×2 blocks.
var twoBlockRows = [][]float64{
	{1, 0, 0, 2},
	{0, 0, 0, 0},
	{0, 0, 0, 0},
	{0, 0, 0, 0},
}

// rowsOf materializes m as a nested slice via ToDense.
func rowsOf[T numeric.Scalar](t testing.TB, m *bsr.BlockMatrix[T]) [][]T {
	t.Helper()
	d, err := m.ToDense()
	require.NoError(t, err)
	out := make([][]T, d.Rows())
	for i := range out {
		out[i] = make([]T, d.Cols())
		copy(out[i], d.RawData()[i*d.Cols():(i+1)*d.Cols()])
	}

	return out
}

// zeros returns an r×c nested slice of zeros.
func zeros(r, c int) [][]float64 {
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
	}

	return out
}

// mustExample builds exampleRows with 2×2 blocks or fails the test.
func mustExample(t testing.TB, opts ...bsr.Option) *bsr.BlockMatrix[float64] {
	t.Helper()
	m, err := bsr.New[float64](exampleRows, append([]bsr.Option{bsr.WithBlocksize(2, 2)}, opts...)...)
	require.NoError(t, err)

	return m
}

// unsortedTriple is a 2×6 matrix of 1×2 blocks whose slices are out of order:
// slice 0 holds block columns 2,0,1 and slice 1 holds 1,0.
func unsortedTriple() bsr.Triple[float64, int32] {
	return bsr.Triple[float64, int32]{
		Data:    bsr.NewBlocks([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5, 1, 2),
		Indices: []int32{2, 0, 1, 1, 0},
		Indptr:  []int32{0, 3, 5},
	}
}
