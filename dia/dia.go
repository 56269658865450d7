// SPDX-License-Identifier: MIT

// Package dia implements diagonal sparse storage.
//
// Each stored diagonal k has an offset off[k] = col - row and a value row
// data[k] of length cols, where data[k][j] holds A[j-off[k], j]. Positions
// that fall outside the matrix are padding and always zero.
package dia

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/blocksparse/coo"
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

// ErrInvalidDimensions indicates a non-positive shape.
var ErrInvalidDimensions = errors.New("dia: dimensions must be > 0")

// Matrix is a diagonal-format sparse matrix.
type Matrix[T numeric.Scalar] struct {
	dims    layout.Dims
	offsets []int
	data    [][]T
}

var _ coo.Source[float64] = (*Matrix[float64])(nil)

// FromCOO gathers every occupied diagonal of c, offsets ascending.
// Duplicates are summed.
// Complexity: O(nnz log nnz + ndiag*cols).
func FromCOO[T numeric.Scalar](c *coo.Matrix[T]) (*Matrix[T], error) {
	dims := c.Shape()
	if !dims.Valid() {
		return nil, ErrInvalidDimensions
	}
	canon := c.Canonical(layout.RowMajor)
	row, col, val := canon.Row(), canon.Col(), canon.Data()

	seen := make(map[int]struct{})
	for p := range val {
		seen[col[p]-row[p]] = struct{}{}
	}
	offsets := make([]int, 0, len(seen))
	for off := range seen {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)

	slot := make(map[int]int, len(offsets))
	data := make([][]T, len(offsets))
	for k, off := range offsets {
		slot[off] = k
		data[k] = make([]T, dims.Cols)
	}
	for p, v := range val {
		data[slot[col[p]-row[p]]][col[p]] = v
	}

	return &Matrix[T]{dims: dims, offsets: offsets, data: data}, nil
}

// Shape returns (rows, cols).
func (m *Matrix[T]) Shape() layout.Dims { return m.dims }

// Offsets returns the diagonal offsets (shared).
func (m *Matrix[T]) Offsets() []int { return m.offsets }

// Diagonal returns the padded value row of the k-th stored diagonal (shared).
func (m *Matrix[T]) Diagonal(k int) []T { return m.data[k] }

// NumDiagonals returns the number of stored diagonals.
func (m *Matrix[T]) NumDiagonals() int { return len(m.offsets) }

// ToCOO expands the nonzero in-bounds entries, diagonal by diagonal.
// Complexity: O(ndiag*cols).
func (m *Matrix[T]) ToCOO() (*coo.Matrix[T], error) {
	var row, col []int
	var data []T
	for k, off := range m.offsets {
		for j, v := range m.data[k] {
			i := j - off
			if i < 0 || i >= m.dims.Rows || v == 0 {
				continue
			}
			row = append(row, i)
			col = append(col, j)
			data = append(data, v)
		}
	}
	c, err := coo.New(m.dims.Rows, m.dims.Cols, row, col, data)
	if err != nil {
		return nil, fmt.Errorf("dia.ToCOO: %w", err)
	}

	return c, nil
}
