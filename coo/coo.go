// SPDX-License-Identifier: MIT

// Package coo implements the coordinate-list sparse format: parallel
// (row, col, value) arrays plus a shape.
//
// COO is the universal interchange form of this module: every other format
// converts to and from it, and dense arrays enter the sparse world through
// FromDense. Duplicate coordinates are allowed and mean "sum of the entries".
package coo

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/blocksparse/dense"
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

// Source is implemented by every sparse format that can expand itself into
// coordinate form.
type Source[T numeric.Scalar] interface {
	Shape() layout.Dims
	ToCOO() (*Matrix[T], error)
}

// Matrix is a coordinate-list sparse matrix.
type Matrix[T numeric.Scalar] struct {
	dims layout.Dims
	row  []int
	col  []int
	data []T
}

var _ Source[float64] = (*Matrix[float64])(nil)

// New validates and adopts the three parallel arrays (no copy).
//
// Errors:
//   - ErrInvalidDimensions when rows or cols is not positive.
//   - ErrLengthMismatch when the arrays differ in length.
//   - ErrOutOfRange when a coordinate lies outside the shape.
//
// Complexity: O(nnz).
func New[T numeric.Scalar](rows, cols int, row, col []int, data []T) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(row) != len(col) || len(row) != len(data) {
		return nil, fmt.Errorf("coo.New: row=%d col=%d data=%d: %w", len(row), len(col), len(data), ErrLengthMismatch)
	}
	for k := range row {
		if row[k] < 0 || row[k] >= rows || col[k] < 0 || col[k] >= cols {
			return nil, fmt.Errorf("coo.New: entry %d at (%d,%d) outside %dx%d: %w", k, row[k], col[k], rows, cols, ErrOutOfRange)
		}
	}

	return &Matrix[T]{dims: layout.Dims{Rows: rows, Cols: cols}, row: row, col: col, data: data}, nil
}

// FromDense collects the nonzero entries of d in row-major order.
// Complexity: O(r*c).
func FromDense[T numeric.Scalar](d *dense.Dense[T]) *Matrix[T] {
	out := &Matrix[T]{dims: d.Shape()}
	d.Do(func(i, j int, v T) bool {
		if v != 0 {
			out.row = append(out.row, i)
			out.col = append(out.col, j)
			out.data = append(out.data, v)
		}
		return true
	})

	return out
}

// Shape returns (rows, cols).
func (m *Matrix[T]) Shape() layout.Dims { return m.dims }

// NNZ returns the number of stored entries, duplicates included.
func (m *Matrix[T]) NNZ() int { return len(m.data) }

// Row returns the row coordinates (shared).
func (m *Matrix[T]) Row() []int { return m.row }

// Col returns the column coordinates (shared).
func (m *Matrix[T]) Col() []int { return m.col }

// Data returns the stored values (shared).
func (m *Matrix[T]) Data() []T { return m.data }

// ToCOO returns m itself; it lets *Matrix satisfy Source.
func (m *Matrix[T]) ToCOO() (*Matrix[T], error) { return m, nil }

// ToDense materializes m, summing duplicate coordinates.
// Complexity: O(r*c + nnz).
func (m *Matrix[T]) ToDense() (*dense.Dense[T], error) {
	out, err := dense.New[T](m.dims.Rows, m.dims.Cols)
	if err != nil {
		return nil, err
	}
	for k, v := range m.data {
		if err := out.Add(m.row[k], m.col[k], v); err != nil {
			return nil, fmt.Errorf("coo.ToDense: %w", err)
		}
	}

	return out, nil
}

// Canonical returns a copy ordered by (major, minor) under o with duplicate
// coordinates summed. Entries that sum to zero are kept as explicit zeros.
//
// Implementation:
//   - Stage 1: stable-sort a permutation of entry positions by (major, minor).
//   - Stage 2: walk the permutation, merging runs of equal coordinates.
//
// Complexity: O(nnz log nnz) time, O(nnz) space.
func (m *Matrix[T]) Canonical(o layout.Orientation) *Matrix[T] {
	n := len(m.data)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	key := func(p int) (int, int) { return o.Unswap(m.row[p], m.col[p]) }
	sort.SliceStable(perm, func(a, b int) bool {
		ma, na := key(perm[a])
		mb, nb := key(perm[b])
		if ma != mb {
			return ma < mb
		}
		return na < nb
	})

	out := &Matrix[T]{
		dims: m.dims,
		row:  make([]int, 0, n),
		col:  make([]int, 0, n),
		data: make([]T, 0, n),
	}
	for _, p := range perm {
		last := len(out.data) - 1
		if last >= 0 && out.row[last] == m.row[p] && out.col[last] == m.col[p] {
			out.data[last] += m.data[p]
			continue
		}
		out.row = append(out.row, m.row[p])
		out.col = append(out.col, m.col[p])
		out.data = append(out.data, m.data[p])
	}

	return out
}
