// SPDX-License-Identifier: MIT

// Package dok implements a dictionary-of-keys sparse matrix: a map from
// (row, col) to value. Absent keys read as zero; storing zero deletes the key.
package dok

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/blocksparse/coo"
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

var (
	// ErrInvalidDimensions indicates a non-positive shape.
	ErrInvalidDimensions = errors.New("dok: dimensions must be > 0")

	// ErrOutOfRange indicates a coordinate outside the matrix.
	ErrOutOfRange = errors.New("dok: index out of range")
)

// Key is a (row, col) coordinate.
type Key struct {
	Row, Col int
}

// Matrix is a dictionary-of-keys sparse matrix.
type Matrix[T numeric.Scalar] struct {
	dims layout.Dims
	data map[Key]T
}

var _ coo.Source[float64] = (*Matrix[float64])(nil)

// New returns an empty rows×cols matrix.
func New[T numeric.Scalar](rows, cols int) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Matrix[T]{dims: layout.Dims{Rows: rows, Cols: cols}, data: make(map[Key]T)}, nil
}

// FromCOO accumulates c into a new matrix (duplicates summed, zeros dropped).
// Complexity: O(nnz).
func FromCOO[T numeric.Scalar](c *coo.Matrix[T]) (*Matrix[T], error) {
	dims := c.Shape()
	m, err := New[T](dims.Rows, dims.Cols)
	if err != nil {
		return nil, err
	}
	row, col, val := c.Row(), c.Col(), c.Data()
	for p, v := range val {
		k := Key{row[p], col[p]}
		if s := m.data[k] + v; s != 0 {
			m.data[k] = s
		} else {
			delete(m.data, k)
		}
	}

	return m, nil
}

// Shape returns (rows, cols).
func (m *Matrix[T]) Shape() layout.Dims { return m.dims }

// Len returns the number of stored (nonzero) entries.
func (m *Matrix[T]) Len() int { return len(m.data) }

func (m *Matrix[T]) check(i, j int) error {
	if i < 0 || i >= m.dims.Rows || j < 0 || j >= m.dims.Cols {
		return fmt.Errorf("dok(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return nil
}

// At returns the value at (i, j); absent entries are zero.
func (m *Matrix[T]) At(i, j int) (T, error) {
	if err := m.check(i, j); err != nil {
		var zero T

		return zero, err
	}

	return m.data[Key{i, j}], nil
}

// Set stores v at (i, j); v == 0 removes the entry.
func (m *Matrix[T]) Set(i, j int, v T) error {
	if err := m.check(i, j); err != nil {
		return err
	}
	if v == 0 {
		delete(m.data, Key{i, j})
		return nil
	}
	m.data[Key{i, j}] = v

	return nil
}

// ToCOO lists the entries in row-major key order so output is deterministic.
// Complexity: O(nnz log nnz).
func (m *Matrix[T]) ToCOO() (*coo.Matrix[T], error) {
	keys := make([]Key, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].Row != keys[b].Row {
			return keys[a].Row < keys[b].Row
		}
		return keys[a].Col < keys[b].Col
	})
	row := make([]int, len(keys))
	col := make([]int, len(keys))
	data := make([]T, len(keys))
	for p, k := range keys {
		row[p], col[p], data[p] = k.Row, k.Col, m.data[k]
	}

	return coo.New(m.dims.Rows, m.dims.Cols, row, col, data)
}
