// SPDX-License-Identifier: MIT

// Package csr implements scalar compressed sparse storage in both
// orientations: CSR (layout.RowMajor) and CSC (layout.ColMajor).
//
// Purpose:
//   - Serve as a conversion target of the block formats.
//   - Own the in-place index sort that the block formats borrow through a
//     proxy matrix whose data is a permutation.
//
// Determinism:
//   - SortIndices is stable: equal minor indices keep their relative order,
//     so duplicates never swap their payloads.
package csr

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/blocksparse/coo"
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

// Matrix is a scalar compressed sparse matrix.
//   - indptr has one entry per major slice plus one; slice k occupies
//     [indptr[k], indptr[k+1]) of indices/data.
//   - indices holds minor-axis positions; data the matching values.
type Matrix[T numeric.Scalar] struct {
	dims    layout.Dims
	orient  layout.Orientation
	data    []T
	indices []int32
	indptr  []int32
}

var _ coo.Source[float64] = (*Matrix[float64])(nil)

// New validates the triple and adopts it without copying: the returned
// matrix aliases data, indices and indptr.
//
// Implementation:
//   - Stage 1: shape and orientation sanity.
//   - Stage 2: O(1) structural checks on indptr/indices/data lengths.
//   - Stage 3: O(nnz) checks: indptr non-decreasing, indices in range.
//
// Errors:
//   - ErrInvalidDimensions, ErrIndptr, ErrLengthMismatch, ErrOutOfRange.
//
// Complexity: O(major + nnz).
func New[T numeric.Scalar](dims layout.Dims, o layout.Orientation, data []T, indices, indptr []int32) (*Matrix[T], error) {
	if !dims.Valid() || !o.Valid() {
		return nil, fmt.Errorf("csr.New(%v, %v): %w", dims, o, ErrInvalidDimensions)
	}
	major, minor := dims.Major(o)
	if len(indptr) != major+1 {
		return nil, fmt.Errorf("csr.New: indptr length %d, want %d: %w", len(indptr), major+1, ErrIndptr)
	}
	if indptr[0] != 0 {
		return nil, fmt.Errorf("csr.New: indptr[0]=%d: %w", indptr[0], ErrIndptr)
	}
	if len(indices) != len(data) {
		return nil, fmt.Errorf("csr.New: indices=%d data=%d: %w", len(indices), len(data), ErrLengthMismatch)
	}
	if int(indptr[major]) > len(indices) {
		return nil, fmt.Errorf("csr.New: indptr[-1]=%d exceeds %d entries: %w", indptr[major], len(indices), ErrIndptr)
	}
	for k := 1; k <= major; k++ {
		if indptr[k] < indptr[k-1] {
			return nil, fmt.Errorf("csr.New: indptr decreases at %d: %w", k, ErrIndptr)
		}
	}
	for p := 0; p < int(indptr[major]); p++ {
		if indices[p] < 0 || int(indices[p]) >= minor {
			return nil, fmt.Errorf("csr.New: index %d at %d outside [0,%d): %w", indices[p], p, minor, ErrOutOfRange)
		}
	}

	return &Matrix[T]{dims: dims, orient: o, data: data, indices: indices, indptr: indptr}, nil
}

// FromCOO compresses c under orientation o. Duplicate coordinates are summed
// and every slice comes out sorted.
// Complexity: O(nnz log nnz).
func FromCOO[T numeric.Scalar](c *coo.Matrix[T], o layout.Orientation) (*Matrix[T], error) {
	canon := c.Canonical(o)
	major, _ := canon.Shape().Major(o)
	n := canon.NNZ()

	indptr := make([]int32, major+1)
	indices := make([]int32, n)
	data := make([]T, n)
	row, col, val := canon.Row(), canon.Col(), canon.Data()
	for p := 0; p < n; p++ {
		mj, mn := o.Unswap(row[p], col[p])
		indptr[mj+1]++
		indices[p] = int32(mn)
		data[p] = val[p]
	}
	for k := 0; k < major; k++ {
		indptr[k+1] += indptr[k]
	}

	return New(canon.Shape(), o, data, indices, indptr)
}

// Shape returns (rows, cols).
func (m *Matrix[T]) Shape() layout.Dims { return m.dims }

// Orientation returns RowMajor for CSR and ColMajor for CSC.
func (m *Matrix[T]) Orientation() layout.Orientation { return m.orient }

// NNZ returns indptr[-1], the number of stored entries.
func (m *Matrix[T]) NNZ() int { return int(m.indptr[len(m.indptr)-1]) }

// Data returns the value buffer (shared).
func (m *Matrix[T]) Data() []T { return m.data }

// Indices returns the minor index buffer (shared).
func (m *Matrix[T]) Indices() []int32 { return m.indices }

// Indptr returns the offset buffer (shared).
func (m *Matrix[T]) Indptr() []int32 { return m.indptr }

// HasSortedIndices reports whether every slice is in non-decreasing minor order.
// Complexity: O(nnz).
func (m *Matrix[T]) HasSortedIndices() bool {
	for k := 0; k+1 < len(m.indptr); k++ {
		for p := m.indptr[k] + 1; p < m.indptr[k+1]; p++ {
			if m.indices[p-1] > m.indices[p] {
				return false
			}
		}
	}

	return true
}

// sliceSorter sorts one major slice's (index, value) pairs by index.
type sliceSorter[T numeric.Scalar] struct {
	idx []int32
	val []T
}

func (s sliceSorter[T]) Len() int           { return len(s.idx) }
func (s sliceSorter[T]) Less(a, b int) bool { return s.idx[a] < s.idx[b] }
func (s sliceSorter[T]) Swap(a, b int) {
	s.idx[a], s.idx[b] = s.idx[b], s.idx[a]
	s.val[a], s.val[b] = s.val[b], s.val[a]
}

// SortIndices reorders each major slice into ascending minor order, in place,
// moving data together with indices. indptr is untouched.
//
// Implementation:
//   - Stage 1: skip slices that are already sorted (O(len) scan).
//   - Stage 2: stable sort of the remaining slices.
//
// Complexity: O(nnz log s) where s is the longest slice.
func (m *Matrix[T]) SortIndices() error {
	for k := 0; k+1 < len(m.indptr); k++ {
		lo, hi := m.indptr[k], m.indptr[k+1]
		s := sliceSorter[T]{idx: m.indices[lo:hi], val: m.data[lo:hi]}
		if sort.IsSorted(s) {
			continue
		}
		sort.Stable(s)
	}

	return nil
}

// ToCOO expands m into coordinate form in storage order.
// Complexity: O(nnz).
func (m *Matrix[T]) ToCOO() (*coo.Matrix[T], error) {
	n := m.NNZ()
	row := make([]int, n)
	col := make([]int, n)
	data := make([]T, n)
	for k := 0; k+1 < len(m.indptr); k++ {
		for p := m.indptr[k]; p < m.indptr[k+1]; p++ {
			row[p], col[p] = m.orient.Swap(k, int(m.indices[p]))
			data[p] = m.data[p]
		}
	}

	return coo.New(m.dims.Rows, m.dims.Cols, row, col, data)
}
