// SPDX-License-Identifier: MIT

// Package bsr - canonical index ordering.
//
// Blocks are not compared directly. A proxy scalar matrix shares the block
// matrix's indices and indptr and carries 0..nblocks-1 as its values; any
// in-place scalar sort of the proxy leaves the block permutation in its value
// array. SortBlocks applies that permutation to the block buffer.
package bsr

import (
	"slices"

	"github.com/katalvlaran/blocksparse/csr"
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

// ProxySorter reorders the (index, value) pairs of every major slice of a
// scalar matrix in place. (*csr.Matrix[int32]).SortIndices is one.
type ProxySorter func(proxy *csr.Matrix[int32]) error

// SortBlocks reorders m's blocks within each major slice using sort on a
// proxy matrix. Sorted indices are written through the shared indices array;
// blocks are permuted in place, so callers sharing buffers (WithCopy(false))
// observe a consistent result. indptr is never modified.
//
// Complexity: O(nnz) plus the cost of sort.
func SortBlocks[T numeric.Scalar](m *BlockMatrix[T], sort ProxySorter) error {
	n := m.NNZBlocks()
	if n > len(m.indices) || n > m.data.Len() || n < 0 {
		return bsrErrorf("SortIndices", ErrIndptrOverflow, "indptr[-1] = %d", n)
	}
	perm := make([]int32, n)
	for i := range perm {
		perm[i] = int32(i)
	}
	majorBlocks, minorBlocks := m.grid()
	rows, cols := m.orient.Swap(majorBlocks, minorBlocks)
	proxy, err := csr.New(layout.Dims{Rows: rows, Cols: cols}, m.orient, perm, m.indices[:n], m.indptr)
	if err != nil {
		return bsrErrorf("SortIndices", err, "proxy")
	}
	if err := sort(proxy); err != nil {
		return bsrErrorf("SortIndices", err, "proxy sort")
	}

	area := m.blocksize.Area()
	src := slices.Clone(m.data.data[:n*area])
	for i, p := range proxy.Data() {
		copy(m.data.data[i*area:(i+1)*area], src[int(p)*area:(int(p)+1)*area])
	}
	m.indices = proxy.Indices()

	return nil
}

// HasSortedIndices reports whether every major slice lists its minor block
// indices in non-decreasing order.
// Complexity: O(nnzBlocks).
func (m *BlockMatrix[T]) HasSortedIndices() bool {
	n := int32(len(m.indices))
	for k := 0; k+1 < len(m.indptr); k++ {
		lo, hi := max(m.indptr[k], 0), min(m.indptr[k+1], n)
		for p := lo + 1; p < hi; p++ {
			if m.indices[p-1] > m.indices[p] {
				return false
			}
		}
	}

	return true
}

// SortIndices puts each major slice into ascending minor order, in place.
// Already sorted matrices are left untouched, so repeated calls are no-ops.
// Ends with Check(false).
func (m *BlockMatrix[T]) SortIndices() error {
	if m.HasSortedIndices() {
		return nil
	}
	if err := SortBlocks(m, (*csr.Matrix[int32]).SortIndices); err != nil {
		return err
	}

	return m.Check(false)
}

// SortedIndices returns a sorted deep copy and leaves m unchanged.
func (m *BlockMatrix[T]) SortedIndices() (*BlockMatrix[T], error) {
	out := m.Copy()
	if err := out.SortIndices(); err != nil {
		return nil, err
	}

	return out, nil
}
