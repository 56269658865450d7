// SPDX-License-Identifier: MIT

// Package bsr - BlockMatrix storage & read accessors.
//
// Purpose:
//   - Hold the (data, indices, indptr) triple of a block compressed matrix.
//   - Expose read accessors that never copy (callers get shared views).
//   - Render the diagnostic summary used in logs.
//
// Complexity quicksheet:
//   - Shape/Blocksize/NNZ/NNZBlocks: O(1); Copy: O(nnz); String: O(1).
package bsr

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/blocksparse/coo"
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

// formatNames maps orientation to the human name used by String.
var formatNames = map[layout.Orientation]string{
	layout.RowMajor: "Block Sparse Row",
	layout.ColMajor: "Block Sparse Column",
}

// BlockMatrix is an M×N sparse matrix stored as R×C dense blocks.
//   - data holds nblocks blocks; block p sits at major slice k where
//     indptr[k] <= p < indptr[k+1], and at minor block position indices[p].
//   - blocksize is stored explicitly and Check verifies it against data.
//   - orient is fixed at construction.
type BlockMatrix[T numeric.Scalar] struct {
	shape     layout.Dims
	blocksize layout.Dims
	orient    layout.Orientation
	data      Blocks[T]
	indices   []int32
	indptr    []int32
	aliased   bool // buffers shared with a caller (WithCopy(false))
}

// Compile-time assertions.
var (
	_ coo.Source[float64] = (*BlockMatrix[float64])(nil)
	_ fmt.Stringer        = (*BlockMatrix[float64])(nil)
)

// Shape returns (M, N).
func (m *BlockMatrix[T]) Shape() layout.Dims { return m.shape }

// Blocksize returns (R, C).
func (m *BlockMatrix[T]) Blocksize() layout.Dims { return m.blocksize }

// Orientation returns RowMajor (BSR) or ColMajor (BSC).
func (m *BlockMatrix[T]) Orientation() layout.Orientation { return m.orient }

// NNZBlocks returns indptr[-1], the number of stored blocks.
func (m *BlockMatrix[T]) NNZBlocks() int {
	if len(m.indptr) == 0 {
		return 0
	}

	return int(m.indptr[len(m.indptr)-1])
}

// NNZ returns the number of stored scalar entries, explicit zeros included:
// NNZBlocks()*R*C.
func (m *BlockMatrix[T]) NNZ() int { return m.NNZBlocks() * m.blocksize.Area() }

// Data returns the block buffer (shared).
func (m *BlockMatrix[T]) Data() Blocks[T] { return m.data }

// Indices returns the minor block indices (shared).
func (m *BlockMatrix[T]) Indices() []int32 { return m.indices }

// Indptr returns the major offsets (shared).
func (m *BlockMatrix[T]) Indptr() []int32 { return m.indptr }

// Aliased reports whether the buffers are shared with the caller that built
// the matrix with WithCopy(false). The data buffer is always shared in that
// case; index arrays only when they were passed as []int32.
func (m *BlockMatrix[T]) Aliased() bool { return m.aliased }

// grid returns the number of blocks along the major and minor axes.
func (m *BlockMatrix[T]) grid() (majorBlocks, minorBlocks int) {
	majorDim, minorDim := m.shape.Major(m.orient)
	majorBlk, minorBlk := m.blocksize.Major(m.orient)

	return majorDim / majorBlk, minorDim / minorBlk
}

// Copy returns a deep copy that owns its buffers.
// Complexity: O(nnz).
func (m *BlockMatrix[T]) Copy() *BlockMatrix[T] {
	return &BlockMatrix[T]{
		shape:     m.shape,
		blocksize: m.blocksize,
		orient:    m.orient,
		data:      m.data.clone(),
		indices:   slices.Clone(m.indices),
		indptr:    slices.Clone(m.indptr),
	}
}

// String renders a two-line summary for logs, e.g.
//
//	<4x6 sparse matrix of type 'float64'
//		with 8 stored elements (blocksize = 2x2) in Block Sparse Row format>
func (m *BlockMatrix[T]) String() string {
	return fmt.Sprintf("<%dx%d sparse matrix of type '%s'\n\twith %d stored elements (blocksize = %dx%d) in %s format>",
		m.shape.Rows, m.shape.Cols, numeric.TypeName[T](), m.NNZ(),
		m.blocksize.Rows, m.blocksize.Cols, formatNames[m.orient])
}
