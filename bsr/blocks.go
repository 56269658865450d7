// SPDX-License-Identifier: MIT

package bsr

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

// Blocks is the block buffer of a BlockMatrix: a flat slice interpreted
// through an explicit shape. A well-formed buffer has rank 3,
// (block-count, R, C), and each block is stored row-major.
//
// The shape is carried separately from the data so that malformed input
// (wrong rank, inconsistent length) can be represented and rejected by
// Check with ErrRank rather than being unrepresentable.
type Blocks[T numeric.Scalar] struct {
	data  []T
	shape []int
}

// NewBlocks wraps data with the given shape. data is not copied; shape is.
// No validation happens here.
func NewBlocks[T numeric.Scalar](data []T, shape ...int) Blocks[T] {
	return Blocks[T]{data: data, shape: slices.Clone(shape)}
}

// ZeroBlocks allocates n zero blocks of r×c.
func ZeroBlocks[T numeric.Scalar](n, r, c int) Blocks[T] {
	return Blocks[T]{data: make([]T, n*r*c), shape: []int{n, r, c}}
}

// BlocksFromNested copies a [block][row][col] nested slice.
// Errors: ErrRank when empty or ragged (block dimensions cannot be agreed).
// Complexity: O(n*r*c).
func BlocksFromNested[T numeric.Scalar](nested [][][]T) (Blocks[T], error) {
	if len(nested) == 0 || len(nested[0]) == 0 || len(nested[0][0]) == 0 {
		return Blocks[T]{}, fmt.Errorf("BlocksFromNested: empty input: %w", ErrRank)
	}
	n, r, c := len(nested), len(nested[0]), len(nested[0][0])
	out := ZeroBlocks[T](n, r, c)
	for b, block := range nested {
		if len(block) != r {
			return Blocks[T]{}, fmt.Errorf("BlocksFromNested: block %d has %d rows, want %d: %w", b, len(block), r, ErrRank)
		}
		for i, row := range block {
			if len(row) != c {
				return Blocks[T]{}, fmt.Errorf("BlocksFromNested: block %d row %d has %d columns, want %d: %w", b, i, len(row), c, ErrRank)
			}
			copy(out.data[(b*r+i)*c:(b*r+i+1)*c], row)
		}
	}

	return out, nil
}

// Rank returns the number of dimensions in the shape.
func (b Blocks[T]) Rank() int { return len(b.shape) }

// Shape returns a copy of the shape vector.
func (b Blocks[T]) Shape() []int { return slices.Clone(b.shape) }

// Data returns the flat buffer (shared).
func (b Blocks[T]) Data() []T { return b.data }

// Len returns the block count (first dimension), or 0 for rank-0 buffers.
func (b Blocks[T]) Len() int {
	if len(b.shape) == 0 {
		return 0
	}

	return b.shape[0]
}

// BlockDims returns (R, C) for a rank-3 buffer and the zero Dims otherwise.
func (b Blocks[T]) BlockDims() layout.Dims {
	if len(b.shape) != 3 {
		return layout.Dims{}
	}

	return layout.Dims{Rows: b.shape[1], Cols: b.shape[2]}
}

// Block returns the i-th block as a row-major slice view of length R*C.
// The caller must ensure 0 <= i < Len() on a well-formed buffer.
func (b Blocks[T]) Block(i int) []T {
	area := b.BlockDims().Area()

	return b.data[i*area : (i+1)*area]
}

// consistent reports non-negative dimensions whose product equals len(data).
func (b Blocks[T]) consistent() bool {
	size := 1
	for _, d := range b.shape {
		if d < 0 {
			return false
		}
		size *= d
	}

	return size == len(b.data)
}

// clone deep-copies data and shape.
func (b Blocks[T]) clone() Blocks[T] {
	return Blocks[T]{data: slices.Clone(b.data), shape: slices.Clone(b.shape)}
}

// truncate keeps the first n blocks (reslice, no copy).
func (b Blocks[T]) truncate(n int) Blocks[T] {
	shape := slices.Clone(b.shape)
	shape[0] = n

	return Blocks[T]{data: b.data[:n*b.BlockDims().Area()], shape: shape}
}
