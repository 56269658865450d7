// SPDX-License-Identifier: MIT

// Package bsr - conversion bridge.
//
// Every target other than the coordinate form is produced through ToCOO:
// dense, CSR, CSC, DIA, DOK and gonum. Explicit zeros stored inside blocks are
// emitted by ToCOO; the targets decide whether to keep them.
package bsr

import (
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/blocksparse/coo"
	"github.com/katalvlaran/blocksparse/csr"
	"github.com/katalvlaran/blocksparse/dense"
	"github.com/katalvlaran/blocksparse/dia"
	"github.com/katalvlaran/blocksparse/dok"
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

// ToCOO expands every stored block into scalar (row, col, value) triples, in
// storage order, R*C entries per block. Inside a block entries are row-major.
//
// Errors: ErrIndptrOverflow for a slice reaching past the stored blocks, and
// the coo sentinels for out-of-range coordinates (possible only on matrices
// built with WithFullCheck(false)).
// Complexity: O(nnz).
func (m *BlockMatrix[T]) ToCOO() (*coo.Matrix[T], error) {
	R, C := m.blocksize.Rows, m.blocksize.Cols
	n := m.NNZ()
	row := make([]int, 0, n)
	col := make([]int, 0, n)
	data := make([]T, 0, n)
	for k := 0; k+1 < len(m.indptr); k++ {
		lo, hi := int(m.indptr[k]), int(m.indptr[k+1])
		if lo < 0 || hi > m.data.Len() || hi > len(m.indices) {
			return nil, bsrErrorf("ToCOO", ErrIndptrOverflow, "slice %d spans [%d,%d)", k, lo, hi)
		}
		for p := lo; p < hi; p++ {
			br, bc := m.orient.Swap(k, int(m.indices[p]))
			blk := m.data.Block(p)
			for i := 0; i < R; i++ {
				for j := 0; j < C; j++ {
					row = append(row, br*R+i)
					col = append(col, bc*C+j)
					data = append(data, blk[i*C+j])
				}
			}
		}
	}
	c, err := coo.New(m.shape.Rows, m.shape.Cols, row, col, data)
	if err != nil {
		return nil, bsrErrorf("ToCOO", err, "")
	}

	return c, nil
}

// ToDense materializes the full M×N array. Duplicate blocks are summed.
func (m *BlockMatrix[T]) ToDense() (*dense.Dense[T], error) {
	c, err := m.ToCOO()
	if err != nil {
		return nil, err
	}

	return c.ToDense()
}

// ToCSR converts to scalar compressed rows.
func (m *BlockMatrix[T]) ToCSR() (*csr.Matrix[T], error) {
	return m.toCompressed(layout.RowMajor)
}

// ToCSC converts to scalar compressed columns.
func (m *BlockMatrix[T]) ToCSC() (*csr.Matrix[T], error) {
	return m.toCompressed(layout.ColMajor)
}

func (m *BlockMatrix[T]) toCompressed(o layout.Orientation) (*csr.Matrix[T], error) {
	c, err := m.ToCOO()
	if err != nil {
		return nil, err
	}

	return csr.FromCOO(c, o)
}

// ToDIA converts to diagonal storage.
func (m *BlockMatrix[T]) ToDIA() (*dia.Matrix[T], error) {
	c, err := m.ToCOO()
	if err != nil {
		return nil, err
	}

	return dia.FromCOO(c)
}

// ToDOK converts to a dictionary of keys. Stored zeros are dropped.
func (m *BlockMatrix[T]) ToDOK() (*dok.Matrix[T], error) {
	c, err := m.ToCOO()
	if err != nil {
		return nil, err
	}

	return dok.FromCOO(c)
}

// ToGonum materializes a float64 gonum matrix.
func (m *BlockMatrix[T]) ToGonum() (*mat.Dense, error) {
	d, err := m.ToDense()
	if err != nil {
		return nil, err
	}

	return dense.ToGonum(d), nil
}

// WithData returns a matrix with m's structure and the given blocks. The block
// buffer is adopted without copying; indices and indptr are deep-copied when
// copy is true and shared otherwise. blocks must hold NNZBlocks() blocks of
// Blocksize().
//
// Errors: anything Check(true) reports (ErrRank, ErrBlocksize,
// ErrLengthMismatch, ErrIndexRange, ...).
func (m *BlockMatrix[T]) WithData(blocks Blocks[T], copy bool) (*BlockMatrix[T], error) {
	out := &BlockMatrix[T]{
		shape:     m.shape,
		blocksize: m.blocksize,
		orient:    m.orient,
		data:      blocks,
		indices:   m.indices,
		indptr:    m.indptr,
		aliased:   true,
	}
	if copy {
		out.indices = slices.Clone(m.indices)
		out.indptr = slices.Clone(m.indptr)
	}
	if err := out.Check(true); err != nil {
		return nil, err
	}

	return out, nil
}

// Cast converts the element type of m, keeping its structure. Values that U
// cannot represent fail with numeric.ErrCast.
// Complexity: O(nnz).
func Cast[T, U numeric.Scalar](m *BlockMatrix[T]) (*BlockMatrix[U], error) {
	vals, err := numeric.CastSlice[T, U](m.data.data)
	if err != nil {
		return nil, bsrErrorf("Cast", err, "%s to %s", numeric.TypeName[T](), numeric.TypeName[U]())
	}

	return &BlockMatrix[U]{
		shape:     m.shape,
		blocksize: m.blocksize,
		orient:    m.orient,
		data:      Blocks[U]{data: vals, shape: slices.Clone(m.data.shape)},
		indices:   slices.Clone(m.indices),
		indptr:    slices.Clone(m.indptr),
	}, nil
}
