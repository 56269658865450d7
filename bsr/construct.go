// SPDX-License-Identifier: MIT

// Package bsr - construction dispatcher.
//
// Purpose:
//   - Turn one of four source forms into a validated BlockMatrix:
//     1. shape only         → NewEmpty
//     2. raw triple         → FromTriple
//     3. sparse matrix      → FromSparse (FromCOO for coordinate input)
//     4. dense array        → FromDense (via coordinate form, then form 3)
//   - New dispatches on the dynamic type of its argument and rejects
//     anything else with ErrFormat.
//
// Behavior highlights:
//   - Every path ends in finalize: explicit shape override, otherwise shape
//     inference, then the divisibility check and Check(fullCheck).
//   - On failure no matrix is returned; there is no partially built state.
package bsr

import (
	"cmp"
	"errors"
	"reflect"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/blocksparse/coo"
	"github.com/katalvlaran/blocksparse/dense"
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

// Triple is the raw (data, indices, indptr) representation. Index arrays
// may use any integer type; they are normalized to int32 on construction.
type Triple[T numeric.Scalar, I numeric.Index] struct {
	Data    Blocks[T]
	Indices []I
	Indptr  []I
}

// tripleSource lets New accept a Triple of any index type.
type tripleSource[T numeric.Scalar] interface {
	buildBlockMatrix(o Options) (*BlockMatrix[T], error)
}

func (t Triple[T, I]) buildBlockMatrix(o Options) (*BlockMatrix[T], error) {
	return fromTriple(t, o)
}

// New builds a BlockMatrix from any supported source form.
//
// Accepted sources:
//   - layout.Dims: empty matrix of that shape.
//   - Triple[T, I]: raw buffers.
//   - coo.Source[T]: *BlockMatrix, csr, coo, dia and dok matrices.
//   - *dense.Dense[T], [][]T, gonum mat.Matrix: dense arrays. gonum input is
//     cast from float64 to T with numeric.Cast.
//
// Errors:
//   - ErrFormat for any other input, a nil or typed-nil source, ragged
//     [][]T, or a gonum value that T cannot represent; plus everything the
//     selected constructor returns.
func New[T numeric.Scalar](src any, opts ...Option) (*BlockMatrix[T], error) {
	if isNilSource(src) {
		return nil, bsrErrorf("New", ErrFormat, "nil source %T", src)
	}
	switch s := src.(type) {
	case layout.Dims:
		return NewEmpty[T](s.Rows, s.Cols, opts...)
	case tripleSource[T]:
		return s.buildBlockMatrix(gatherOptions(opts...))
	case coo.Source[T]:
		return FromSparse(s, opts...)
	case *dense.Dense[T]:
		return FromDense(s, opts...)
	case [][]T:
		d, err := dense.FromRows(s)
		if err != nil {
			return nil, bsrErrorf("New", errors.Join(ErrFormat, err), "")
		}
		return FromDense(d, opts...)
	case mat.Matrix:
		d64, err := dense.FromGonum(s)
		if err != nil {
			return nil, bsrErrorf("New", errors.Join(ErrFormat, err), "")
		}
		d, err := dense.Convert[float64, T](d64)
		if err != nil {
			return nil, bsrErrorf("New", errors.Join(ErrFormat, err), "")
		}
		return FromDense(d, opts...)
	default:
		return nil, bsrErrorf("New", ErrFormat, "unsupported source %T for element type %s", src, numeric.TypeName[T]())
	}
}

// NewEmpty allocates a rows×cols matrix with no stored blocks: data of shape
// (0, R, C), empty indices and an all-zero indptr of majorDim/majorBlock+1.
//
// Errors: ErrBlocksize, ErrShape (non-positive or not divisible).
// Complexity: O(majorBlocks).
func NewEmpty[T numeric.Scalar](rows, cols int, opts ...Option) (*BlockMatrix[T], error) {
	o := gatherOptions(opts...)
	bs, err := resolveBlocksize(o, layout.Dims{Rows: DefaultBlockRows, Cols: DefaultBlockCols})
	if err != nil {
		return nil, err
	}
	shape := layout.Dims{Rows: rows, Cols: cols}
	if err := checkShape(shape, bs, o.orient); err != nil {
		return nil, err
	}
	majorDim, _ := shape.Major(o.orient)
	majorBlk, _ := bs.Major(o.orient)

	m := &BlockMatrix[T]{
		shape:     shape,
		blocksize: bs,
		orient:    o.orient,
		data:      ZeroBlocks[T](0, bs.Rows, bs.Cols),
		indices:   []int32{},
		indptr:    make([]int32, majorDim/majorBlk+1),
	}

	return finalize(m, o, true)
}

// FromTriple adopts raw buffers. The blocksize is read from data's trailing
// dimensions; WithBlocksize, when given, must agree with it.
//
// Implementation:
//   - Stage 1: data must be rank 3 (ErrRank) with a valid, agreeing blocksize.
//   - Stage 2: normalize index arrays to int32 (warning for unsigned types);
//     only []int32 inputs can be aliased.
//   - Stage 3: copy or alias the data buffer per WithCopy.
//   - Stage 4: finalize (shape override or inference, Check).
//
// Complexity: O(nnz) with copy, O(1)+Check otherwise.
func FromTriple[T numeric.Scalar, I numeric.Index](t Triple[T, I], opts ...Option) (*BlockMatrix[T], error) {
	return fromTriple(t, gatherOptions(opts...))
}

func fromTriple[T numeric.Scalar, I numeric.Index](t Triple[T, I], o Options) (*BlockMatrix[T], error) {
	if t.Data.Rank() != 3 {
		return nil, bsrErrorf("FromTriple", ErrRank, "data has rank %d", t.Data.Rank())
	}
	bs := t.Data.BlockDims()
	if !bs.Valid() {
		return nil, bsrErrorf("FromTriple", ErrBlocksize, "data blocks are %v", bs)
	}
	if o.hasBlocksize && o.blocksize != bs {
		return nil, bsrErrorf("FromTriple", ErrBlocksize, "requested %v, data blocks are %v", o.blocksize, bs)
	}
	indices, err := normalizeIndex(t.Indices, "indices", o)
	if err != nil {
		return nil, err
	}
	indptr, err := normalizeIndex(t.Indptr, "indptr", o)
	if err != nil {
		return nil, err
	}
	data := t.Data
	if o.copy {
		data = data.clone()
	}

	m := &BlockMatrix[T]{
		blocksize: bs,
		orient:    o.orient,
		data:      data,
		indices:   indices,
		indptr:    indptr,
		aliased:   !o.copy,
	}

	return finalize(m, o, false)
}

// FromSparse adopts another sparse matrix.
//
// Behavior highlights:
//   - A *BlockMatrix with the requested orientation and blocksize is deep
//     copied (WithCopy(true)) or shared (WithCopy(false)).
//   - Anything else goes through coordinate form (FromCOO semantics).
//
// Complexity: O(nnz) copy path; O(nnz log nnz) conversion path.
func FromSparse[T numeric.Scalar](src coo.Source[T], opts ...Option) (*BlockMatrix[T], error) {
	if isNilSource(src) {
		return nil, bsrErrorf("FromSparse", ErrFormat, "nil source %T", src)
	}
	o := gatherOptions(opts...)
	if b, ok := src.(*BlockMatrix[T]); ok && b.orient == o.orient && (!o.hasBlocksize || o.blocksize == b.blocksize) {
		var m *BlockMatrix[T]
		if o.copy {
			m = b.Copy()
		} else {
			shared := *b
			shared.aliased = true
			m = &shared
		}
		return finalize(m, o, true)
	}
	c, err := src.ToCOO()
	if err != nil {
		return nil, bsrErrorf("FromSparse", err, "")
	}

	return fromCOO(c, o)
}

// FromCOO groups coordinate entries into blocks. Blocks come out sorted by
// (major, minor); duplicate coordinates are summed; only blocks touched by at
// least one entry are stored.
//
// Errors: ErrBlocksize, ErrShape (shape not divisible by blocksize).
// Complexity: O(nnz + b log b) for b touched blocks.
func FromCOO[T numeric.Scalar](c *coo.Matrix[T], opts ...Option) (*BlockMatrix[T], error) {
	return fromCOO(c, gatherOptions(opts...))
}

// isNilSource reports a nil interface or an interface holding a nil pointer.
func isNilSource(src any) bool {
	if src == nil {
		return true
	}
	v := reflect.ValueOf(src)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// blockKey addresses a block by (major, minor) block coordinates.
type blockKey struct {
	major, minor int
}

func fromCOO[T numeric.Scalar](c *coo.Matrix[T], o Options) (*BlockMatrix[T], error) {
	if c == nil {
		return nil, bsrErrorf("FromCOO", ErrFormat, "nil coordinate matrix")
	}
	bs, err := resolveBlocksize(o, layout.Dims{Rows: DefaultBlockRows, Cols: DefaultBlockCols})
	if err != nil {
		return nil, err
	}
	shape := c.Shape()
	if err := checkShape(shape, bs, o.orient); err != nil {
		return nil, err
	}
	R, C := bs.Rows, bs.Cols
	majorDim, _ := shape.Major(o.orient)
	majorBlk, _ := bs.Major(o.orient)
	row, col, val := c.Row(), c.Col(), c.Data()
	keyOf := func(p int) blockKey {
		mj, mn := o.orient.Unswap(row[p]/R, col[p]/C)
		return blockKey{major: mj, minor: mn}
	}

	// Stage 1: distinct touched blocks, then canonical order.
	slot := make(map[blockKey]int)
	keys := make([]blockKey, 0)
	for p := range val {
		k := keyOf(p)
		if _, ok := slot[k]; !ok {
			slot[k] = len(keys)
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b blockKey) int {
		if a.major != b.major {
			return cmp.Compare(a.major, b.major)
		}
		return cmp.Compare(a.minor, b.minor)
	})

	// Stage 2: structure arrays.
	indices := make([]int32, len(keys))
	indptr := make([]int32, majorDim/majorBlk+1)
	for i, k := range keys {
		slot[k] = i
		indices[i] = int32(k.minor)
		indptr[k.major+1]++
	}
	for k := 1; k < len(indptr); k++ {
		indptr[k] += indptr[k-1]
	}

	// Stage 3: scatter values into their block cell (row-major inside a block).
	data := ZeroBlocks[T](len(keys), R, C)
	for p, v := range val {
		b := slot[keyOf(p)]
		data.data[(b*R+row[p]%R)*C+col[p]%C] += v
	}

	m := &BlockMatrix[T]{
		shape:     shape,
		blocksize: bs,
		orient:    o.orient,
		data:      data,
		indices:   indices,
		indptr:    indptr,
	}

	return finalize(m, o, true)
}

// FromDense converts a dense array through coordinate form, then adopts the
// result as a sparse source. All-zero blocks are not stored.
// Complexity: O(M*N + nnz log nnz).
func FromDense[T numeric.Scalar](d *dense.Dense[T], opts ...Option) (*BlockMatrix[T], error) {
	if d == nil {
		return nil, bsrErrorf("FromDense", ErrFormat, "nil dense array")
	}

	return FromSparse[T](coo.FromDense(d), opts...)
}

// finalize applies the shape policy and validates the matrix.
//
// Implementation:
//   - Stage 1: explicit WithShape wins; otherwise infer when unknown.
//   - Stage 2: shape must be a positive multiple of the blocksize.
//   - Stage 3: Check(fullCheck), which also prunes trailing capacity.
func finalize[T numeric.Scalar](m *BlockMatrix[T], o Options, shapeKnown bool) (*BlockMatrix[T], error) {
	switch {
	case o.hasShape:
		m.shape = o.shape
	case !shapeKnown:
		shape, err := inferShape(m.indices, m.indptr, m.blocksize, m.orient)
		if err != nil {
			return nil, err
		}
		m.shape = shape
	}
	if err := checkShape(m.shape, m.blocksize, m.orient); err != nil {
		return nil, err
	}
	if err := m.Check(o.fullCheck); err != nil {
		return nil, err
	}
	o.logger.Debug("bsr: matrix constructed",
		"shape", m.shape.String(), "blocksize", m.blocksize.String(),
		"orientation", m.orient.String(), "blocks", m.NNZBlocks(), "aliased", m.aliased)

	return m, nil
}
