// SPDX-License-Identifier: MIT

package bsr_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/blocksparse/bsr"
	"github.com/katalvlaran/blocksparse/coo"
	"github.com/katalvlaran/blocksparse/csr"
	"github.com/katalvlaran/blocksparse/dense"
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

func TestNewEmpty(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		orient    layout.Orientation
		indptrLen int
	}{
		{"row-major", layout.RowMajor, 5},
		{"column-major", layout.ColMajor, 7},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := bsr.NewEmpty[float64](4, 6, bsr.WithOrientation(tc.orient))
			require.NoError(t, err)
			require.Equal(t, 0, m.NNZ())
			require.Equal(t, 0, m.NNZBlocks())
			require.Equal(t, make([]int32, tc.indptrLen), m.Indptr())
			require.Empty(t, m.Indices())
			require.Equal(t, []int{0, 1, 1}, m.Data().Shape())
			require.Equal(t, layout.Dims{Rows: 4, Cols: 6}, m.Shape())
			require.Equal(t, zeros(4, 6), rowsOf(t, m))
		})
	}
}

func TestShapeDivisibility(t *testing.T) {
	t.Parallel()
	_, err := bsr.New[float64](layout.Dims{Rows: 4, Cols: 6}, bsr.WithBlocksize(2, 4))
	require.ErrorIs(t, err, bsr.ErrShape)

	m, err := bsr.New[float64](layout.Dims{Rows: 4, Cols: 6}, bsr.WithBlocksize(2, 3))
	require.NoError(t, err)
	require.Equal(t, layout.Dims{Rows: 2, Cols: 3}, m.Blocksize())
	require.Equal(t, []int32{0, 0, 0}, m.Indptr())

	_, err = bsr.NewEmpty[float64](4, 6, bsr.WithBlocksize(-1, 3))
	require.ErrorIs(t, err, bsr.ErrBlocksize)

	_, err = bsr.NewEmpty[float64](0, 6)
	require.ErrorIs(t, err, bsr.ErrShape)
}

func TestEndToEndDenseRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		rows    [][]float64
		orient  layout.Orientation
		indptr  []int32
		indices []int32
		data    []float64
		nnz     int
	}{
		{
			name: "four blocks row-major", rows: exampleRows, orient: layout.RowMajor,
			indptr: []int32{0, 2, 4}, indices: []int32{0, 1, 0, 1},
			data: []float64{1, 0, 0, 0, 0, 2, 0, 0, 3, 0, 0, 0, 0, 4, 0, 0},
			nnz:  16,
		},
		{
			name: "four blocks column-major", rows: exampleRows, orient: layout.ColMajor,
			indptr: []int32{0, 2, 4}, indices: []int32{0, 1, 0, 1},
			data: []float64{1, 0, 0, 0, 3, 0, 0, 0, 0, 2, 0, 0, 0, 4, 0, 0},
			nnz:  16,
		},
		{
			name: "two blocks row-major", rows: twoBlockRows, orient: layout.RowMajor,
			indptr: []int32{0, 2, 2}, indices: []int32{0, 1},
			data: []float64{1, 0, 0, 0, 0, 2, 0, 0},
			nnz:  8,
		},
		{
			name: "two blocks column-major", rows: twoBlockRows, orient: layout.ColMajor,
			indptr: []int32{0, 1, 2}, indices: []int32{0, 0},
			data: []float64{1, 0, 0, 0, 0, 2, 0, 0},
			nnz:  8,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := bsr.New[float64](tc.rows, bsr.WithBlocksize(2, 2), bsr.WithOrientation(tc.orient))
			require.NoError(t, err)
			require.Equal(t, tc.indptr, m.Indptr())
			require.Equal(t, tc.indices, m.Indices())
			require.Equal(t, tc.data, m.Data().Data())
			require.Equal(t, tc.nnz, m.NNZ())
			require.Equal(t, tc.nnz/4, m.NNZBlocks())
			require.Equal(t, tc.rows, rowsOf(t, m))
			require.True(t, m.HasSortedIndices())
		})
	}
}

func TestDenseRoundTripBlockShapes(t *testing.T) {
	t.Parallel()
	rows := [][]float64{
		{1, 2, 0, 0, 0, 3},
		{0, 4, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0},
		{5, 0, 0, 6, 7, 0},
		{0, 0, 0, 0, 8, 0},
		{9, 0, 0, 0, 0, 10},
	}
	blocksizes := []layout.Dims{
		{Rows: 1, Cols: 1},
		{Rows: 2, Cols: 2},
		{Rows: 2, Cols: 3},
		{Rows: 3, Cols: 2},
		{Rows: 1, Cols: 6},
		{Rows: 6, Cols: 1},
	}
	for _, orient := range []layout.Orientation{layout.RowMajor, layout.ColMajor} {
		for _, bs := range blocksizes {
			bs := bs
			t.Run(orient.String()+"/"+bs.String(), func(t *testing.T) {
				t.Parallel()
				m, err := bsr.New[float64](rows, bsr.WithBlocksize(bs.Rows, bs.Cols), bsr.WithOrientation(orient))
				require.NoError(t, err)
				require.Equal(t, bs, m.Blocksize())
				require.Equal(t, m.NNZBlocks()*bs.Area(), m.NNZ())
				require.True(t, m.HasSortedIndices())
				require.Equal(t, rows, rowsOf(t, m))
			})
		}
	}
}

func TestDenseRectangularBlocksColumnMajor(t *testing.T) {
	t.Parallel()
	rows := [][]float64{
		{1, 2, 0, 0},
		{0, 3, 4, 0},
	}
	m, err := bsr.New[float64](rows, bsr.WithBlocksize(1, 2), bsr.WithOrientation(layout.ColMajor))
	require.NoError(t, err)
	require.Equal(t, []int32{0, 2, 3}, m.Indptr())
	require.Equal(t, []int32{0, 1, 1}, m.Indices())
	require.Equal(t, []float64{1, 2, 0, 3, 4, 0}, m.Data().Data())
	require.Equal(t, 6, m.NNZ())
	require.Equal(t, rows, rowsOf(t, m))
}

func TestFromTriple(t *testing.T) {
	t.Parallel()
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	rowMajor := [][]float64{
		{0, 0, 1, 2},
		{0, 0, 3, 4},
		{5, 6, 0, 0},
		{7, 8, 0, 0},
	}
	colMajor := [][]float64{
		{0, 0, 5, 6},
		{0, 0, 7, 8},
		{1, 2, 0, 0},
		{3, 4, 0, 0},
	}
	tests := []struct {
		name   string
		opts   []bsr.Option
		expect [][]float64
	}{
		{"inferred shape", nil, rowMajor},
		{"explicit shape", []bsr.Option{bsr.WithShape(4, 4)}, rowMajor},
		{"column-major", []bsr.Option{bsr.WithOrientation(layout.ColMajor)}, colMajor},
		{"matching blocksize", []bsr.Option{bsr.WithBlocksize(2, 2)}, rowMajor},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := bsr.FromTriple(bsr.Triple[float64, int64]{
				Data:    bsr.NewBlocks(vals, 2, 2, 2),
				Indices: []int64{1, 0},
				Indptr:  []int64{0, 1, 2},
			}, tc.opts...)
			require.NoError(t, err)
			require.Equal(t, layout.Dims{Rows: 2, Cols: 2}, m.Blocksize())
			require.Equal(t, tc.expect, rowsOf(t, m))
		})
	}
}

func TestFromTripleErrors(t *testing.T) {
	t.Parallel()
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	_, err := bsr.FromTriple(bsr.Triple[float64, int32]{
		Data: bsr.NewBlocks(vals, 8), Indices: []int32{0}, Indptr: []int32{0, 1},
	})
	require.ErrorIs(t, err, bsr.ErrRank)

	_, err = bsr.FromTriple(bsr.Triple[float64, int32]{
		Data: bsr.NewBlocks(vals, 2, 2, 2), Indices: []int32{0, 1}, Indptr: []int32{0, 1, 2},
	}, bsr.WithBlocksize(1, 1))
	require.ErrorIs(t, err, bsr.ErrBlocksize)

	_, err = bsr.FromTriple(bsr.Triple[float64, int64]{
		Data: bsr.NewBlocks(vals, 2, 2, 2), Indices: []int64{0, 1 << 40}, Indptr: []int64{0, 1, 2},
	})
	require.ErrorIs(t, err, numeric.ErrCast)

	_, err = bsr.FromTriple(bsr.Triple[float64, int32]{
		Data: bsr.ZeroBlocks[float64](0, 2, 2), Indices: []int32{}, Indptr: []int32{0, 0},
	})
	require.ErrorIs(t, err, bsr.ErrShapeInference)
	require.ErrorIs(t, err, bsr.ErrShape)

	// An explicit shape is validated against indptr after the override.
	_, err = bsr.FromTriple(bsr.Triple[float64, int32]{
		Data: bsr.NewBlocks(vals, 2, 2, 2), Indices: []int32{0, 1}, Indptr: []int32{0, 1, 2},
	}, bsr.WithShape(6, 4))
	require.ErrorIs(t, err, bsr.ErrIndptrSize)
}

func TestFromTripleEmptyWithShape(t *testing.T) {
	t.Parallel()
	m, err := bsr.FromTriple(bsr.Triple[float64, int32]{
		Data: bsr.ZeroBlocks[float64](0, 2, 2), Indices: []int32{}, Indptr: []int32{0, 0},
	}, bsr.WithShape(2, 2))
	require.NoError(t, err)
	require.Equal(t, zeros(2, 2), rowsOf(t, m))
}

func TestFromTripleUnsignedIndexWarns(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	m, err := bsr.FromTriple(bsr.Triple[float64, uint16]{
		Data:    bsr.NewBlocks([]float64{1, 2}, 2, 1, 1),
		Indices: []uint16{1, 0},
		Indptr:  []uint16{0, 1, 2},
	}, bsr.WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, []int32{1, 0}, m.Indices())
	require.Contains(t, buf.String(), "unsigned index array")
	require.Contains(t, buf.String(), "type=uint16")
	require.Contains(t, buf.String(), "level=WARN")
}

func TestFromTripleCopySemantics(t *testing.T) {
	t.Parallel()
	build := func(opts ...bsr.Option) ([]float64, []int32, *bsr.BlockMatrix[float64]) {
		vals := []float64{1, 2, 3, 4}
		indices := []int32{0, 1}
		m, err := bsr.FromTriple(bsr.Triple[float64, int32]{
			Data: bsr.NewBlocks(vals, 2, 1, 2), Indices: indices, Indptr: []int32{0, 1, 2},
		}, opts...)
		require.NoError(t, err)
		return vals, indices, m
	}

	vals, indices, owned := build()
	require.False(t, owned.Aliased())
	vals[0], indices[0] = 42, 1
	require.Equal(t, float64(1), owned.Data().Data()[0])
	require.Equal(t, int32(0), owned.Indices()[0])

	vals, indices, shared := build(bsr.WithCopy(false))
	require.True(t, shared.Aliased())
	vals[0] = 42
	require.Equal(t, float64(42), shared.Data().Data()[0])
	require.Same(t, &indices[0], &shared.Indices()[0])
}

func TestNewDispatch(t *testing.T) {
	t.Parallel()
	c, err := coo.New(3, 3, []int{0, 2}, []int{1, 0}, []float64{5, 7})
	require.NoError(t, err)
	d, err := dense.FromRows(exampleRows)
	require.NoError(t, err)

	tests := []struct {
		name   string
		src    any
		opts   []bsr.Option
		expect [][]float64
	}{
		{"shape", layout.Dims{Rows: 2, Cols: 3}, nil, zeros(2, 3)},
		{"nested slice", exampleRows, []bsr.Option{bsr.WithBlocksize(2, 2)}, exampleRows},
		{"dense", d, []bsr.Option{bsr.WithBlocksize(2, 1)}, exampleRows},
		{"coordinate", c, nil, [][]float64{{0, 5, 0}, {0, 0, 0}, {7, 0, 0}}},
		{"gonum", mat.NewDense(2, 2, []float64{1, 0, 0, 2}), nil, [][]float64{{1, 0}, {0, 2}}},
		{
			"triple",
			bsr.Triple[float64, int]{Data: bsr.NewBlocks([]float64{3}, 1, 1, 1), Indices: []int{1}, Indptr: []int{0, 1}},
			nil, [][]float64{{0, 3}},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := bsr.New[float64](tc.src, tc.opts...)
			require.NoError(t, err)
			require.Equal(t, tc.expect, rowsOf(t, m))
		})
	}
}

func TestNewDispatchErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		src   any
		extra error
	}{
		{"string", "hello", nil},
		{"nil", nil, nil},
		{"typed nil block matrix", (*bsr.BlockMatrix[float64])(nil), nil},
		{"typed nil coo", (*coo.Matrix[float64])(nil), nil},
		{"typed nil csr", (*csr.Matrix[float64])(nil), nil},
		{"typed nil dense", (*dense.Dense[float64])(nil), nil},
		{"typed nil gonum", (*mat.Dense)(nil), nil},
		{"ragged", [][]float64{{1, 2}, {3}}, dense.ErrRagged},
		{"empty rows", [][]float64{}, dense.ErrInvalidDimensions},
		{"wrong element type", [][]int32{{1}}, nil},
		{
			"wrong triple element type",
			bsr.Triple[float32, int32]{Data: bsr.NewBlocks([]float32{1}, 1, 1, 1), Indices: []int32{0}, Indptr: []int32{0, 1}},
			nil,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := bsr.New[float64](tc.src)
			require.ErrorIs(t, err, bsr.ErrFormat)
			if tc.extra != nil {
				require.ErrorIs(t, err, tc.extra)
			}
		})
	}
}

func TestNewGonumCast(t *testing.T) {
	t.Parallel()
	m, err := bsr.New[int32](mat.NewDense(2, 2, []float64{1, 0, 0, 2}))
	require.NoError(t, err)
	require.Equal(t, [][]int32{{1, 0}, {0, 2}}, rowsOf(t, m))

	_, err = bsr.New[int32](mat.NewDense(1, 1, []float64{0.5}))
	require.ErrorIs(t, err, bsr.ErrFormat)
	require.ErrorIs(t, err, numeric.ErrCast)
}

func TestFromSparse(t *testing.T) {
	t.Parallel()

	t.Run("deep copy", func(t *testing.T) {
		t.Parallel()
		m := mustExample(t)
		cp, err := bsr.FromSparse[float64](m)
		require.NoError(t, err)
		require.False(t, cp.Aliased())
		cp.Data().Data()[0] = 99
		require.Equal(t, float64(1), m.Data().Data()[0])
	})

	t.Run("shared", func(t *testing.T) {
		t.Parallel()
		m := mustExample(t)
		sh, err := bsr.FromSparse[float64](m, bsr.WithCopy(false))
		require.NoError(t, err)
		require.True(t, sh.Aliased())
		require.Same(t, &m.Indices()[0], &sh.Indices()[0])
		require.Same(t, &m.Data().Data()[0], &sh.Data().Data()[0])
	})

	t.Run("reorient", func(t *testing.T) {
		t.Parallel()
		m := mustExample(t)
		bsc, err := bsr.FromSparse[float64](m, bsr.WithOrientation(layout.ColMajor), bsr.WithBlocksize(2, 2))
		require.NoError(t, err)
		require.Equal(t, layout.ColMajor, bsc.Orientation())
		require.Equal(t, exampleRows, rowsOf(t, bsc))
	})

	t.Run("reblock", func(t *testing.T) {
		t.Parallel()
		m := mustExample(t)
		scalar, err := bsr.FromSparse[float64](m, bsr.WithBlocksize(1, 4))
		require.NoError(t, err)
		require.Equal(t, layout.Dims{Rows: 1, Cols: 4}, scalar.Blocksize())
		require.Equal(t, exampleRows, rowsOf(t, scalar))
	})

	t.Run("compressed source", func(t *testing.T) {
		t.Parallel()
		d, err := dense.FromRows(exampleRows)
		require.NoError(t, err)
		src, err := csr.FromCOO(coo.FromDense(d), layout.RowMajor)
		require.NoError(t, err)
		m, err := bsr.New[float64](src, bsr.WithBlocksize(2, 2))
		require.NoError(t, err)
		require.Equal(t, 4, m.NNZBlocks())
		require.Equal(t, exampleRows, rowsOf(t, m))
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		_, err := bsr.FromSparse[float64](nil)
		require.ErrorIs(t, err, bsr.ErrFormat)
	})

	t.Run("typed nil", func(t *testing.T) {
		t.Parallel()
		for _, src := range []coo.Source[float64]{
			(*bsr.BlockMatrix[float64])(nil),
			(*coo.Matrix[float64])(nil),
			(*csr.Matrix[float64])(nil),
		} {
			require.NotPanics(t, func() {
				_, err := bsr.FromSparse(src)
				require.ErrorIs(t, err, bsr.ErrFormat, "%T", src)
			})
		}
		_, err := bsr.FromCOO[float64](nil)
		require.ErrorIs(t, err, bsr.ErrFormat)
	})
}

func TestFromCOOSumsDuplicates(t *testing.T) {
	t.Parallel()
	c, err := coo.New(2, 2, []int{0, 0, 1}, []int{0, 0, 1}, []float64{1, 2, 3})
	require.NoError(t, err)

	m, err := bsr.FromCOO(c, bsr.WithBlocksize(2, 2))
	require.NoError(t, err)
	require.Equal(t, 1, m.NNZBlocks())
	require.Equal(t, []float64{3, 0, 0, 3}, m.Data().Data())

	_, err = bsr.FromCOO(c, bsr.WithBlocksize(3, 1))
	require.ErrorIs(t, err, bsr.ErrShape)
}

func TestFromDenseNil(t *testing.T) {
	t.Parallel()
	_, err := bsr.FromDense[float64](nil)
	require.ErrorIs(t, err, bsr.ErrFormat)
}
