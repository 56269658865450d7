// SPDX-License-Identifier: MIT

package bsr

import (
	"errors"

	"github.com/katalvlaran/blocksparse/layout"
)

// resolveBlocksize returns the requested blocksize, or fallback when none was
// requested. Errors: ErrBlocksize for non-positive dimensions.
func resolveBlocksize(o Options, fallback layout.Dims) (layout.Dims, error) {
	bs := fallback
	if o.hasBlocksize {
		bs = o.blocksize
	}
	if !bs.Valid() {
		return layout.Dims{}, bsrErrorf("resolve", ErrBlocksize, "blocksize %v", bs)
	}

	return bs, nil
}

// checkShape validates shape.major % blocksize.major == 0 and
// shape.minor % blocksize.minor == 0 under orientation o.
// Errors: ErrShape (also for non-positive shapes).
// Complexity: O(1).
func checkShape(shape, blocksize layout.Dims, o layout.Orientation) error {
	if !shape.Valid() {
		return bsrErrorf("resolve", ErrShape, "shape %v", shape)
	}
	majorDim, minorDim := shape.Major(o)
	majorBlk, minorBlk := blocksize.Major(o)
	if majorDim%majorBlk != 0 || minorDim%minorBlk != 0 {
		return bsrErrorf("resolve", ErrShape, "shape %v is not a multiple of blocksize %v", shape, blocksize)
	}

	return nil
}

// inferShape derives (M, N) from the index arrays: the major extent is the
// number of indptr slices, the minor extent is max(indices)+1, both scaled by
// the blocksize.
//
// Errors: ErrShapeInference joined with ErrShape when indptr has no slices or
// indices is empty (no minor extent to read).
// Complexity: O(len(indices)).
func inferShape(indices, indptr []int32, blocksize layout.Dims, o layout.Orientation) (layout.Dims, error) {
	fail := func(detail string) (layout.Dims, error) {
		return layout.Dims{}, bsrErrorf("inferShape", errors.Join(ErrShape, ErrShapeInference), detail)
	}
	if len(indptr) < 2 {
		return fail("index pointer has no slices")
	}
	if len(indices) == 0 {
		return fail("no indices to infer the minor dimension from")
	}
	hi := indices[0]
	for _, v := range indices[1:] {
		hi = max(hi, v)
	}
	if hi < 0 {
		return fail("all indices are negative")
	}
	majorBlk, minorBlk := blocksize.Major(o)
	rows, cols := o.Swap((len(indptr)-1)*majorBlk, (int(hi)+1)*minorBlk)

	return layout.Dims{Rows: rows, Cols: cols}, nil
}
