// SPDX-License-Identifier: MIT

package bsr

import (
	"errors"
	"slices"

	"github.com/katalvlaran/blocksparse/numeric"
)

// Check validates the storage invariants and prunes trailing capacity.
// It returns the first violation found.
//
// Structural checks, O(1), in order:
//   - ErrRank: data is not (block-count, R, C) or its length disagrees.
//   - ErrBlocksize: data's block dimensions differ from Blocksize().
//   - ErrIndptrSize: len(indptr) != majorBlocks+1.
//   - ErrIndptrStart: indptr[0] != 0.
//   - ErrLengthMismatch: len(indices) != data block count.
//   - ErrIndptrOverflow: indptr[-1] > len(indices).
//
// Prune then runs unconditionally. When full is true and at least one block is
// stored, the O(nnzBlocks) checks follow: ErrIndexRange (joined with
// ErrIndexTooLow or ErrIndexTooHigh) and ErrIndptrNonMonotonic.
func (m *BlockMatrix[T]) Check(full bool) error {
	if m.data.Rank() != 3 || !m.data.consistent() {
		return bsrErrorf("Check", ErrRank, "data shape %v with %d values", m.data.shape, len(m.data.data))
	}
	if !m.blocksize.Valid() || m.data.BlockDims() != m.blocksize {
		return bsrErrorf("Check", ErrBlocksize, "data blocks are %v, blocksize is %v", m.data.BlockDims(), m.blocksize)
	}
	if !m.shape.Valid() {
		return bsrErrorf("Check", ErrShape, "shape %v", m.shape)
	}
	majorBlocks, minorBlocks := m.grid()
	if len(m.indptr) != majorBlocks+1 {
		return bsrErrorf("Check", ErrIndptrSize, "expected %d, got %d", majorBlocks+1, len(m.indptr))
	}
	if m.indptr[0] != 0 {
		return bsrErrorf("Check", ErrIndptrStart, "indptr[0] = %d", m.indptr[0])
	}
	if len(m.indices) != m.data.Len() {
		return bsrErrorf("Check", ErrLengthMismatch, "%d indices, %d blocks", len(m.indices), m.data.Len())
	}
	last := m.indptr[majorBlocks]
	if int(last) > len(m.indices) {
		return bsrErrorf("Check", ErrIndptrOverflow, "indptr[-1] = %d, %d indices", last, len(m.indices))
	}
	if last < 0 {
		return bsrErrorf("Check", ErrIndptrNonMonotonic, "indptr[-1] = %d", last)
	}

	if err := m.Prune(); err != nil {
		return err
	}

	if !full || m.NNZBlocks() == 0 {
		return nil
	}
	_, minorName := m.orient.AxisNames()
	for p, v := range m.indices {
		switch {
		case v < 0:
			return bsrErrorf("Check", errors.Join(ErrIndexRange, ErrIndexTooLow),
				"%s block index %d at position %d", minorName, v, p)
		case int(v) >= minorBlocks:
			return bsrErrorf("Check", errors.Join(ErrIndexRange, ErrIndexTooHigh),
				"%s block index %d at position %d, limit %d", minorName, v, p, minorBlocks)
		}
	}
	for k := 1; k < len(m.indptr); k++ {
		if m.indptr[k] < m.indptr[k-1] {
			return bsrErrorf("Check", ErrIndptrNonMonotonic, "indptr[%d] = %d < indptr[%d] = %d",
				k, m.indptr[k], k-1, m.indptr[k-1])
		}
	}

	return nil
}

// normalizeIndex converts an index array to int32. An []int32 input is kept
// as is (cloned when o.copy); any other integer type is always converted into
// a fresh slice, so WithCopy(false) never shares it. Unsigned inputs are
// accepted with a warning.
// Errors: numeric.ErrCast when a value does not fit int32.
func normalizeIndex[I numeric.Index](src []I, name string, o Options) ([]int32, error) {
	if s, ok := any(src).([]int32); ok {
		if o.copy {
			return slices.Clone(s), nil
		}
		return s, nil
	}
	if !numeric.IsSigned[I]() {
		o.logger.Warn("bsr: unsigned index array converted to int32",
			"array", name, "type", numeric.TypeName[I](), "len", len(src))
	}
	out, err := numeric.ToInt32(src)
	if err != nil {
		return nil, bsrErrorf("FromTriple", err, "%s", name)
	}

	return out, nil
}
