// SPDX-License-Identifier: MIT

package bsr

// Prune shrinks data and indices to exactly NNZBlocks() entries. Order is
// preserved and indptr is untouched; the underlying arrays are resliced, not
// copied.
//
// Errors:
//   - ErrInvalidIndptrLength: len(indptr) != majorBlocks+1.
//   - ErrInsufficientCapacity: indices or data hold fewer than NNZBlocks()
//     entries, or indptr declares a negative count.
//
// Complexity: O(1).
func (m *BlockMatrix[T]) Prune() error {
	if m.data.Rank() != 3 || !m.blocksize.Valid() || !m.shape.Valid() {
		return bsrErrorf("Prune", ErrRank, "data shape %v", m.data.shape)
	}
	majorBlocks, _ := m.grid()
	if len(m.indptr) != majorBlocks+1 {
		return bsrErrorf("Prune", ErrInvalidIndptrLength, "expected %d, got %d", majorBlocks+1, len(m.indptr))
	}
	nnz := m.NNZBlocks()
	switch {
	case nnz < 0:
		return bsrErrorf("Prune", ErrInsufficientCapacity, "declared block count %d", nnz)
	case len(m.indices) < nnz:
		return bsrErrorf("Prune", ErrInsufficientCapacity, "indices has %d entries, need %d", len(m.indices), nnz)
	case m.data.Len() < nnz || len(m.data.data) < nnz*m.blocksize.Area():
		return bsrErrorf("Prune", ErrInsufficientCapacity, "data has %d blocks, need %d", m.data.Len(), nnz)
	}
	m.indices = m.indices[:nnz]
	m.data = m.data.truncate(nnz)

	return nil
}
