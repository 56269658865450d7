// SPDX-License-Identifier: MIT

// Package bsr implements block compressed sparse matrices: BSR (block sparse
// row) and BSC (block sparse column) share one type, BlockMatrix, and differ
// only in their layout.Orientation.
//
// The package provides:
//
//   - A construction dispatcher (New, NewEmpty, FromTriple, FromSparse,
//     FromCOO, FromDense) that always ends in validation.
//   - Check, the invariant validator: cheap structural checks, a Prune of
//     trailing capacity, and optional O(nnz) deep checks.
//   - SortIndices, which restores ascending minor order by sorting a scalar
//     proxy matrix (package csr) and permuting blocks accordingly.
//   - A conversion bridge through coordinate form to dense, CSR, CSC, DIA,
//     DOK and gonum matrices.
//
// Storage for an M×N matrix with R×C blocks in row-major orientation:
//
//	indptr  len M/R+1     block row k owns blocks indptr[k]..indptr[k+1]-1
//	indices len nblocks   block column of each stored block
//	data    nblocks×R×C   block values, row-major inside each block
//
// In column-major orientation rows and columns swap roles for indptr and
// indices; the layout inside a block does not change.
//
// Errors are package sentinels matched with errors.Is. No function panics on
// malformed input; option constructors panic only on programmer error.
//
// A BlockMatrix is not safe for concurrent mutation. See WithCopy for the
// aliasing rules.
package bsr
