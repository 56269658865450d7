// SPDX-License-Identifier: MIT

// Package blocksparse is an in-memory toolkit for block-compressed sparse
// matrices: every stored entry is a dense R×C block addressed by a single
// block index, and whole block rows (or block columns) are compressed with
// an index pointer array.
//
// What is inside?
//
//	bsr/        BlockMatrix: BSR and BSC construction, checking, pruning,
//	            in-place index sorting and conversion to other formats
//	snapshot/   compact binary snapshots (zstd, lz4 or xz payloads,
//	            xxh3 checksums, blake3 content digests)
//	coo/        coordinate triplets, the pivot format for conversions
//	csr/        element compressed rows/columns and the proxy index sorter
//	dense/      row-major dense matrices with gonum interop
//	dia/, dok/  diagonal and dictionary-of-keys views
//	layout/     shapes, orientations and major/minor axis swaps
//	numeric/    element and index type constraints plus safe casts
//	cmd/bsrtool command line front end for CSV and snapshot files
//
// Quick ASCII example (4×4 matrix, 2×2 blocks, BSR):
//
//	┌ 1 0 │ 0 2 ┐      indptr  = [0 2 4]
//	│ 0 0 │ 0 0 │      indices = [0 1 0 1]
//	├─────┼─────┤      data    = 4 blocks of 2×2
//	│ 3 0 │ 0 4 │
//	└ 0 0 │ 0 0 ┘
//
// Block rows are compressed; each stored block lives at data[k] where
// indptr[i] <= k < indptr[i+1] and indices[k] is its block column.
//
//	go get github.com/katalvlaran/blocksparse/bsr
package blocksparse
