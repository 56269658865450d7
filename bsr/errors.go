// SPDX-License-Identifier: MIT
// Package bsr: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the bsr
// package. Every invariant violation is returned as one of these sentinels,
// wrapped with the detecting method's context; tests MUST check them via
// errors.Is. No function panics on user-triggered error conditions.

package bsr

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "bsr: ..." for easy grepping across logs.
// Call sites wrap with bsrErrorf("<Method>", ...) so the sentinel stays
// reachable through errors.Is.
//
// ERROR PRIORITY (matches the order of Check):
// rank -> blocksize -> indptr size -> indptr start -> length -> indptr overflow
// -> prune capacity -> index range -> indptr monotonicity.

var (
	// ErrShape is returned when a shape is non-positive or not divisible by
	// the blocksize, and (joined with ErrShapeInference) when no shape can be
	// inferred.
	ErrShape = errors.New("bsr: shape must be a positive multiple of blocksize")

	// ErrShapeInference is returned when the shape was not given and cannot be
	// inferred from indptr/indices. errors.Is(err, ErrShape) also holds.
	ErrShapeInference = errors.New("bsr: unable to infer matrix dimensions")

	// ErrBlocksize indicates a non-positive blocksize, or a data buffer whose
	// block dimensions differ from the matrix blocksize.
	ErrBlocksize = errors.New("bsr: invalid blocksize")

	// ErrRank indicates a data buffer that is not three-dimensional
	// (block-count × R × C) or whose length disagrees with its shape.
	ErrRank = errors.New("bsr: data should be rank 3")

	// ErrIndptrSize indicates len(indptr) != majorDim/majorBlock + 1.
	ErrIndptrSize = errors.New("bsr: index pointer has wrong size")

	// ErrIndptrStart indicates indptr[0] != 0.
	ErrIndptrStart = errors.New("bsr: index pointer should start with 0")

	// ErrIndptrOverflow indicates indptr[-1] > len(indices).
	ErrIndptrOverflow = errors.New("bsr: last index pointer value exceeds the size of index and data arrays")

	// ErrIndptrNonMonotonic indicates a decreasing step somewhere in indptr.
	ErrIndptrNonMonotonic = errors.New("bsr: index pointer values must form a non-decreasing sequence")

	// ErrLengthMismatch indicates len(indices) != number of blocks in data.
	ErrLengthMismatch = errors.New("bsr: indices and data should have the same size")

	// ErrIndexRange indicates a minor block index outside [0, minorDim/minorBlock).
	// It is always joined with ErrIndexTooLow or ErrIndexTooHigh.
	ErrIndexRange = errors.New("bsr: index out of range")

	// ErrIndexTooLow is the negative-index variant of ErrIndexRange.
	ErrIndexTooLow = errors.New("bsr: index values must be >= 0")

	// ErrIndexTooHigh is the too-large-index variant of ErrIndexRange.
	ErrIndexTooHigh = errors.New("bsr: index values must be < minor block count")

	// ErrFormat indicates a constructor input of unrecognized form, or dense
	// input that is not a rectangular numeric array.
	ErrFormat = errors.New("bsr: unrecognized constructor input")

	// ErrInvalidIndptrLength is Prune's own guard on len(indptr).
	ErrInvalidIndptrLength = errors.New("bsr: index pointer has invalid length")

	// ErrInsufficientCapacity indicates buffers shorter than the declared
	// nonzero block count (internal-consistency failure).
	ErrInsufficientCapacity = errors.New("bsr: buffer has too few elements")
)

// bsrErrorf wraps err with a uniform "BlockMatrix.<method>" context.
// An optional detail is inserted between the context and the sentinel.
//
// Complexity: O(1).
func bsrErrorf(method string, err error, detail string, args ...any) error {
	if detail == "" {
		return fmt.Errorf("BlockMatrix.%s: %w", method, err)
	}

	return fmt.Errorf("BlockMatrix.%s: %s: %w", method, fmt.Sprintf(detail, args...), err)
}
