// SPDX-License-Identifier: MIT
// Package dense: sentinel error set.
// All functions return these sentinels (optionally wrapped with call-site
// context); tests match them via errors.Is.

package dense

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("dense: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("dense: index out of range")

	// ErrDimensionMismatch indicates a buffer whose length does not match rows*cols.
	ErrDimensionMismatch = errors.New("dense: dimension mismatch")

	// ErrRagged indicates nested rows of unequal length.
	ErrRagged = errors.New("dense: ragged rows")
)
