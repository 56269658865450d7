// SPDX-License-Identifier: MIT
// Package coo: sentinel error set.

package coo

import "errors"

var (
	// ErrInvalidDimensions indicates a non-positive shape.
	ErrInvalidDimensions = errors.New("coo: dimensions must be > 0")

	// ErrLengthMismatch indicates row/col/data arrays of different lengths.
	ErrLengthMismatch = errors.New("coo: row, col and data lengths differ")

	// ErrOutOfRange indicates a coordinate outside the matrix shape.
	ErrOutOfRange = errors.New("coo: coordinate out of range")
)
