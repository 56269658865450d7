// SPDX-License-Identifier: MIT
// Package csr: sentinel error set.

package csr

import "errors"

var (
	// ErrInvalidDimensions indicates a non-positive shape or unknown orientation.
	ErrInvalidDimensions = errors.New("csr: invalid shape or orientation")

	// ErrIndptr indicates an index pointer of wrong length, non-zero start,
	// decreasing values or an end beyond the stored entries.
	ErrIndptr = errors.New("csr: malformed index pointer")

	// ErrLengthMismatch indicates indices and data of different lengths.
	ErrLengthMismatch = errors.New("csr: indices and data lengths differ")

	// ErrOutOfRange indicates a minor index outside [0, minorDim).
	ErrOutOfRange = errors.New("csr: index out of range")
)
