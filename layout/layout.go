// SPDX-License-Identifier: MIT

// Package layout holds the orientation policy shared by compressed formats.
//
// A compressed matrix addresses its storage along a major axis (consecutive
// indptr entries) and a minor axis (the per-entry index array). RowMajor maps
// major→row, minor→column; ColMajor maps major→column, minor→row. Every shape
// and index calculation in the compressed formats goes through Swap/Unswap so
// that one algorithm serves both orientations.
package layout

import "fmt"

// Orientation selects the major axis of a compressed matrix.
type Orientation uint8

const (
	// RowMajor compresses rows: indptr walks rows, indices hold columns.
	RowMajor Orientation = iota
	// ColMajor compresses columns: indptr walks columns, indices hold rows.
	ColMajor
)

// Valid reports whether o is one of the declared orientations.
func (o Orientation) Valid() bool { return o == RowMajor || o == ColMajor }

// Swap maps a (major, minor) pair to (row, col).
// Complexity: O(1).
func (o Orientation) Swap(major, minor int) (row, col int) {
	if o == ColMajor {
		return minor, major
	}

	return major, minor
}

// Unswap maps a (row, col) pair to (major, minor). It is the inverse of Swap.
// Complexity: O(1).
func (o Orientation) Unswap(row, col int) (major, minor int) {
	if o == ColMajor {
		return col, row
	}

	return row, col
}

// AxisNames returns the human names of the major and minor axes.
func (o Orientation) AxisNames() (major, minor string) {
	r, c := o.Swap(0, 1)
	names := [2]string{"row", "column"}

	return names[r], names[c]
}

// String implements fmt.Stringer.
func (o Orientation) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "column-major"
	default:
		return fmt.Sprintf("Orientation(%d)", uint8(o))
	}
}

// Dims is a (rows, cols) pair used for both matrix shapes and block sizes.
type Dims struct {
	Rows, Cols int
}

// Valid reports whether both dimensions are strictly positive.
func (d Dims) Valid() bool { return d.Rows > 0 && d.Cols > 0 }

// Area returns Rows*Cols.
func (d Dims) Area() int { return d.Rows * d.Cols }

// Major returns the dimensions as (major, minor) under o.
func (d Dims) Major(o Orientation) (major, minor int) { return o.Unswap(d.Rows, d.Cols) }

// String renders "RxC".
func (d Dims) String() string { return fmt.Sprintf("%dx%d", d.Rows, d.Cols) }
