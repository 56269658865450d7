// SPDX-License-Identifier: MIT

// Package bsr: functional configuration for constructors. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors (panic only on programmer error),
//   - gatherOptions helper (internal) that resolves defaults + setters.
//
// Design goals:
//   - Deterministic behavior: no global state beyond slog.Default().
//   - No dead switches: each flag impacts construction and is covered by tests.
//   - Run-time data problems (bad shape/blocksize values) are NOT panics: they
//     surface as ErrShape/ErrBlocksize from the constructor that consumes them.
package bsr

import (
	"log/slog"

	"github.com/katalvlaran/blocksparse/layout"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultBlockRows and DefaultBlockCols give scalar (1×1) blocks.
	DefaultBlockRows = 1
	DefaultBlockCols = 1

	// DefaultCopy deep-copies caller buffers so a matrix owns its storage.
	DefaultCopy = true

	// DefaultFullCheck runs the O(nnz) deep checks at construction.
	DefaultFullCheck = true

	// DefaultOrientation builds block sparse row (BSR) matrices.
	DefaultOrientation = layout.RowMajor
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicNilLogger          = "bsr: WithLogger: logger must not be nil"
	panicInvalidOrientation = "bsr: WithOrientation: unknown orientation"
)

// Option mutates internal options. Safe to apply repeatedly (last-writer-wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	shape        layout.Dims // explicit shape override (hasShape)
	hasShape     bool
	blocksize    layout.Dims // requested blocksize (hasBlocksize)
	hasBlocksize bool
	copy         bool
	fullCheck    bool
	orient       layout.Orientation
	logger       *slog.Logger
}

// WithShape overrides the inferred shape. The value is validated by the
// constructor (ErrShape), not here.
func WithShape(rows, cols int) Option {
	return func(o *Options) {
		o.shape = layout.Dims{Rows: rows, Cols: cols}
		o.hasShape = true
	}
}

// WithBlocksize requests R×C blocks. Non-positive values make the
// constructor fail with ErrBlocksize. For raw triples the blocksize is read
// from the data buffer and this option must agree with it.
func WithBlocksize(r, c int) Option {
	return func(o *Options) {
		o.blocksize = layout.Dims{Rows: r, Cols: c}
		o.hasBlocksize = true
	}
}

// WithCopy selects deep-copy (true, default) or aliasing (false) of caller
// buffers.
//
// Notes:
//   - With copy=false the matrix and the caller share the same slices; the
//     caller must not mutate them while the matrix is in use, and in-place
//     operations (SortIndices) become visible to the caller. Aliased()
//     reports this state. There is no locking.
//   - Only the data buffer and []int32 index arrays can be shared. Index
//     arrays of any other integer type are converted into new int32 slices,
//     so the caller's copy keeps its original order after SortIndices.
func WithCopy(copy bool) Option {
	return func(o *Options) { o.copy = copy }
}

// WithFullCheck toggles the O(nnz) deep checks run by the constructor.
func WithFullCheck(full bool) Option {
	return func(o *Options) { o.fullCheck = full }
}

// WithOrientation selects BSR (layout.RowMajor) or BSC (layout.ColMajor).
// Panics on values outside the declared set.
func WithOrientation(or layout.Orientation) Option {
	if !or.Valid() {
		panic(panicInvalidOrientation)
	}

	return func(o *Options) { o.orient = or }
}

// WithLogger sets the logger used for non-fatal warnings (index type
// normalization) and debug traces. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.logger = l }
}

// gatherOptions applies user-provided setters on top of the defaults.
//
// Implementation:
//   - Stage 1: start from Default* constants.
//   - Stage 2: apply setters in order (last-writer-wins).
//   - Stage 3: fill the logger from slog.Default() when none was given.
//
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		blocksize: layout.Dims{Rows: DefaultBlockRows, Cols: DefaultBlockCols},
		copy:      DefaultCopy,
		fullCheck: DefaultFullCheck,
		orient:    DefaultOrientation,
	}
	for _, set := range user {
		set(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}
