// SPDX-License-Identifier: MIT

package bsr

// White-box bridge for bsr_test.
//
// Exposes unexported resolvers and a raw constructor that skips validation, so
// tests can build matrices in states the public constructors never produce
// (trailing capacity, broken indptr) and drive Check/Prune directly.

import (
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

var (
	ResolveBlocksize_TestOnly = resolveBlocksize
	CheckShape_TestOnly       = checkShape
	InferShape_TestOnly       = inferShape
	GatherOptions_TestOnly    = gatherOptions
)

const (
	PanicNilLogger_TestOnly          = panicNilLogger
	PanicInvalidOrientation_TestOnly = panicInvalidOrientation
)

// NewRaw_TestOnly assembles a BlockMatrix without any validation.
func NewRaw_TestOnly[T numeric.Scalar](shape, blocksize layout.Dims, o layout.Orientation,
	data Blocks[T], indices, indptr []int32) *BlockMatrix[T] {
	return &BlockMatrix[T]{
		shape:     shape,
		blocksize: blocksize,
		orient:    o,
		data:      data,
		indices:   indices,
		indptr:    indptr,
	}
}

// OptionsSnapshot is a read-only view of resolved Options.
type OptionsSnapshot struct {
	Shape        layout.Dims
	HasShape     bool
	Blocksize    layout.Dims
	HasBlocksize bool
	Copy         bool
	FullCheck    bool
	Orientation  layout.Orientation
	HasLogger    bool
}

// SnapshotOf_TestOnly copies o into an OptionsSnapshot.
func SnapshotOf_TestOnly(o Options) OptionsSnapshot {
	return OptionsSnapshot{
		Shape:        o.shape,
		HasShape:     o.hasShape,
		Blocksize:    o.blocksize,
		HasBlocksize: o.hasBlocksize,
		Copy:         o.copy,
		FullCheck:    o.fullCheck,
		Orientation:  o.orient,
		HasLogger:    o.logger != nil,
	}
}
