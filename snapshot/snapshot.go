// SPDX-License-Identifier: MIT

// Package snapshot persists a bsr.BlockMatrix as a compact binary stream.
//
// Layout (all integers little-endian):
//
//	header  60 bytes, see header
//	payload indptr (int32 × majorBlocks+1) | indices (int32 × nblocks) |
//	        values (kind width × nblocks×R×C), optionally compressed
//
// The header carries an xxh3 checksum of the uncompressed payload. Decode
// rebuilds the matrix through bsr.FromTriple with a full check, so a payload
// that passes the checksum but breaks a storage invariant still fails with
// the corresponding bsr sentinel.
package snapshot

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"math/bits"
	"slices"

	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"

	"github.com/katalvlaran/blocksparse/bsr"
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/numeric"
)

// Version is the current format version.
const Version = 1

var magic = [4]byte{'B', 'S', 'R', '1'}

// header is the fixed-size prefix of every snapshot.
type header struct {
	Magic       [4]byte
	Version     uint16
	Kind        numeric.Kind
	Orientation layout.Orientation
	Compression Compression
	_           [3]byte
	Rows, Cols  uint64
	BlockRows   uint32
	BlockCols   uint32
	Blocks      uint64
	RawSize     uint64
	Checksum    uint64
}

// Option configures Encode.
type Option func(*options)

type options struct {
	compression Compression
}

// DefaultCompression is used when WithCompression is not given.
const DefaultCompression = Zstd

// WithCompression selects the payload codec. Panics on unknown codecs.
func WithCompression(c Compression) Option {
	if !c.Valid() {
		panic("snapshot: WithCompression: unknown compression")
	}

	return func(o *options) { o.compression = c }
}

// Encode writes m to w.
//
// Implementation:
//   - Stage 1: serialize indptr, indices and values into one raw payload.
//   - Stage 2: checksum the raw payload, then compress it.
//   - Stage 3: write header and payload.
//
// Complexity: O(nnz) plus codec cost.
func Encode[T numeric.Scalar](w io.Writer, m *bsr.BlockMatrix[T], opts ...Option) error {
	o := options{compression: DefaultCompression}
	for _, set := range opts {
		set(&o)
	}
	raw := appendPayload(nil, m)
	payload, err := compress(o.compression, raw)
	if err != nil {
		return fmt.Errorf("snapshot.Encode: %w", err)
	}
	bs := m.Blocksize()
	h := header{
		Magic:       magic,
		Version:     Version,
		Kind:        numeric.KindOf[T](),
		Orientation: m.Orientation(),
		Compression: o.compression,
		Rows:        uint64(m.Shape().Rows),
		Cols:        uint64(m.Shape().Cols),
		BlockRows:   uint32(bs.Rows),
		BlockCols:   uint32(bs.Cols),
		Blocks:      uint64(m.NNZBlocks()),
		RawSize:     uint64(len(raw)),
		Checksum:    xxh3.Hash(raw),
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("snapshot.Encode: header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("snapshot.Encode: payload: %w", err)
	}

	return nil
}

// Decode reads a snapshot written by Encode for the same element type T.
// opts are passed to bsr.FromTriple ahead of the options Decode itself sets
// (shape, orientation, no copy, full check), so only WithLogger is useful.
//
// Errors: ErrMagic, ErrVersion, ErrKind, ErrCompression, ErrCorrupt,
// ErrChecksum, io errors, and bsr sentinels for invalid structure.
func Decode[T numeric.Scalar](r io.Reader, opts ...bsr.Option) (*bsr.BlockMatrix[T], error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("snapshot.Decode: header: %w", err)
	}
	if err := h.validate(numeric.KindOf[T]()); err != nil {
		return nil, err
	}
	want, err := h.payloadSize()
	if err != nil {
		return nil, err
	}
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot.Decode: payload: %w", err)
	}
	raw, err := decompress(h.Compression, payload, want)
	if err != nil {
		return nil, fmt.Errorf("snapshot.Decode: %w", err)
	}
	if uint64(len(raw)) != want {
		return nil, fmt.Errorf("snapshot.Decode: payload is %d bytes, header implies %d: %w", len(raw), want, ErrCorrupt)
	}
	if sum := xxh3.Hash(raw); sum != h.Checksum {
		return nil, fmt.Errorf("snapshot.Decode: got %016x, want %016x: %w", sum, h.Checksum, ErrChecksum)
	}

	majorBlocks, nblocks, R, C := h.counts()
	indptr, raw := readInt32s(raw, majorBlocks+1)
	indices, raw := readInt32s(raw, nblocks)
	values := readValues[T](raw, nblocks*R*C)

	m, err := bsr.FromTriple(bsr.Triple[T, int32]{
		Data:    bsr.NewBlocks(values, nblocks, R, C),
		Indices: indices,
		Indptr:  indptr,
	}, append(slices.Clone(opts),
		bsr.WithShape(int(h.Rows), int(h.Cols)),
		bsr.WithOrientation(h.Orientation),
		bsr.WithCopy(false),
		bsr.WithFullCheck(true),
	)...)
	if err != nil {
		return nil, fmt.Errorf("snapshot.Decode: %w", err)
	}

	return m, nil
}

// Digest returns the hex blake3 digest of m's canonical form: element kind,
// orientation, shape, blocksize and the payload of the index-sorted matrix.
// Two matrices that differ only in slice order share a digest.
func Digest[T numeric.Scalar](m *bsr.BlockMatrix[T]) (string, error) {
	sorted, err := m.SortedIndices()
	if err != nil {
		return "", fmt.Errorf("snapshot.Digest: %w", err)
	}
	bs := sorted.Blocksize()
	buf := []byte{byte(numeric.KindOf[T]()), byte(sorted.Orientation())}
	for _, v := range []int{sorted.Shape().Rows, sorted.Shape().Cols, bs.Rows, bs.Cols} {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	sum := blake3.Sum256(appendPayload(buf, sorted))

	return hex.EncodeToString(sum[:]), nil
}

// validate checks header fields that do not depend on sizes.
func (h *header) validate(kind numeric.Kind) error {
	switch {
	case h.Magic != magic:
		return fmt.Errorf("snapshot.Decode: magic %q: %w", h.Magic[:], ErrMagic)
	case h.Version != Version:
		return fmt.Errorf("snapshot.Decode: version %d: %w", h.Version, ErrVersion)
	case h.Kind != kind:
		return fmt.Errorf("snapshot.Decode: stored %v, requested %v: %w", h.Kind, kind, ErrKind)
	case !h.Compression.Valid():
		return fmt.Errorf("snapshot.Decode: %v: %w", h.Compression, ErrCompression)
	case !h.Orientation.Valid():
		return fmt.Errorf("snapshot.Decode: %v: %w", h.Orientation, ErrCorrupt)
	case h.Rows == 0 || h.Cols == 0 || h.BlockRows == 0 || h.BlockCols == 0:
		return fmt.Errorf("snapshot.Decode: zero dimension: %w", ErrCorrupt)
	case h.Rows > math.MaxInt32 || h.Cols > math.MaxInt32 || h.Blocks > math.MaxInt32:
		return fmt.Errorf("snapshot.Decode: dimensions exceed int32: %w", ErrCorrupt)
	case h.Rows%uint64(h.BlockRows) != 0 || h.Cols%uint64(h.BlockCols) != 0:
		return fmt.Errorf("snapshot.Decode: shape %dx%d, blocks %dx%d: %w: %w",
			h.Rows, h.Cols, h.BlockRows, h.BlockCols, ErrCorrupt, bsr.ErrShape)
	}

	return nil
}

// counts returns majorBlocks, nblocks, R and C as ints.
func (h *header) counts() (majorBlocks, nblocks, R, C int) {
	R, C = int(h.BlockRows), int(h.BlockCols)
	shape := layout.Dims{Rows: int(h.Rows), Cols: int(h.Cols)}
	majorDim, _ := shape.Major(h.Orientation)
	majorBlk, _ := layout.Dims{Rows: R, Cols: C}.Major(h.Orientation)

	return majorDim / majorBlk, int(h.Blocks), R, C
}

// payloadSize returns the raw payload length implied by the header and checks
// it against RawSize.
func (h *header) payloadSize() (uint64, error) {
	majorBlocks, nblocks, R, C := h.counts()
	values, hi1 := bits.Mul64(uint64(nblocks), uint64(R)*uint64(C))
	values, hi2 := bits.Mul64(values, uint64(h.Kind.Size()))
	if hi1 != 0 || hi2 != 0 || values > math.MaxInt32*8 {
		return 0, fmt.Errorf("snapshot.Decode: value section overflows: %w", ErrCorrupt)
	}
	size := 4*uint64(majorBlocks+1) + 4*uint64(nblocks) + values
	if size != h.RawSize {
		return 0, fmt.Errorf("snapshot.Decode: header raw size %d, implied %d: %w", h.RawSize, size, ErrCorrupt)
	}

	return size, nil
}

// appendPayload serializes indptr, the stored indices and the stored values.
func appendPayload[T numeric.Scalar](dst []byte, m *bsr.BlockMatrix[T]) []byte {
	n := m.NNZBlocks()
	for _, v := range m.Indptr() {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(v))
	}
	for _, v := range m.Indices()[:n] {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(v))
	}

	return appendValues(dst, m.Data().Data()[:n*m.Blocksize().Area()])
}

// appendValues encodes vals at the width of T's kind.
func appendValues[T numeric.Scalar](dst []byte, vals []T) []byte {
	le := binary.LittleEndian
	kind := numeric.KindOf[T]()
	for _, v := range vals {
		switch kind {
		case numeric.KindInt8:
			dst = append(dst, byte(int8(v)))
		case numeric.KindInt16:
			dst = le.AppendUint16(dst, uint16(int16(v)))
		case numeric.KindInt32:
			dst = le.AppendUint32(dst, uint32(int32(v)))
		case numeric.KindInt64, numeric.KindInt:
			dst = le.AppendUint64(dst, uint64(int64(v)))
		case numeric.KindFloat32:
			dst = le.AppendUint32(dst, math.Float32bits(float32(v)))
		case numeric.KindFloat64:
			dst = le.AppendUint64(dst, math.Float64bits(float64(v)))
		}
	}

	return dst
}

// readInt32s decodes n little-endian int32 values and returns the rest.
func readInt32s(b []byte, n int) ([]int32, []byte) {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[4*i:]))
	}

	return out, b[4*n:]
}

// readValues decodes n values of T's kind.
func readValues[T numeric.Scalar](b []byte, n int) []T {
	out := make([]T, n)
	kind := numeric.KindOf[T]()
	w := kind.Size()
	for i := range out {
		p := b[i*w:]
		switch kind {
		case numeric.KindInt8:
			out[i] = T(int8(p[0]))
		case numeric.KindInt16:
			out[i] = T(int16(binary.LittleEndian.Uint16(p)))
		case numeric.KindInt32:
			out[i] = T(int32(binary.LittleEndian.Uint32(p)))
		case numeric.KindInt64, numeric.KindInt:
			out[i] = T(int64(binary.LittleEndian.Uint64(p)))
		case numeric.KindFloat32:
			out[i] = T(math.Float32frombits(binary.LittleEndian.Uint32(p)))
		case numeric.KindFloat64:
			out[i] = T(math.Float64frombits(binary.LittleEndian.Uint64(p)))
		}
	}

	return out
}
