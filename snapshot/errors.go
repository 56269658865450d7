// SPDX-License-Identifier: MIT
// Package snapshot: sentinel error set.
// Decoding failures that concern the matrix structure itself (indptr,
// indices, shape) surface as the bsr sentinels, wrapped.

package snapshot

import "errors"

var (
	// ErrMagic indicates a stream that does not start with the snapshot magic.
	ErrMagic = errors.New("snapshot: not a block matrix snapshot")

	// ErrVersion indicates an unsupported format version.
	ErrVersion = errors.New("snapshot: unsupported format version")

	// ErrKind indicates a stored element kind that differs from the requested
	// element type.
	ErrKind = errors.New("snapshot: element kind mismatch")

	// ErrCompression indicates an unknown compression codec.
	ErrCompression = errors.New("snapshot: unknown compression")

	// ErrChecksum indicates a payload whose xxh3 checksum does not match.
	ErrChecksum = errors.New("snapshot: payload checksum mismatch")

	// ErrCorrupt indicates header fields or payload sizes that are
	// inconsistent with each other.
	ErrCorrupt = errors.New("snapshot: corrupt header or payload")
)
