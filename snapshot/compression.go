// SPDX-License-Identifier: MIT

package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	lz4 "github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Compression selects the payload codec. The numeric values are stored in the
// header; do not reorder.
type Compression uint8

const (
	None Compression = iota
	Zstd
	LZ4
	XZ
)

var compressionNames = [...]string{
	None: "none",
	Zstd: "zstd",
	LZ4:  "lz4",
	XZ:   "xz",
}

// Valid reports whether c is a known codec.
func (c Compression) Valid() bool { return int(c) < len(compressionNames) }

// String returns the codec name used on the command line.
func (c Compression) String() string {
	if c.Valid() {
		return compressionNames[c]
	}

	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// ParseCompression maps a codec name (case-insensitive) to its value.
func ParseCompression(s string) (Compression, error) {
	for i, name := range compressionNames {
		if strings.EqualFold(s, name) {
			return Compression(i), nil
		}
	}

	return None, fmt.Errorf("%w: %q", ErrCompression, s)
}

// compress encodes raw with codec c.
func compress(c Compression, raw []byte) ([]byte, error) {
	switch c {
	case None:
		return raw, nil
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(raw); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case XZ:
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(raw); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrCompression, c)
	}
}

// decompress decodes payload with codec c, reading at most limit+1 bytes so an
// oversized stream is detected without being fully inflated.
func decompress(c Compression, payload []byte, limit uint64) ([]byte, error) {
	var r io.Reader
	switch c {
	case None:
		return payload, nil
	case Zstd:
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(limit+1))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
		}
		return out, nil
	case LZ4:
		r = lz4.NewReader(bytes.NewReader(payload))
	case XZ:
		xr, err := xz.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("%w: xz: %v", ErrCorrupt, err)
		}
		r = xr
	default:
		return nil, fmt.Errorf("%w: %v", ErrCompression, c)
	}
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %v", ErrCorrupt, c, err)
	}

	return out, nil
}
