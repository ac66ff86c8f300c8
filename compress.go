package diffx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the transport compression wrapped around a DiffX
// document at rest. It is not part of the DiffX grammar; Decode strips it
// before parsing and Encode applies it after serializing.
type Compression uint8

const (
	CompNone Compression = iota
	CompGzip
	CompZstd
	CompLZ4
	CompBrotli
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompGzip:
		return "gzip"
	case CompZstd:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBrotli:
		return "brotli"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// Frame magics for the detectable codecs. Brotli has none, which is why it
// can only be selected explicitly.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// detectCompression sniffs the leading magic bytes of data. A plain DiffX
// document starts with '#', which collides with none of the magics.
func detectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, magicZstd):
		return CompZstd
	case bytes.HasPrefix(data, magicLZ4):
		return CompLZ4
	case bytes.HasPrefix(data, magicGzip):
		return CompGzip
	default:
		return CompNone
	}
}

// decompress expands data with the given codec, refusing output beyond
// maxLen bytes to contain decompression bombs.
func decompress(comp Compression, data []byte, maxLen uint64) ([]byte, error) {
	var r io.Reader
	switch comp {
	case CompNone:
		return data, nil
	case CompGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case CompZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case CompLZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	case CompBrotli:
		r = brotli.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrValidation, comp)
	}
	out, err := io.ReadAll(io.LimitReader(r, int64(maxLen)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > maxLen {
		return nil, parseErr(0, ErrLimitExceeded, "%s stream expands beyond %d bytes", comp, maxLen)
	}
	return out, nil
}

// compress wraps data in the given codec.
func compress(comp Compression, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	switch comp {
	case CompNone:
		return data, nil
	case CompGzip:
		w = gzip.NewWriter(&buf)
	case CompZstd:
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		w = zw
	case CompLZ4:
		w = lz4.NewWriter(&buf)
	case CompBrotli:
		w = brotli.NewWriter(&buf)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrValidation, comp)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
