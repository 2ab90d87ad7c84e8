/*
Package compress wraps a framed SGF container in a general purpose byte
stream compressor before it is stored.

Two methods are supported: zlib (the default, from the DEFLATE family) and
Zstandard. The reader tells them apart from the leading bytes of the stream
so the method does not need to be recorded anywhere else.
*/
package compress

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Method is a compression algorithm
type Method int

const (
	// Zlib is DEFLATE with a zlib header and checksum
	Zlib Method = iota
	// Zstd is Zstandard
	Zstd
)

// DefaultLevel selects the default level for each method
const DefaultLevel = 0

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func (m Method) String() string {
	switch m {
	case Zlib:
		return "zlib"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod returns the Method named s
func ParseMethod(s string) (Method, error) {
	switch s {
	case "zlib":
		return Zlib, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("compress: unknown method %q", s)
	}
}

// NewWriter returns a writer that compresses to w with method m at the given
// level. For zlib the level is a compress/flate level, for Zstandard it is
// passed to zstd.EncoderLevelFromZstd. DefaultLevel picks the library
// default for either. The writer must be closed to flush the stream.
func NewWriter(w io.Writer, m Method, level int) (io.WriteCloser, error) {
	switch m {
	case Zlib:
		if level == DefaultLevel {
			level = zlib.DefaultCompression
		}
		return zlib.NewWriterLevel(w, level)
	case Zstd:
		opts := []zstd.EOption{
			zstd.WithEncoderConcurrency(1),
			// An empty container still needs the magic for NewReader
			zstd.WithZeroFrames(true),
		}
		if level != DefaultLevel {
			opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		}
		return zstd.NewWriter(w, opts...)
	default:
		return nil, fmt.Errorf("compress: unknown method %d", int(m))
	}
}

type zstdReader struct {
	*zstd.Decoder
}

func (r zstdReader) Close() error {
	r.Decoder.Close()
	return nil
}

// NewReader returns a reader that decompresses r, detecting the method
// from the stream. The reader should be closed when done.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}

	if bytes.Equal(magic, zstdMagic) {
		d, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return zstdReader{d}, nil
	}

	return zlib.NewReader(br)
}

// Compress returns b compressed with method m
func Compress(b []byte, m Method, level int) ([]byte, error) {
	buf := new(bytes.Buffer)

	w, err := NewWriter(buf, m, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(b); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress returns the decompressed contents of b
func Decompress(b []byte) ([]byte, error) {
	r, err := NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
