/*
Package image implements an SGF image decoder and encoder.

An SGF image is a palette of at most 255 distinct colors followed by the
palette index of every pixel, run-length encoded in one of two scan orders.
The framed container is laid out as follows, with multi-byte integers stored
little-endian:

	offset  size  field
	0       1     flags, bit 0 is the scan order, other bits are zero
	1       2     width
	3       2     height
	5       1     number of palette entries N
	6       4*N   palette entries, one byte each of R, G, B and A
	6+4*N   ...   (length, index) pairs until width*height pixels are covered

The container is then compressed with zlib or Zstandard before it is written
out, see package compress.
*/
package image

import (
	"errors"
	"fmt"

	"github.com/bodgit/sgf/compress"
	"github.com/bodgit/sgf/scan"
)

const (
	headerSize   = 6
	colorSize    = 4
	flagOrder    = 0x01
	flagReserved = 0xfe
)

// ErrMalformed is returned when a container cannot be decoded. The
// underlying cause is wrapped alongside it.
var ErrMalformed = errors.New("sgf: malformed container")

var (
	errHeader   = errors.New("truncated header")
	errPalette  = errors.New("truncated palette")
	errReserved = errors.New("reserved flags set")
	errIndex    = errors.New("palette index out of range")
	errTooMuch  = errors.New("trailing data")
)

func malformed(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformed, err)
}

// Options control how an image is encoded. A nil *Options is the same as
// the zero value.
type Options struct {
	// Orders lists the scan orders to try. The smallest result is kept,
	// with ties going to the earlier order. Empty means scan.Orders.
	Orders []scan.Order
	// Compression is the method applied to the framed container
	Compression compress.Method
	// Level is the compression level, compress.DefaultLevel if zero
	Level int
}

func (o *Options) orders() []scan.Order {
	if o == nil || len(o.Orders) == 0 {
		return scan.Orders
	}
	return o.Orders
}

func (o *Options) compression() (compress.Method, int) {
	if o == nil {
		return compress.Zlib, compress.DefaultLevel
	}
	return o.Compression, o.Level
}

// Info describes an encoded image
type Info struct {
	Width  int
	Height int
	Colors int
	Order  scan.Order
	// Framed is the size of the container before compression
	Framed int
}
