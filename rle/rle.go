/*
Package rle implements the run-length coding of an SGF palette index stream.

Each run is written as two bytes, the run length (1 to 255) followed by the
palette index it repeats.
*/
package rle

import (
	"errors"
	"io"
)

// MaxRun is the longest run a single pair can describe
const MaxRun = 255

var (
	// ErrOverrun is returned when a run extends past the expected number of
	// indices
	ErrOverrun = errors.New("rle: run exceeds pixel count")
	// ErrZeroRun is returned when a run has a length of zero
	ErrZeroRun = errors.New("rle: zero length run")
)

// Run is a palette index repeated Length times
type Run struct {
	Length uint8
	Index  uint8
}

// Encode compresses indices into runs. Adjacent runs only share an index
// when the first is MaxRun long.
func Encode(indices []uint8) []Run {
	var runs []Run
	if len(indices) == 0 {
		return runs
	}

	cur := Run{Length: 1, Index: indices[0]}
	for _, i := range indices[1:] {
		if i != cur.Index || cur.Length == MaxRun {
			runs = append(runs, cur)
			cur = Run{Length: 1, Index: i}
			continue
		}
		cur.Length++
	}

	return append(runs, cur)
}

// Append appends the serialized form of runs to dst
func Append(dst []byte, runs []Run) []byte {
	for _, r := range runs {
		dst = append(dst, r.Length, r.Index)
	}
	return dst
}

// Sum returns the total number of indices described by runs
func Sum(runs []Run) int {
	var n int
	for _, r := range runs {
		n += int(r.Length)
	}
	return n
}

func readByte(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return b, err
}

// Decode reads runs from r until exactly n indices have been produced and
// returns them. A stream that ends early returns io.ErrUnexpectedEOF.
func Decode(r io.ByteReader, n int) ([]uint8, error) {
	// Grow with the stream rather than trusting n up front
	indices := make([]uint8, 0, min(n, 1<<16))

	for len(indices) < n {
		length, err := readByte(r)
		if err != nil {
			return nil, err
		}
		index, err := readByte(r)
		if err != nil {
			return nil, err
		}

		if length == 0 {
			return nil, ErrZeroRun
		}
		if len(indices)+int(length) > n {
			return nil, ErrOverrun
		}

		for i := 0; i < int(length); i++ {
			indices = append(indices, index)
		}
	}

	return indices, nil
}
