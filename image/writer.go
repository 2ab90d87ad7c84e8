package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/bodgit/sgf/compress"
	"github.com/bodgit/sgf/palette"
	"github.com/bodgit/sgf/raster"
	"github.com/bodgit/sgf/rle"
	"github.com/bodgit/sgf/scan"
)

var errMissingColor = errors.New("sgf: color not in palette")

type encoder struct {
	r *raster.Raster
	p *palette.Palette
}

// Map every pixel to its palette index, visiting them in order o
func (e *encoder) indices(o scan.Order) ([]uint8, error) {
	w, h := e.r.Width, e.r.Height
	indices := make([]uint8, e.r.Len())
	for i := range indices {
		c := e.r.Pix[o.Raster(i, w, h)]
		idx, ok := e.p.Index(c)
		if !ok {
			return nil, errMissingColor
		}
		indices[i] = idx
	}
	return indices, nil
}

func (e *encoder) encode(o scan.Order) ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("sgf: invalid scan order %v", o)
	}
	if e.r.Width > raster.MaxDimension || e.r.Height > raster.MaxDimension {
		return nil, raster.ErrTooLarge
	}
	if len(e.r.Pix) != e.r.Len() {
		return nil, errors.New("sgf: raster is wrong size")
	}

	indices, err := e.indices(o)
	if err != nil {
		return nil, err
	}
	runs := rle.Encode(indices)

	b := bytes.NewBuffer(make([]byte, 0, headerSize+e.p.Len()*colorSize+len(runs)*2))

	// Write out header
	if err := b.WriteByte(byte(o) & flagOrder); err != nil {
		return nil, err
	}
	if err := binary.Write(b, binary.LittleEndian, [2]uint16{uint16(e.r.Width), uint16(e.r.Height)}); err != nil {
		return nil, err
	}
	if err := b.WriteByte(byte(e.p.Len())); err != nil {
		return nil, err
	}

	// Write out palette
	for _, c := range e.p.Colors() {
		if _, err := b.Write([]byte{c.R, c.G, c.B, c.A}); err != nil {
			return nil, err
		}
	}

	// Write out runs
	return rle.Append(b.Bytes(), runs), nil
}

// Marshal frames r in scan order o using palette p, which must contain every
// color in r. The result is not compressed.
func Marshal(r *raster.Raster, p *palette.Palette, o scan.Order) ([]byte, error) {
	e := encoder{r: r, p: p}
	return e.encode(o)
}

// MarshalBest frames r once for each of orders and returns the smallest
// result along with the order it used. Ties go to the earliest order. No
// orders means scan.Orders.
func MarshalBest(r *raster.Raster, p *palette.Palette, orders ...scan.Order) ([]byte, scan.Order, error) {
	if len(orders) == 0 {
		orders = scan.Orders
	}

	var (
		best  []byte
		order scan.Order
	)
	for i, o := range orders {
		b, err := Marshal(r, p, o)
		if err != nil {
			return nil, 0, err
		}
		if i == 0 || len(b) < len(best) {
			best, order = b, o
		}
	}

	return best, order, nil
}

func frame(r *raster.Raster, o *Options) ([]byte, Info, error) {
	p, err := palette.Build(r.Pix)
	if err != nil {
		return nil, Info{}, err
	}

	b, order, err := MarshalBest(r, p, o.orders()...)
	if err != nil {
		return nil, Info{}, err
	}

	return b, Info{
		Width:  r.Width,
		Height: r.Height,
		Colors: p.Len(),
		Order:  order,
		Framed: len(b),
	}, nil
}

// EncodeRaster encodes r and returns the compressed SGF image
func EncodeRaster(r *raster.Raster, o *Options) ([]byte, Info, error) {
	b, info, err := frame(r, o)
	if err != nil {
		return nil, Info{}, err
	}

	method, level := o.compression()
	c, err := compress.Compress(b, method, level)
	if err != nil {
		return nil, Info{}, err
	}

	return c, info, nil
}

// Encode writes the Image m to w in SGF format. Nothing is written if m
// has too many colors.
func Encode(w io.Writer, m image.Image, o *Options) error {
	r, err := raster.FromImage(m)
	if err != nil {
		return err
	}

	b, _, err := frame(r, o)
	if err != nil {
		return err
	}

	method, level := o.compression()
	cw, err := compress.NewWriter(w, method, level)
	if err != nil {
		return err
	}
	if _, err := cw.Write(b); err != nil {
		cw.Close()
		return err
	}

	return cw.Close()
}
