/*
Package raster implements the in-memory pixel grid consumed and produced by
the SGF codec.

A Raster is a width by height grid of non-premultiplied RGBA pixels stored in
row-major order. Both dimensions must fit in 16 bits.
*/
package raster

import (
	"errors"
	"image"
	"image/color"
)

// MaxDimension is the largest width or height a Raster may have
const MaxDimension = 1<<16 - 1

// ErrTooLarge is returned when an image exceeds MaxDimension in either
// direction
var ErrTooLarge = errors.New("raster: image is too large")

// Raster is a row-major grid of colors
type Raster struct {
	Width  int
	Height int
	Pix    []color.NRGBA
}

// New returns a Raster of the given size with every pixel set to the zero
// color.
func New(width, height int) (*Raster, error) {
	if width < 0 || height < 0 || width > MaxDimension || height > MaxDimension {
		return nil, ErrTooLarge
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]color.NRGBA, width*height),
	}, nil
}

// Len returns the number of pixels
func (r *Raster) Len() int {
	return r.Width * r.Height
}

// At returns the color at column x, row y
func (r *Raster) At(x, y int) color.NRGBA {
	return r.Pix[y*r.Width+x]
}

// Set sets the color at column x, row y
func (r *Raster) Set(x, y int, c color.NRGBA) {
	r.Pix[y*r.Width+x] = c
}

// Equal reports whether both rasters have the same size and pixels
func (r *Raster) Equal(o *Raster) bool {
	if r.Width != o.Width || r.Height != o.Height || len(r.Pix) != len(o.Pix) {
		return false
	}
	for i := range r.Pix {
		if r.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// FromImage converts any image m to a Raster. The top-left corner of the
// image bounds becomes pixel (0, 0). Images that are not image.NRGBA might be
// converted lossily.
func FromImage(m image.Image) (*Raster, error) {
	b := m.Bounds()

	r, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	if nm, ok := m.(*image.NRGBA); ok {
		for y := 0; y < r.Height; y++ {
			o := nm.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < r.Width; x++ {
				p := nm.Pix[o+x*4 : o+x*4+4 : o+x*4+4]
				r.Pix[y*r.Width+x] = color.NRGBA{p[0], p[1], p[2], p[3]}
			}
		}
		return r, nil
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			r.Set(x-b.Min.X, y-b.Min.Y, c)
		}
	}

	return r, nil
}

// Image returns the Raster as an *image.NRGBA anchored at (0, 0)
func (r *Raster) Image() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, c := range r.Pix {
		p := m.Pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	}
	return m
}
