/*
Package palette builds the deduplicated color table of an SGF image.

Colors are stored in the order they are first met when reading the raster
row by row. The container stores the palette length in a single byte, so an
image may use at most MaxColors distinct colors.
*/
package palette

import (
	"errors"
	"fmt"
	"image/color"
)

// MaxColors is the largest number of distinct colors a palette can hold
const MaxColors = 255

var (
	// ErrTooManyColors is returned when a raster uses more than MaxColors
	// distinct colors
	ErrTooManyColors = errors.New("palette: too many colors")

	errDuplicate = errors.New("palette: duplicate color")
)

// Palette is an ordered set of unique colors
type Palette struct {
	colors []color.NRGBA
	index  map[color.NRGBA]uint8
}

// Build returns the palette of every distinct color in pix
func Build(pix []color.NRGBA) (*Palette, error) {
	p := &Palette{
		index: make(map[color.NRGBA]uint8),
	}
	for _, c := range pix {
		if _, ok := p.index[c]; ok {
			continue
		}
		if len(p.colors) == MaxColors {
			return nil, fmt.Errorf("%w: more than %d", ErrTooManyColors, MaxColors)
		}
		p.index[c] = uint8(len(p.colors))
		p.colors = append(p.colors, c)
	}
	return p, nil
}

// New returns a palette of the given colors in order, as read back from a
// container
func New(colors []color.NRGBA) (*Palette, error) {
	if len(colors) > MaxColors {
		return nil, fmt.Errorf("%w: %d entries", ErrTooManyColors, len(colors))
	}
	p := &Palette{
		colors: make([]color.NRGBA, 0, len(colors)),
		index:  make(map[color.NRGBA]uint8, len(colors)),
	}
	for _, c := range colors {
		if _, ok := p.index[c]; ok {
			return nil, errDuplicate
		}
		p.index[c] = uint8(len(p.colors))
		p.colors = append(p.colors, c)
	}
	return p, nil
}

// Len returns the number of colors
func (p *Palette) Len() int {
	return len(p.colors)
}

// Index returns the index of c and whether it is present
func (p *Palette) Index(c color.NRGBA) (uint8, bool) {
	i, ok := p.index[c]
	return i, ok
}

// Color returns the color at index i
func (p *Palette) Color(i uint8) color.NRGBA {
	return p.colors[i]
}

// Colors returns a copy of the colors in palette order
func (p *Palette) Colors() []color.NRGBA {
	return append([]color.NRGBA(nil), p.colors...)
}

// Model returns the palette as a color.Model for use in an image.Config
func (p *Palette) Model() color.Palette {
	m := make(color.Palette, len(p.colors))
	for i, c := range p.colors {
		m[i] = c
	}
	return m
}
