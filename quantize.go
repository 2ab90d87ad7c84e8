package sgf

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/sgf/palette"
	"github.com/bodgit/sgf/raster"
	"github.com/ericpauley/go-quantize/quantize"
)

// Reduce m to no more than palette.MaxColors colors
func reduce(m image.Image) (*raster.Raster, error) {
	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, palette.MaxColors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return raster.FromImage(pm)
}
