package image

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/sgf/compress"
	"github.com/bodgit/sgf/palette"
	"github.com/bodgit/sgf/raster"
	"github.com/bodgit/sgf/rle"
	"github.com/bodgit/sgf/scan"
)

type reader interface {
	io.Reader
	io.ByteReader
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r reader

	order         scan.Order
	width, height int

	palette *palette.Palette
	raster  *raster.Raster
}

func (d *decoder) readHeader() error {
	var tmp [headerSize]byte
	if err := readFull(d.r, tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return malformed(errHeader)
	}

	if tmp[0]&flagReserved != 0 {
		return malformed(errReserved)
	}
	d.order = scan.Order(tmp[0] & flagOrder)
	d.width = int(binary.LittleEndian.Uint16(tmp[1:3]))
	d.height = int(binary.LittleEndian.Uint16(tmp[3:5]))

	colors := make([]byte, int(tmp[5])*colorSize)
	if err := readFull(d.r, colors); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return malformed(errPalette)
	}

	entries := make([]color.NRGBA, 0, len(colors)/colorSize)
	for i := 0; i < len(colors); i += colorSize {
		entries = append(entries, color.NRGBA{colors[i], colors[i+1], colors[i+2], colors[i+3]})
	}

	p, err := palette.New(entries)
	if err != nil {
		return malformed(err)
	}
	d.palette = p

	return nil
}

func (d *decoder) readPixels() error {
	n := d.width * d.height

	indices, err := rle.Decode(d.r, n)
	if err != nil {
		switch err {
		case io.ErrUnexpectedEOF, rle.ErrOverrun, rle.ErrZeroRun:
			return malformed(err)
		default:
			return err
		}
	}

	if _, err := d.r.ReadByte(); err != io.EOF {
		if err != nil {
			return err
		}
		return malformed(errTooMuch)
	}

	if d.raster, err = raster.New(d.width, d.height); err != nil {
		return err
	}

	for e, i := range indices {
		if int(i) >= d.palette.Len() {
			return malformed(errIndex)
		}
		d.raster.Pix[d.order.Raster(e, d.width, d.height)] = d.palette.Color(i)
	}

	return nil
}

func (d *decoder) decode(r reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	return d.readPixels()
}

// Unmarshal decodes a framed, uncompressed container and returns the raster
// along with the scan order it was stored in
func Unmarshal(b []byte) (*raster.Raster, scan.Order, error) {
	var d decoder
	if err := d.decode(bytes.NewReader(b), false); err != nil {
		return nil, 0, err
	}
	return d.raster, d.order, nil
}

// DecodeRaster decompresses and decodes an SGF image
func DecodeRaster(b []byte) (*raster.Raster, error) {
	c, err := compress.Decompress(b)
	if err != nil {
		return nil, err
	}

	r, _, err := Unmarshal(c)
	return r, err
}

// Decode reads an SGF image from r and returns it as an *image.NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m, err := DecodeRaster(b)
	if err != nil {
		return nil, err
	}
	return m.Image(), nil
}

// DecodeConfig returns the palette and dimensions of an SGF image without
// decoding the pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	cr, err := compress.NewReader(r)
	if err != nil {
		return image.Config{}, err
	}
	defer cr.Close()

	var d decoder
	if err := d.decode(bufio.NewReader(cr), true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: d.palette.Model(),
		Width:      d.width,
		Height:     d.height,
	}, nil
}
