package sgf

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/ioutil"
	"os"
	"strings"
	"time"

	sgfimage "github.com/bodgit/sgf/image"
	"github.com/bodgit/sgf/palette"
	"github.com/bodgit/sgf/raster"
	"github.com/bodgit/sgf/scan"
)

var errMismatch = errors.New("sgf: decoded image does not match source")

// Describe every option that changes the encoded output
func (s *SGF) params() string {
	orders := s.options.Image.Orders
	if len(orders) == 0 {
		orders = scan.Orders
	}
	names := make([]string, len(orders))
	for i, o := range orders {
		names[i] = o.String()
	}
	return fmt.Sprintf("orders=%s compression=%s level=%d quantize=%t", strings.Join(names, ","), s.options.Image.Compression, s.options.Image.Level, s.options.Quantize)
}

// Convert m to the raster that gets encoded, reducing it first if that is
// enabled and needed
func (s *SGF) raster(m image.Image) (*raster.Raster, error) {
	r, err := raster.FromImage(m)
	if err != nil {
		return nil, err
	}

	if !s.options.Quantize {
		return r, nil
	}
	if _, err := palette.Build(r.Pix); !errors.Is(err, palette.ErrTooManyColors) {
		return r, nil
	}

	s.logger.Printf("Reducing image to %d colors\n", palette.MaxColors)
	return reduce(m)
}

func verify(r *raster.Raster, b []byte) error {
	got, err := sgfimage.DecodeRaster(b)
	if err != nil {
		return err
	}
	if !r.Equal(got) {
		return errMismatch
	}
	return nil
}

// EncodeFile converts the image in file in to SGF and writes it to out. If
// the catalog already holds a conversion of the same source with the same
// options it is reused.
func (s *SGF) EncodeFile(in, out string) (*Entry, error) {
	src, err := ioutil.ReadFile(in)
	if err != nil {
		return nil, err
	}
	sha := fmt.Sprintf("%X", sha1.Sum(src))
	params := s.params()

	e, err := s.catalog.Lookup(sha, params)
	if err != nil {
		return nil, err
	}

	// The source is only needed to encode or to check the result
	var r *raster.Raster
	if e == nil || s.options.Verify {
		m, _, err := image.Decode(bytes.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in, err)
		}

		if r, err = s.raster(m); err != nil {
			return nil, fmt.Errorf("%s: %w", in, err)
		}
	}

	if e == nil {
		start := time.Now()
		b, info, err := sgfimage.EncodeRaster(r, &s.options.Image)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in, err)
		}

		e = &Entry{
			SHA1:       sha,
			Params:     params,
			Width:      info.Width,
			Height:     info.Height,
			Colors:     info.Colors,
			Order:      info.Order,
			SourceSize: int64(len(src)),
			Size:       len(b),
			Duration:   time.Since(start),
			Data:       b,
		}
		s.logger.Printf("Encoded \"%s\" (%dx%d, %d colors, %s order) in %v, %d bytes to %d bytes\n", in, e.Width, e.Height, e.Colors, e.Order, e.Duration, e.SourceSize, e.Size)
	} else {
		s.logger.Printf("Reusing conversion of \"%s\", with SHA1 \"%s\"\n", in, sha)
	}

	if s.options.Verify {
		if err := verify(r, e.Data); err != nil {
			return nil, fmt.Errorf("%s: %w", in, err)
		}
	}

	e.Path = in
	if err := s.catalog.Add(e); err != nil {
		return nil, err
	}

	if err := ioutil.WriteFile(out, e.Data, 0666); err != nil {
		return nil, err
	}

	return e, nil
}

// DecodeFile converts the SGF image in file in to PNG and writes it to out
func (s *SGF) DecodeFile(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := sgfimage.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := png.Encode(w, m); err != nil {
		return err
	}

	s.logger.Printf("Decoded \"%s\" (%dx%d) to \"%s\"\n", in, m.Bounds().Dx(), m.Bounds().Dy(), out)

	return w.Close()
}
