/*
Package sgf is a library for converting images to and from the SGF palette
container format and keeping a catalog of every image converted.
*/
package sgf

import (
	"log"

	sgfimage "github.com/bodgit/sgf/image"
)

// Options control how images are converted
type Options struct {
	Image sgfimage.Options
	// Quantize reduces images with too many colors instead of failing
	Quantize bool
	// Verify decodes every new image and compares it with the source
	Verify bool
	// Workers is the number of images converted at once by Convert
	Workers int
}

const defaultWorkers = 10

type SGF struct {
	catalog *Catalog
	logger  *log.Logger
	options Options
}

func New(file string, logger *log.Logger, options Options) (*SGF, error) {
	catalog, err := OpenCatalog(file)
	if err != nil {
		return nil, err
	}

	if options.Workers < 1 {
		options.Workers = defaultWorkers
	}

	return &SGF{
		catalog: catalog,
		logger:  logger,
		options: options,
	}, nil
}

func (s *SGF) Close() error {
	return s.catalog.Close()
}
