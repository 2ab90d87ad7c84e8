package sgf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const extension = ".sgf"

// Source formats the command line tool registers decoders for
var extensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

func isImage(file string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(file))]
	return ok
}

func (s *SGF) findImages(ctx context.Context, base, dest string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Don't descend into our own output
			if info.Mode().IsDir() {
				if file == dest && file != base {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal image file
			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (s *SGF) imageWorker(ctx context.Context, base, dest string, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if ctx.Err() != nil {
				continue
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				errc <- err
				return
			}
			out := filepath.Join(dest, strings.TrimSuffix(rel, filepath.Ext(rel))+extension)

			if err := os.MkdirAll(filepath.Dir(out), 0777); err != nil {
				errc <- err
				return
			}

			if _, err := s.EncodeFile(file, out); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

// Wait for every stage to finish, cancelling the rest of the pipeline on the
// first error, which is returned
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Convert encodes every image found under path to SGF, writing each one to
// the same relative location under dest with an .sgf extension. The first
// failure stops the conversion and is returned.
func (s *SGF) Convert(path, dest string) error {
	base, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if dest, err = filepath.Abs(dest); err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := s.findImages(ctx, base, dest)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < s.options.Workers; i++ {
		errc, err := s.imageWorker(ctx, base, dest, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
