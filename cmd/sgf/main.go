package main

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sgf"
	"github.com/bodgit/sgf/compress"
	"github.com/bodgit/sgf/scan"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const defaultDB = "sgf.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var encodeFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "order",
		Value: "auto",
		Usage: "scan order; auto, row or column",
	},
	&cli.StringFlag{
		Name:  "compression",
		Value: compress.Zlib.String(),
		Usage: "compression method; zlib or zstd",
	},
	&cli.IntFlag{
		Name:  "level",
		Value: compress.DefaultLevel,
		Usage: "compression level, 0 for the default",
	},
	&cli.BoolFlag{
		Name:  "quantize",
		Usage: "reduce images with too many colors",
	},
	&cli.BoolFlag{
		Name:  "verify",
		Usage: "decode each new image and compare it with the source",
	},
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func options(c *cli.Context) (sgf.Options, error) {
	var o sgf.Options

	if order := c.String("order"); order != "" && order != "auto" {
		so, err := scan.ParseOrder(order)
		if err != nil {
			return o, err
		}
		o.Image.Orders = []scan.Order{so}
	}

	if method := c.String("compression"); method != "" {
		m, err := compress.ParseMethod(method)
		if err != nil {
			return o, err
		}
		o.Image.Compression = m
	}

	o.Image.Level = c.Int("level")
	o.Quantize = c.Bool("quantize")
	o.Verify = c.Bool("verify")
	o.Workers = c.Int("workers")

	return o, nil
}

func open(c *cli.Context) (*sgf.SGF, error) {
	o, err := options(c)
	if err != nil {
		return nil, err
	}
	return sgf.New(c.String("db"), newLogger(c), o)
}

func output(c *cli.Context, ext string) string {
	if c.NArg() > 1 {
		return c.Args().Get(1)
	}
	in := c.Args().First()
	return strings.TrimSuffix(in, filepath.Ext(in)) + ext
}

func main() {
	app := cli.NewApp()

	app.Name = "sgf"
	app.Usage = "SGF palette image conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SGF_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Convert an image to SGF",
			Description: "",
			ArgsUsage:   "FILE [OUTPUT]",
			Flags:       encodeFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer s.Close()

				if _, err := s.EncodeFile(c.Args().First(), output(c, ".sgf")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "decode",
			Usage:       "Convert an SGF image to PNG",
			Description: "",
			ArgsUsage:   "FILE [OUTPUT]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer s.Close()

				if err := s.DecodeFile(c.Args().First(), output(c, ".png")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert every image under a directory to SGF",
			Description: "",
			ArgsUsage:   "DIRECTORY [DESTINATION]",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of images to convert at once",
				},
			}, encodeFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer s.Close()

				dest := c.Args().First()
				if c.NArg() > 1 {
					dest = c.Args().Get(1)
				}

				if err := s.Convert(c.Args().First(), dest); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "report",
			Usage:       "Show the size of every image in the catalog",
			Description: "",
			Action: func(c *cli.Context) error {
				s, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer s.Close()

				if err := s.Report(os.Stdout); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
