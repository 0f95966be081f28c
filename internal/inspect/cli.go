package inspect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/kr/pretty"
	"github.com/muktihari/gpx/xmltree"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "info",
			Usage:     "Summarize GPX files",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Usage:   "Output format: text or yaml",
					Value:   "text",
				},
				&cli.IntFlag{
					Name:  "workers",
					Usage: "Number of files parsed concurrently",
					Value: runtime.NumCPU(),
				},
			},
			Action: func(c *cli.Context) error {
				paths := c.Args().Slice()
				if len(paths) == 0 {
					return errors.New("no files given")
				}

				summaries := SummarizeFiles(paths, c.Int("workers"))

				var err error
				switch format := c.String("format"); format {
				case "text":
					err = WriteText(c.App.Writer, summaries)
				case "yaml":
					err = WriteYAML(c.App.Writer, summaries)
				default:
					return fmt.Errorf("unknown format %q", format)
				}
				if err != nil {
					return err
				}

				var failed int
				for _, s := range summaries {
					if s.Error != "" {
						failed++
					}
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d files could not be loaded", failed, len(paths))
				}
				return nil
			},
		},
		{
			Name:      "fmt",
			Usage:     "Rewrite a GPX file in normalized form",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "Write to this file instead of standard output",
				},
				&cli.StringFlag{
					Name:  "indent",
					Usage: "Indentation per level, empty for a single line",
					Value: "  ",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return errors.New("expected exactly one file")
				}
				path := c.Args().First()

				if err := formatFile(c.App.Writer, path, c.String("output"), c.String("indent")); err != nil {
					return err
				}
				log.Debug().Str("path", path).Str("output", c.String("output")).Msg("Formatted file")
				return nil
			},
		},
		{
			Name:      "bounds",
			Usage:     "Print the bounding box of all track points",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return errors.New("expected exactly one file")
				}

				doc, err := Load(c.Args().First())
				if err != nil {
					return err
				}

				box := newBox(doc.ComputeBounds())
				if box == nil {
					log.Info().Str("path", c.Args().First()).Msg("No track points")
					return nil
				}
				_, err = fmt.Fprintf(c.App.Writer, "%g %g %g %g\n", box.MinLatitude, box.MinLongitude, box.MaxLatitude, box.MaxLongitude)
				return err
			},
		},
		{
			Name:      "dump",
			Usage:     "Pretty-print the in-memory model of a GPX file",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return errors.New("expected exactly one file")
				}

				doc, err := Load(c.Args().First())
				if err != nil {
					return err
				}
				_, err = pretty.Fprintf(c.App.Writer, "%# v\n", doc)
				return err
			},
		},
	}
}

// formatFile rewrites the GPX file at path into output, or into w when
// output is empty.
func formatFile(w io.Writer, path, output, indent string) (err error) {
	doc, err := Load(path)
	if err != nil {
		return err
	}
	if output == "" {
		return Write(w, doc, xmltree.WithIndent(indent))
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, doc, xmltree.WithIndent(indent))
}
