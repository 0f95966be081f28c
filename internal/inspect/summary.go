package inspect

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muktihari/gpx"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"gopkg.in/yaml.v3"
)

// Summary is the overview of a single GPX file.
type Summary struct {
	Path      string    `yaml:"path"`
	Creator   string    `yaml:"creator,omitempty"`
	Name      string    `yaml:"name,omitempty"`
	Time      time.Time `yaml:"time,omitempty"`
	WayPoints int       `yaml:"waypoints"`
	Routes    int       `yaml:"routes"`
	Tracks    int       `yaml:"tracks"`
	Segments  int       `yaml:"segments"`
	Points    int       `yaml:"points"`
	Bounds    *Box      `yaml:"bounds,omitempty"`
	Error     string    `yaml:"error,omitempty"`
}

// Box is a non-empty bounding box.
type Box struct {
	MinLatitude  float64 `yaml:"minlat"`
	MinLongitude float64 `yaml:"minlon"`
	MaxLatitude  float64 `yaml:"maxlat"`
	MaxLongitude float64 `yaml:"maxlon"`
}

func newBox(b gpx.Bounds) *Box {
	if b.IsEmpty() {
		return nil
	}
	return &Box{
		MinLatitude:  b.MinLatitude,
		MinLongitude: b.MinLongitude,
		MaxLatitude:  b.MaxLatitude,
		MaxLongitude: b.MaxLongitude,
	}
}

func (b *Box) String() string {
	return fmt.Sprintf("%g,%g .. %g,%g", b.MinLatitude, b.MinLongitude, b.MaxLatitude, b.MaxLongitude)
}

// Summarize describes doc. The bounds are the metadata bounds when the file
// has them and the box around all track points otherwise.
func Summarize(path string, doc *gpx.Document) Summary {
	s := Summary{
		Path:      path,
		Creator:   doc.Creator,
		Name:      doc.Metadata.Name,
		Time:      doc.Time,
		WayPoints: len(doc.WayPoints()),
		Routes:    len(doc.Routes()),
		Tracks:    len(doc.Tracks()),
	}
	for _, trk := range doc.Tracks() {
		s.Segments += len(trk.Segments())
		s.Points += len(trk.Points())
	}

	bounds := doc.Metadata.Bounds
	if bounds.IsEmpty() {
		bounds = doc.ComputeBounds()
	}
	s.Bounds = newBox(bounds)
	return s
}

// SummarizeFiles loads and summarizes paths using up to workers goroutines.
// Files that fail to load are reported through Summary.Error. The result is
// in the order of paths.
func SummarizeFiles(paths []string, workers int) []Summary {
	p := pool.NewWithResults[indexed]()
	if workers > 0 {
		p = p.WithMaxGoroutines(workers)
	}

	for i, path := range paths {
		p.Go(func() indexed {
			start := time.Now()
			doc, err := Load(path)
			if err != nil {
				log.Error().Err(err).Str("path", path).Msg("Failed to load file")
				return indexed{i, Summary{Path: path, Error: err.Error()}}
			}
			log.Debug().Str("path", path).Dur("took", time.Since(start)).Msg("Loaded file")
			return indexed{i, Summarize(path, doc)}
		})
	}

	summaries := make([]Summary, len(paths))
	for _, r := range p.Wait() {
		summaries[r.index] = r.summary
	}
	return summaries
}

type indexed struct {
	index   int
	summary Summary
}

// WriteText prints summaries in a human readable form.
func WriteText(w io.Writer, summaries []Summary) error {
	var b strings.Builder
	for _, s := range summaries {
		if s.Error != "" {
			fmt.Fprintf(&b, "%s: error: %s\n", s.Path, s.Error)
			continue
		}
		fmt.Fprintf(&b, "%s\n", s.Path)
		if s.Creator != "" {
			fmt.Fprintf(&b, "  creator:   %s\n", s.Creator)
		}
		if s.Name != "" {
			fmt.Fprintf(&b, "  name:      %s\n", s.Name)
		}
		if !s.Time.IsZero() {
			fmt.Fprintf(&b, "  time:      %s\n", s.Time.Format(time.RFC3339))
		}
		fmt.Fprintf(&b, "  waypoints: %d\n", s.WayPoints)
		fmt.Fprintf(&b, "  routes:    %d\n", s.Routes)
		fmt.Fprintf(&b, "  tracks:    %d (%d segments, %d points)\n", s.Tracks, s.Segments, s.Points)
		if s.Bounds != nil {
			fmt.Fprintf(&b, "  bounds:    %s\n", s.Bounds)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteYAML prints summaries as a YAML sequence.
func WriteYAML(w io.Writer, summaries []Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summaries); err != nil {
		return err
	}
	return enc.Close()
}
