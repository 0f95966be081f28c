package inspect_test

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/muktihari/gpx"
	"github.com/muktihari/gpx/internal/inspect"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var (
	loop  = filepath.Join("testdata", "loop.gpx")
	empty = filepath.Join("testdata", "empty.gpx")
)

func TestLoadKeepsRoutes(t *testing.T) {
	doc, err := inspect.Load(loop)
	if err != nil {
		t.Fatal(err)
	}
	routes := doc.Routes()
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got: %d", len(routes))
	}
	if n := len(routes[0].Points()); n != 2 {
		t.Fatalf("expected 2 route points, got: %d", n)
	}

	var buf bytes.Buffer
	if err := inspect.Write(&buf, doc); err != nil {
		t.Fatal(err)
	}
	reloaded, err := gpx.Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(reloaded.Routes()); n != 0 {
		t.Fatalf("expected Document to leave routes alone, got: %d", n)
	}
	if !strings.Contains(buf.String(), "<name>Planned loop</name>") {
		t.Fatalf("expected route to be written:\n%s", buf.String())
	}

	out := buf.String()
	wpt, rte, trk := strings.Index(out, "<wpt "), strings.Index(out, "<rte>"), strings.Index(out, "<trk>")
	if wpt < 0 || !(wpt < rte && rte < trk) {
		t.Fatalf("expected wpt, rte, trk order, got offsets %d, %d, %d:\n%s", wpt, rte, trk, out)
	}
}

func TestSummarizeFiles(t *testing.T) {
	missing := filepath.Join("testdata", "missing.gpx")
	summaries := inspect.SummarizeFiles([]string{loop, missing, empty}, 2)

	expected := []inspect.Summary{
		{
			Path:      loop,
			Creator:   "Strava",
			Name:      "Harbour loop",
			Time:      time.Date(2024, 6, 1, 5, 30, 0, 0, time.UTC),
			WayPoints: 1,
			Routes:    1,
			Tracks:    1,
			Segments:  2,
			Points:    3,
			Bounds:    &inspect.Box{MinLatitude: 51.48, MinLongitude: -0.12, MaxLatitude: 51.52, MaxLongitude: -0.08},
		},
		{
			Path: missing,
		},
		{
			Path:    empty,
			Creator: "test",
		},
	}

	if len(summaries) != len(expected) {
		t.Fatalf("expected %d summaries, got: %d", len(expected), len(summaries))
	}
	if summaries[1].Error == "" {
		t.Fatalf("expected an error for the missing file")
	}
	summaries[1].Error = ""
	if diff := cmp.Diff(expected, summaries); diff != "" {
		t.Fatal(diff)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	summaries := []inspect.Summary{{Path: "a.gpx", Tracks: 1, Bounds: &inspect.Box{MinLatitude: 1, MinLongitude: 2, MaxLatitude: 3, MaxLongitude: 4}}}
	if err := inspect.WriteYAML(&buf, summaries); err != nil {
		t.Fatal(err)
	}

	var decoded []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 document, got: %d", len(decoded))
	}
	if _, ok := decoded[0]["time"]; ok {
		t.Fatalf("expected zero time to be omitted:\n%s", buf.String())
	}
	if decoded[0]["path"] != "a.gpx" || decoded[0]["tracks"] != 1 {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := &cli.App{
		Name:     "gpx",
		Commands: inspect.RegisterCLI(),
		Writer:   &buf,
	}
	err := app.Run(append([]string{"gpx"}, args...))
	return buf.String(), err
}

func TestCommands(t *testing.T) {
	tt := []struct {
		name     string
		args     []string
		contains []string
		err      bool
	}{
		{
			name:     "info text",
			args:     []string{"info", loop},
			contains: []string{"creator:   Strava", "tracks:    1 (2 segments, 3 points)", "bounds:    51.48,-0.12 .. 51.52,-0.08"},
		},
		{
			name:     "info yaml",
			args:     []string{"info", "--format", "yaml", loop, empty},
			contains: []string{"path: " + loop, "creator: test", "minlat: 51.48"},
		},
		{
			name: "info unknown format",
			args: []string{"info", "--format", "xml", loop},
			err:  true,
		},
		{
			name:     "info with missing file",
			args:     []string{"info", "nope.gpx"},
			contains: []string{"nope.gpx: error:"},
			err:      true,
		},
		{
			name:     "bounds",
			args:     []string{"bounds", loop},
			contains: []string{"51.48 -0.12 51.52 -0.08\n"},
		},
		{
			name: "bounds without points",
			args: []string{"bounds", empty},
		},
		{
			name:     "fmt",
			args:     []string{"fmt", "--indent", "", loop},
			contains: []string{`<trkpt lat="51.52" lon="-0.12"><ele>12</ele></trkpt>`, "<rte><name>Planned loop</name>"},
		},
		{
			name:     "dump",
			args:     []string{"dump", loop},
			contains: []string{"Creator:", `"Strava"`},
		},
		{
			name: "dump needs a file",
			args: []string{"dump"},
			err:  true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.args...)
			if (err != nil) != tc.err {
				t.Fatalf("expected err: %t, got: %v", tc.err, err)
			}
			for _, s := range tc.contains {
				if !strings.Contains(out, s) {
					t.Fatalf("expected %q in output:\n%s", s, out)
				}
			}
		})
	}
}

func TestFmtOutputFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.gpx")
	if _, err := run(t, "fmt", "--output", output, loop); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := gpx.Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(doc.Tracks()[0].Points()); n != 3 {
		t.Fatalf("expected 3 points after fmt, got: %d", n)
	}
}

func TestFmtOutputFileError(t *testing.T) {
	output := filepath.Join(t.TempDir(), "missing", "out.gpx")
	if _, err := run(t, "fmt", "--output", output, loop); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected error: %v, got: %v", fs.ErrNotExist, err)
	}
}
