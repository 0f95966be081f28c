package gpx_test

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/muktihari/gpx"
	"github.com/muktihari/gpx/xmltree"
)

func TestNewPoint(t *testing.T) {
	p := gpx.NewPoint()
	for _, v := range []float64{p.Latitude, p.Longitude, p.Height, p.Course, p.Elevation, p.MagneticVariation, p.GeoidHeight} {
		if !math.IsNaN(v) {
			t.Fatalf("expected NaN, got: %v", v)
		}
	}
	if p.SatelliteCount != -1 {
		t.Fatalf("expected SatelliteCount -1, got: %d", p.SatelliteCount)
	}
	if p.Correct() {
		t.Fatalf("expected empty point not to be correct")
	}
	if !gpx.NewPointAt(0, 0).Correct() {
		t.Fatalf("expected point at 0,0 to be correct")
	}
}

func TestPointSaveTo(t *testing.T) {
	full := gpx.NewPointAt(55.75, 37.61)
	full.Height = 150
	full.Elevation = 148.5
	full.Time = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	full.MagneticVariation = 11
	full.Name = "Kremlin"
	full.Comment = "   "
	full.Symbol = "Flag"
	full.SatelliteCount = 7
	full.Extensions.AddText(xmltree.Name{Space: gpx.NamespaceGPX, Local: "note"}, "x")

	course := gpx.NewPoint()
	course.Course = 90

	tt := []struct {
		name     string
		point    *gpx.Point
		parent   string
		tag      string
		expected string
		err      error
	}{
		{
			name:     "all fields in order",
			point:    full,
			parent:   "gpx",
			tag:      "wpt",
			expected: `<gpx ` + ns + `><wpt lat="55.75" lon="37.61" h="150"><time>2024-01-02T03:04:05Z</time><ele>148.5</ele><magvar>11</magvar><name>Kremlin</name><sym>Flag</sym><sat>7</sat><extensions><note>x</note></extensions></wpt></gpx>`,
		},
		{
			name:     "empty point writes nothing",
			point:    gpx.NewPoint(),
			parent:   "trkseg",
			tag:      "trkpt",
			expected: `<trkseg ` + ns + `/>`,
		},
		{
			name:     "course attribute keeps its spelling",
			point:    course,
			parent:   "rte",
			tag:      "rtept",
			expected: `<rte ` + ns + `><rtept cource="90"/></rte>`,
		},
		{
			name:     "unknown tag accepts any parent",
			point:    gpx.NewPointAt(1, 2),
			parent:   "anything",
			tag:      "pt",
			expected: `<anything ` + ns + `><pt lat="1" lon="2"/></anything>`,
		},
		{
			name:   "trkpt outside trkseg",
			point:  gpx.NewPointAt(1, 2),
			parent: "gpx",
			tag:    "trkpt",
			err:    gpx.ErrStructureMismatch,
		},
		{
			name:   "wpt outside gpx",
			point:  gpx.NewPointAt(1, 2),
			parent: "rte",
			tag:    "wpt",
			err:    gpx.ErrStructureMismatch,
		},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("[%d] %s", i, tc.name), func(t *testing.T) {
			parent := node(tc.parent)
			err := tc.point.SaveTo(parent, tc.tag)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected err: %v, got: %v", tc.err, err)
			}
			if err != nil {
				return
			}
			if got := render(t, parent); got != tc.expected {
				t.Fatalf("expected:\n%s\ngot:\n%s", tc.expected, got)
			}
		})
	}
}

func TestPointLoadFrom(t *testing.T) {
	tt := []struct {
		name     string
		xml      string
		expected func() *gpx.Point
		err      error
	}{
		{
			name: "all fields",
			xml: `<trkpt ` + ns + ` lat="-33.5" lon="151.25" h="3" cource="270">
				<time>2024-01-02T03:04:05.5Z</time>
				<ele>12</ele>
				<magvar>1.5</magvar>
				<geoidheight>20</geoidheight>
				<name>Bondi</name>
				<cmt>c</cmt>
				<desc>d</desc>
				<src>s</src>
				<sym>Beach</sym>
				<type>t</type>
				<sat>9</sat>
			</trkpt>`,
			expected: func() *gpx.Point {
				p := gpx.NewPointAt(-33.5, 151.25)
				p.Height = 3
				p.Course = 270
				p.Time = time.Date(2024, 1, 2, 3, 4, 5, 5e8, time.UTC)
				p.Elevation = 12
				p.MagneticVariation = 1.5
				p.GeoidHeight = 20
				p.Name, p.Comment, p.Description, p.Source, p.Symbol, p.Type = "Bondi", "c", "d", "s", "Beach", "t"
				p.SatelliteCount = 9
				return p
			},
		},
		{
			name: "missing and blank fields are absent",
			xml:  `<wpt ` + ns + ` lat="1"><ele>  </ele><sat></sat></wpt>`,
			expected: func() *gpx.Point {
				p := gpx.NewPoint()
				p.Latitude = 1
				return p
			},
		},
		{
			name: "time without zone",
			xml:  `<rtept ` + ns + `><time>2024-01-02T03:04:05</time></rtept>`,
			expected: func() *gpx.Point {
				p := gpx.NewPoint()
				p.Time = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
				return p
			},
		},
		{
			name: "wrong element",
			xml:  `<trkseg ` + ns + `/>`,
			err:  gpx.ErrStructureMismatch,
		},
		{
			name: "malformed latitude",
			xml:  `<wpt ` + ns + ` lat="north"/>`,
			err:  strconv.ErrSyntax,
		},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("[%d] %s", i, tc.name), func(t *testing.T) {
			p, err := gpx.NewPoint().LoadFrom(parse(t, tc.xml))
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected err: %v, got: %v", tc.err, err)
			}
			if err != nil {
				return
			}
			expected := tc.expected()
			if diff := cmp.Diff(expected, p, equateNaN); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestPointLoadFromKeepsExtensions(t *testing.T) {
	p := gpx.NewPoint()
	ext := p.Extensions

	if _, err := p.LoadFrom(parse(t, `<wpt `+ns+` lat="1" lon="2"><name>a</name></wpt>`)); err != nil {
		t.Fatal(err)
	}
	if p.Extensions != ext {
		t.Fatalf("expected extensions to be kept when none is loaded")
	}

	if _, err := p.LoadFrom(parse(t, `<wpt `+ns+`><extensions><hr>98</hr></extensions></wpt>`)); err != nil {
		t.Fatal(err)
	}
	if p.Extensions == ext || len(p.Extensions.Children) != 1 {
		t.Fatalf("expected extensions to be replaced, got: %+v", p.Extensions)
	}
}

func TestPointString(t *testing.T) {
	p := gpx.NewPointAt(55.75, 37.5)
	p.Height = 10
	if s := p.String(); s != "55.75;37.5;10" {
		t.Fatalf("expected: %q, got: %q", "55.75;37.5;10", s)
	}
}
