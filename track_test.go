package gpx_test

import (
	"errors"
	"testing"

	"github.com/muktihari/gpx"
)

func TestTrackCollection(t *testing.T) {
	trk := gpx.NewTrack()
	if trk.Number != -1 {
		t.Fatalf("expected Number -1, got: %d", trk.Number)
	}

	s1 := trk.Create()
	s1.Add(gpx.NewPointAt(1, 1))
	s2 := gpx.NewTrackSegment(gpx.NewPointAt(2, 2), gpx.NewPointAt(3, 3))
	trk.Add(s2)
	trk.Add(s2)

	if n := len(trk.Segments()); n != 2 {
		t.Fatalf("expected 2 segments, got: %d", n)
	}
	if n := len(trk.Points()); n != 3 {
		t.Fatalf("expected 3 points across segments, got: %d", n)
	}
	if p := trk.Points()[1]; p.Latitude != 2 {
		t.Fatalf("expected points in segment order, got: %v", p)
	}

	if !trk.Remove(s1) {
		t.Fatalf("expected s1 to be removed")
	}
	trk.Clear()
	if len(trk.Segments()) != 0 {
		t.Fatalf("expected no segments after clear")
	}
}

func TestTrackSaveTo(t *testing.T) {
	tt := []struct {
		name     string
		track    func() *gpx.Track
		parent   string
		expected string
		err      error
	}{
		{
			name: "descriptor, segments, extensions",
			track: func() *gpx.Track {
				trk := gpx.NewTrack()
				trk.Name = "Morning ride"
				trk.Comment = "cmt"
				trk.Link = gpx.Link{Href: "https://example.com"}
				trk.Number = 0
				trk.Type = "cycling"
				trk.Add(gpx.NewTrackSegment(gpx.NewPointAt(1, 2)))
				trk.Extensions.AddText(gpxName("color"), "red")
				return trk
			},
			parent: "gpx",
			expected: `<gpx ` + ns + `><trk><name>Morning ride</name><cmt>cmt</cmt><link href="https://example.com"/>` +
				`<number>0</number><type>cycling</type><trkseg><trkpt lat="1" lon="2"/></trkseg>` +
				`<extensions><color>red</color></extensions></trk></gpx>`,
		},
		{
			name: "empty track writes nothing",
			track: func() *gpx.Track {
				trk := gpx.NewTrack()
				trk.Create().Create()
				return trk
			},
			parent:   "gpx",
			expected: `<gpx ` + ns + `/>`,
		},
		{
			name:   "wrong parent",
			track:  gpx.NewTrack,
			parent: "trk",
			err:    gpx.ErrStructureMismatch,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			parent := node(tc.parent)
			err := tc.track().SaveTo(parent)
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

func TestTrackLoadFrom(t *testing.T) {
	trk, err := gpx.NewTrack().LoadFrom(parse(t, `<trk `+ns+`>
		<name>Morning ride</name>
		<desc>along the river</desc>
		<link href="https://example.com"><text>home</text></link>
		<number>3</number>
		<trkseg><trkpt lat="1" lon="2"/></trkseg>
		<trkseg/>
		<trkseg><trkpt lat="3" lon="4"/><trkpt lat="5" lon="6"/></trkseg>
	</trk>`))
	if err != nil {
		t.Fatal(err)
	}

	if trk.Name != "Morning ride" || trk.Description != "along the river" || trk.Number != 3 {
		t.Fatalf("unexpected descriptor: %+v", trk.Descriptor)
	}
	if trk.Link.Href != "https://example.com" || trk.Link.Text != "home" {
		t.Fatalf("unexpected link: %+v", trk.Link)
	}
	if n := len(trk.Segments()); n != 2 {
		t.Fatalf("expected empty trkseg to be skipped, got %d segments", n)
	}
	if n := len(trk.Points()); n != 3 {
		t.Fatalf("expected 3 points, got: %d", n)
	}

	if _, err := gpx.NewTrack().LoadFrom(node("rte")); !errors.Is(err, gpx.ErrStructureMismatch) {
		t.Fatalf("expected err: %v, got: %v", gpx.ErrStructureMismatch, err)
	}
}

func TestTrackLoadFromMalformedNumber(t *testing.T) {
	_, err := gpx.NewTrack().LoadFrom(parse(t, `<trk `+ns+`><number>one</number></trk>`))
	if err == nil {
		t.Fatalf("expected error for malformed number")
	}
}
