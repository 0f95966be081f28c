package gpx

import (
	"fmt"

	"github.com/muktihari/gpx/xmltree"
)

// Track is an ordered list of track segments with descriptive fields.
type Track struct {
	Descriptor

	Extensions *xmltree.Element

	segments collection[TrackSegment]
}

// NewTrack creates an empty track.
func NewTrack() *Track {
	return &Track{
		Descriptor: newDescriptor(),
		Extensions: newExtensions(),
	}
}

// Segments returns the segments of t in order.
func (t *Track) Segments() []*TrackSegment { return t.segments.all() }

// Points returns the points of all segments in order.
func (t *Track) Points() []*Point {
	var points []*Point
	for _, s := range t.segments.items {
		points = append(points, s.points.items...)
	}
	return points
}

// Create appends a new empty segment and returns it.
func (t *Track) Create() *TrackSegment {
	s := NewTrackSegment()
	t.segments.add(s)
	return s
}

// Add appends s. Adding a segment that is already in t does nothing.
func (t *Track) Add(s *TrackSegment) { t.segments.add(s) }

// Remove removes s, reporting whether it was in t.
func (t *Track) Remove(s *TrackSegment) bool { return t.segments.remove(s) }

// Clear removes all segments.
func (t *Track) Clear() { t.segments.clear() }

// SaveTo appends <trk> to gpx: the descriptive fields, the segments, then
// the extensions. A track that produces no content is not written.
func (t *Track) SaveTo(gpx *xmltree.Element) error {
	if err := expectName(gpx, "gpx"); err != nil {
		return err
	}

	trk := xmltree.New(NamespaceGPX, "trk")
	if err := t.Descriptor.saveTo(trk); err != nil {
		return err
	}
	for i, s := range t.segments.items {
		if err := s.SaveTo(trk); err != nil {
			return fmt.Errorf("trkseg[%d]: %w", i, err)
		}
	}
	saveExtensions(trk, t.Extensions)

	if !trk.IsEmpty() {
		gpx.AddChild(trk)
	}
	return nil
}

// LoadFrom reads t from a <trk> element, appending its segments. Segments
// without child elements are skipped.
func (t *Track) LoadFrom(trk *xmltree.Element) (*Track, error) {
	if err := expectName(trk, "trk"); err != nil {
		return t, err
	}

	if err := t.Descriptor.loadFrom(trk); err != nil {
		return t, err
	}
	t.Extensions = loadExtensions(trk, t.Extensions)

	for i, trkseg := range trk.ChildrenNamed(elem("trkseg")) {
		if !trkseg.HasElements() {
			continue
		}
		s, err := NewTrackSegment().LoadFrom(trkseg)
		if err != nil {
			return t, fmt.Errorf("trkseg[%d]: %w", i, err)
		}
		t.segments.add(s)
	}
	return t, nil
}
