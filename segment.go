package gpx

import (
	"fmt"

	"github.com/muktihari/gpx/xmltree"
)

// TrackSegment is a run of track points recorded without interruption.
type TrackSegment struct {
	Extensions *xmltree.Element

	points collection[Point]
}

// NewTrackSegment creates a segment holding points.
func NewTrackSegment(points ...*Point) *TrackSegment {
	s := &TrackSegment{Extensions: newExtensions()}
	for _, p := range points {
		s.points.add(p)
	}
	return s
}

// Points returns the points of s in order.
func (s *TrackSegment) Points() []*Point { return s.points.all() }

// Len returns the number of points.
func (s *TrackSegment) Len() int { return s.points.len() }

// Create appends a new empty point and returns it.
func (s *TrackSegment) Create() *Point {
	p := NewPoint()
	s.points.add(p)
	return p
}

// Add appends p. Adding a point that is already in s does nothing.
func (s *TrackSegment) Add(p *Point) { s.points.add(p) }

// Remove removes p, reporting whether it was in s.
func (s *TrackSegment) Remove(p *Point) bool { return s.points.remove(p) }

// Clear removes all points.
func (s *TrackSegment) Clear() { s.points.clear() }

// SaveTo appends <trkseg> to trk. A segment none of whose points produced
// output is not written.
func (s *TrackSegment) SaveTo(trk *xmltree.Element) error {
	if err := expectName(trk, "trk"); err != nil {
		return err
	}

	trkseg := xmltree.New(NamespaceGPX, "trkseg")
	for i, p := range s.points.items {
		if err := p.SaveTo(trkseg, "trkpt"); err != nil {
			return fmt.Errorf("trkpt[%d]: %w", i, err)
		}
	}
	if !trkseg.HasElements() {
		return nil
	}
	saveExtensions(trkseg, s.Extensions)
	trk.AddChild(trkseg)
	return nil
}

// LoadFrom appends the points of a <trkseg> element to s. Points carrying
// neither attributes nor child elements are skipped.
func (s *TrackSegment) LoadFrom(trkseg *xmltree.Element) (*TrackSegment, error) {
	if err := expectName(trkseg, "trkseg"); err != nil {
		return s, err
	}

	s.Extensions = loadExtensions(trkseg, s.Extensions)

	for i, trkpt := range trkseg.ChildrenNamed(elem("trkpt")) {
		if trkpt.IsEmpty() {
			continue
		}
		p, err := NewPoint().LoadFrom(trkpt)
		if err != nil {
			return s, fmt.Errorf("trkpt[%d]: %w", i, err)
		}
		s.points.add(p)
	}
	return s, nil
}
