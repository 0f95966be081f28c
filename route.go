package gpx

import (
	"fmt"

	"github.com/muktihari/gpx/xmltree"
)

// Route is a planned, ordered list of points leading to a destination.
type Route struct {
	Descriptor

	Extensions *xmltree.Element

	points collection[Point]
}

// NewRoute creates an empty route.
func NewRoute() *Route {
	return &Route{
		Descriptor: newDescriptor(),
		Extensions: newExtensions(),
	}
}

// Points returns the points of r in order.
func (r *Route) Points() []*Point { return r.points.all() }

// Create appends a new empty point and returns it.
func (r *Route) Create() *Point {
	p := NewPoint()
	r.points.add(p)
	return p
}

// Add appends p. Adding a point that is already in r does nothing.
func (r *Route) Add(p *Point) { r.points.add(p) }

// Remove removes p, reporting whether it was in r.
func (r *Route) Remove(p *Point) bool { return r.points.remove(p) }

// Clear removes all points.
func (r *Route) Clear() { r.points.clear() }

// SaveTo appends <rte> to gpx unless it ends up without child elements.
func (r *Route) SaveTo(gpx *xmltree.Element) error {
	if err := expectName(gpx, "gpx"); err != nil {
		return err
	}

	rte := xmltree.New(NamespaceGPX, "rte")
	if err := r.Descriptor.saveTo(rte); err != nil {
		return err
	}
	for i, p := range r.points.items {
		if err := p.SaveTo(rte, "rtept"); err != nil {
			return fmt.Errorf("rtept[%d]: %w", i, err)
		}
	}
	saveExtensions(rte, r.Extensions)

	if rte.HasElements() {
		gpx.AddChild(rte)
	}
	return nil
}

// LoadFrom reads r from a <rte> element, appending its points. Points
// without child elements are skipped, even when they have coordinates.
func (r *Route) LoadFrom(rte *xmltree.Element) (*Route, error) {
	if err := expectName(rte, "rte"); err != nil {
		return r, err
	}

	if err := r.Descriptor.loadFrom(rte); err != nil {
		return r, err
	}
	r.Extensions = loadExtensions(rte, r.Extensions)

	for i, rtept := range rte.ChildrenNamed(elem("rtept")) {
		if !rtept.HasElements() {
			continue
		}
		p, err := NewPoint().LoadFrom(rtept)
		if err != nil {
			return r, fmt.Errorf("rtept[%d]: %w", i, err)
		}
		r.points.add(p)
	}
	return r, nil
}
