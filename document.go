package gpx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muktihari/gpx/xmltree"
)

// Document is a whole GPX file.
type Document struct {
	Creator    string
	Time       time.Time
	Metadata   *Metadata
	Extensions *xmltree.Element

	wayPoints collection[Point]
	routes    collection[Route]
	tracks    collection[Track]
}

// New creates an empty document.
func New() *Document {
	return &Document{
		Metadata:   NewMetadata(),
		Extensions: newExtensions(),
	}
}

// Open loads the GPX file at path into a new document.
func Open(path string) (*Document, error) {
	d := New()
	if err := d.Load(path); err != nil {
		return nil, err
	}
	return d, nil
}

// Read decodes a GPX document from r into a new document.
func Read(r io.Reader, opts ...xmltree.Option) (*Document, error) {
	d := New()
	if err := d.Decode(r, opts...); err != nil {
		return nil, err
	}
	return d, nil
}

// Load reads the GPX file at path into d.
func (d *Document) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := d.Decode(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Decode parses r and loads its root element into d.
func (d *Document) Decode(r io.Reader, opts ...xmltree.Option) error {
	root, err := xmltree.Parse(r, opts...)
	if errors.Is(err, xmltree.ErrNoRoot) {
		return fmt.Errorf("%w: %w", ErrMissingRoot, err)
	}
	if err != nil {
		return err
	}
	return d.LoadFrom(root)
}

// Save writes d to the file at path, replacing its content.
func (d *Document) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return d.Write(f)
}

// Write serializes d as a complete XML document to w.
func (d *Document) Write(w io.Writer, opts ...xmltree.Option) error {
	gpx := NewRoot()
	if err := d.SaveTo(gpx); err != nil {
		return err
	}
	return xmltree.Write(w, gpx, opts...)
}

// NewRoot creates the <gpx> root element with the namespace declarations,
// schema location and version every saved document carries.
func NewRoot() *xmltree.Element {
	gpx := xmltree.New(NamespaceGPX, "gpx")
	gpx.Attrs = []xmltree.Attr{
		{Name: xmltree.Name{Space: NamespaceXSI, Local: "schemaLocation"}, Value: schemaLocation},
		{Name: xmltree.Name{Space: xmltree.NamespaceXMLNS, Local: "xsi"}, Value: NamespaceXSI},
		{Name: xmltree.Name{Space: xmltree.NamespaceXMLNS, Local: "gpxx"}, Value: NamespaceGPXX},
		{Name: xmltree.Name{Space: xmltree.NamespaceXMLNS, Local: "gpxtpx"}, Value: NamespaceTrackPointExtension},
		{Name: attr("version"), Value: Version},
	}
	return gpx
}

// SaveTo writes d into gpx: creator, time, metadata, waypoints, tracks and
// extensions. Empty metadata bounds are replaced by the box around all
// track points in the output; d itself is not modified. Routes are not
// written, use Route.SaveTo for them.
func (d *Document) SaveTo(gpx *xmltree.Element) error {
	if err := expectName(gpx, "gpx"); err != nil {
		return err
	}

	if d.Creator != "" {
		gpx.SetAttr(attr("creator"), d.Creator)
	}
	addTime(gpx, "time", d.Time)

	metadata := NewMetadata()
	if d.Metadata != nil {
		*metadata = *d.Metadata
	}
	if metadata.Bounds.IsEmpty() {
		metadata.Bounds = d.ComputeBounds()
	}
	if err := metadata.SaveTo(gpx); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}

	for i, p := range d.wayPoints.items {
		if err := p.SaveTo(gpx, "wpt"); err != nil {
			return fmt.Errorf("wpt[%d]: %w", i, err)
		}
	}
	for i, t := range d.tracks.items {
		if err := t.SaveTo(gpx); err != nil {
			return fmt.Errorf("trk[%d]: %w", i, err)
		}
	}

	saveExtensions(gpx, d.Extensions)
	return nil
}

// LoadFrom reads d from a <gpx> element. Waypoints and tracks are appended
// to the ones d already holds; those without child elements are skipped.
// Routes are not read, use Route.LoadFrom for them.
func (d *Document) LoadFrom(gpx *xmltree.Element) error {
	if err := expectName(gpx, "gpx"); err != nil {
		return err
	}

	d.Creator, _ = gpx.Attr(attr("creator"))
	var err error
	if d.Time, err = readTime(gpx, "time"); err != nil {
		return err
	}

	if d.Metadata == nil {
		d.Metadata = NewMetadata()
	}
	if _, err := d.Metadata.LoadFrom(gpx); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}

	for i, wpt := range gpx.ChildrenNamed(elem("wpt")) {
		if !wpt.HasElements() {
			continue
		}
		p, err := NewPoint().LoadFrom(wpt)
		if err != nil {
			return fmt.Errorf("wpt[%d]: %w", i, err)
		}
		d.wayPoints.add(p)
	}
	for i, trk := range gpx.ChildrenNamed(elem("trk")) {
		if !trk.HasElements() {
			continue
		}
		t, err := NewTrack().LoadFrom(trk)
		if err != nil {
			return fmt.Errorf("trk[%d]: %w", i, err)
		}
		d.tracks.add(t)
	}

	d.Extensions = loadExtensions(gpx, d.Extensions)
	return nil
}

// ComputeBounds returns the box around every point of every track. It is
// empty when no point has coordinates.
func (d *Document) ComputeBounds() Bounds {
	var points []*Point
	for _, t := range d.tracks.items {
		points = append(points, t.Points()...)
	}
	return boundsOf(points)
}

// WayPoints returns the waypoints of d in order.
func (d *Document) WayPoints() []*Point { return d.wayPoints.all() }

// CreateWayPoint appends a new empty waypoint and returns it.
func (d *Document) CreateWayPoint() *Point {
	p := NewPoint()
	d.wayPoints.add(p)
	return p
}

// AddWayPoint appends p unless d already holds it.
func (d *Document) AddWayPoint(p *Point) { d.wayPoints.add(p) }

// RemoveWayPoint removes p, reporting whether it was in d.
func (d *Document) RemoveWayPoint(p *Point) bool { return d.wayPoints.remove(p) }

// Routes returns the routes of d in order.
func (d *Document) Routes() []*Route { return d.routes.all() }

// CreateRoute appends a new empty route and returns it.
func (d *Document) CreateRoute() *Route {
	r := NewRoute()
	d.routes.add(r)
	return r
}

// AddRoute appends r unless d already holds it.
func (d *Document) AddRoute(r *Route) { d.routes.add(r) }

// RemoveRoute removes r, reporting whether it was in d.
func (d *Document) RemoveRoute(r *Route) bool { return d.routes.remove(r) }

// Tracks returns the tracks of d in order.
func (d *Document) Tracks() []*Track { return d.tracks.all() }

// CreateTrack appends a new empty track and returns it.
func (d *Document) CreateTrack() *Track {
	t := NewTrack()
	d.tracks.add(t)
	return t
}

// AddTrack appends t unless d already holds it.
func (d *Document) AddTrack(t *Track) { d.tracks.add(t) }

// RemoveTrack removes t, reporting whether it was in d.
func (d *Document) RemoveTrack(t *Track) bool { return d.tracks.remove(t) }
