package gpx

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/muktihari/gpx/xmltree"
)

// Point is a single geographic sample. The same type serves waypoints
// (wpt), route points (rtept) and track points (trkpt).
type Point struct {
	Latitude          float64 // degrees, attribute "lat"
	Longitude         float64 // degrees, attribute "lon"
	Height            float64 // attribute "h"
	Course            float64 // attribute "cource"
	Elevation         float64
	Time              time.Time
	MagneticVariation float64
	GeoidHeight       float64
	Name              string
	Comment           string
	Description       string
	Source            string
	Symbol            string
	Type              string
	SatelliteCount    int

	Extensions *xmltree.Element
}

// pointParents maps the known point tags to the element they belong in.
var pointParents = map[string]string{
	"wpt":   "gpx",
	"trkpt": "trkseg",
	"rtept": "rte",
}

// NewPoint creates a point with every field absent.
func NewPoint() *Point {
	return &Point{
		Latitude:          math.NaN(),
		Longitude:         math.NaN(),
		Height:            math.NaN(),
		Course:            math.NaN(),
		Elevation:         math.NaN(),
		MagneticVariation: math.NaN(),
		GeoidHeight:       math.NaN(),
		SatelliteCount:    -1,
		Extensions:        newExtensions(),
	}
}

// NewPointAt creates a point at the given coordinates.
func NewPointAt(lat, lon float64) *Point {
	p := NewPoint()
	p.Latitude, p.Longitude = lat, lon
	return p
}

// Correct reports whether both coordinates are set. Their range is not checked.
func (p *Point) Correct() bool {
	return !math.IsNaN(p.Latitude) && !math.IsNaN(p.Longitude)
}

// SaveTo appends p to parent as an element named tag. For the tags wpt,
// trkpt and rtept parent must be gpx, trkseg and rte respectively. A point
// with every field absent appends nothing.
func (p *Point) SaveTo(parent *xmltree.Element, tag string) error {
	if want, ok := pointParents[tag]; ok {
		if err := expectName(parent, want); err != nil {
			return fmt.Errorf("%s: %w", tag, err)
		}
	}

	el := xmltree.New(NamespaceGPX, tag)
	setFloatAttr(el, "lat", p.Latitude)
	setFloatAttr(el, "lon", p.Longitude)
	setFloatAttr(el, "h", p.Height)
	setFloatAttr(el, "cource", p.Course)

	addTime(el, "time", p.Time)
	addFloat(el, "ele", p.Elevation)
	addFloat(el, "magvar", p.MagneticVariation)
	addFloat(el, "geoidheight", p.GeoidHeight)

	// Blank text is as good as absent for points.
	for _, f := range [...]struct{ local, s string }{
		{"name", p.Name},
		{"cmt", p.Comment},
		{"desc", p.Description},
		{"src", p.Source},
		{"sym", p.Symbol},
		{"type", p.Type},
	} {
		if strings.TrimSpace(f.s) != "" {
			el.AddText(elem(f.local), f.s)
		}
	}
	addCount(el, "sat", p.SatelliteCount)

	saveExtensions(el, p.Extensions)

	if !el.IsEmpty() {
		parent.AddChild(el)
	}
	return nil
}

// LoadFrom reads p from a wpt, trkpt or rtept element. Missing fields are
// reset to absent; Extensions is only replaced when el carries one.
func (p *Point) LoadFrom(el *xmltree.Element) (*Point, error) {
	if err := expectName(el, "wpt", "trkpt", "rtept"); err != nil {
		return p, err
	}

	var err error
	if p.Latitude, err = readFloatAttr(el, "lat"); err != nil {
		return p, err
	}
	if p.Longitude, err = readFloatAttr(el, "lon"); err != nil {
		return p, err
	}
	if p.Height, err = readFloatAttr(el, "h"); err != nil {
		return p, err
	}
	if p.Course, err = readFloatAttr(el, "cource"); err != nil {
		return p, err
	}

	if p.Elevation, err = readFloat(el, "ele"); err != nil {
		return p, err
	}
	if p.Time, err = readTime(el, "time"); err != nil {
		return p, err
	}
	if p.MagneticVariation, err = readFloat(el, "magvar"); err != nil {
		return p, err
	}
	if p.GeoidHeight, err = readFloat(el, "geoidheight"); err != nil {
		return p, err
	}
	p.Name = readText(el, "name")
	p.Comment = readText(el, "cmt")
	p.Description = readText(el, "desc")
	p.Source = readText(el, "src")
	p.Symbol = readText(el, "sym")
	p.Type = readText(el, "type")
	if p.SatelliteCount, err = readCount(el, "sat"); err != nil {
		return p, err
	}

	p.Extensions = loadExtensions(el, p.Extensions)

	return p, nil
}

// String formats p as "lat;lon;height".
func (p *Point) String() string {
	return formatFloat(p.Latitude) + ";" + formatFloat(p.Longitude) + ";" + formatFloat(p.Height)
}
