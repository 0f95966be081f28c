package gpx

import (
	"math"

	"github.com/muktihari/gpx/xmltree"
)

// Bounds is a latitude/longitude bounding box in degrees.
type Bounds struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// NewBounds returns empty bounds.
func NewBounds() Bounds {
	return Bounds{
		MinLatitude:  math.NaN(),
		MaxLatitude:  math.NaN(),
		MinLongitude: math.NaN(),
		MaxLongitude: math.NaN(),
	}
}

// IsEmpty reports whether all four values are NaN.
func (b *Bounds) IsEmpty() bool {
	return math.IsNaN(b.MinLatitude) &&
		math.IsNaN(b.MaxLatitude) &&
		math.IsNaN(b.MinLongitude) &&
		math.IsNaN(b.MaxLongitude)
}

// Extend grows b to cover lat and lon. NaN coordinates are ignored, each
// axis independently.
func (b *Bounds) Extend(lat, lon float64) {
	if !math.IsNaN(lat) {
		if math.IsNaN(b.MinLatitude) || lat < b.MinLatitude {
			b.MinLatitude = lat
		}
		if math.IsNaN(b.MaxLatitude) || lat > b.MaxLatitude {
			b.MaxLatitude = lat
		}
	}
	if !math.IsNaN(lon) {
		if math.IsNaN(b.MinLongitude) || lon < b.MinLongitude {
			b.MinLongitude = lon
		}
		if math.IsNaN(b.MaxLongitude) || lon > b.MaxLongitude {
			b.MaxLongitude = lon
		}
	}
}

// boundsOf computes the box around points. The result is empty unless
// both axes got at least one value.
func boundsOf(points []*Point) Bounds {
	b := NewBounds()
	for _, p := range points {
		b.Extend(p.Latitude, p.Longitude)
	}
	if math.IsNaN(b.MinLatitude) || math.IsNaN(b.MinLongitude) {
		return NewBounds()
	}
	return b
}

// SaveTo appends <bounds> to metadata unless b is empty. The minimum
// longitude attribute is spelled "mimlon", as existing readers expect.
func (b *Bounds) SaveTo(metadata *xmltree.Element) error {
	if err := expectName(metadata, "metadata"); err != nil {
		return err
	}
	if b.IsEmpty() {
		return nil
	}
	bounds := xmltree.New(NamespaceGPX, "bounds")
	bounds.SetAttr(attr("minlat"), formatFloat(b.MinLatitude))
	bounds.SetAttr(attr("mimlon"), formatFloat(b.MinLongitude))
	bounds.SetAttr(attr("maxlat"), formatFloat(b.MaxLatitude))
	bounds.SetAttr(attr("maxlon"), formatFloat(b.MaxLongitude))
	metadata.AddChild(bounds)
	return nil
}

// LoadFrom reads the <bounds> child of metadata. Both "mimlon" and
// "minlon" are accepted for the minimum longitude.
func (b *Bounds) LoadFrom(metadata *xmltree.Element) (*Bounds, error) {
	if err := expectName(metadata, "metadata"); err != nil {
		return b, err
	}
	bounds := metadata.Child(elem("bounds"))
	if bounds == nil {
		return b, nil
	}

	var err error
	if b.MinLatitude, err = readFloatAttr(bounds, "minlat"); err != nil {
		return b, err
	}
	if b.MaxLatitude, err = readFloatAttr(bounds, "maxlat"); err != nil {
		return b, err
	}
	minlon := "mimlon"
	if _, ok := bounds.Attr(attr(minlon)); !ok {
		minlon = "minlon"
	}
	if b.MinLongitude, err = readFloatAttr(bounds, minlon); err != nil {
		return b, err
	}
	if b.MaxLongitude, err = readFloatAttr(bounds, "maxlon"); err != nil {
		return b, err
	}
	return b, nil
}
