// Package gpx maps GPX 1.1 documents (waypoints, routes, tracks, metadata)
// to and from XML.
//
// The format has no optionality marker, so absent values are represented
// by sentinels: NaN for floating point fields, -1 for counters, "" for text
// and the zero time.Time. A field holding its sentinel is not written, and
// a field missing from the input loads as its sentinel. Entities that end
// up with nothing to write produce no element at all.
//
// Every entity maps itself with SaveTo, which appends to a parent
// xmltree.Element, and LoadFrom, which reads from its own element.
package gpx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/muktihari/gpx/xmltree"
)

// Namespaces declared on the root element.
const (
	NamespaceGPX                 = "http://www.topografix.com/GPX/1/1"
	NamespaceGPXX                = "http://www.garmin.com/xmlschemas/GpxExtensions/v3"
	NamespaceTrackPointExtension = "http://www.garmin.com/xmlschemas/TrackPointExtension/v1"
	NamespaceXSI                 = "http://www.w3.org/2001/XMLSchema-instance"
)

// Version is the only GPX version this package writes.
const Version = "1.1"

const schemaLocation = NamespaceGPX + " http://www.topografix.com/GPX/1/1/gpx.xsd " +
	NamespaceGPXX + " http://www.garmin.com/xmlschemas/GpxExtensionsv3.xsd " +
	NamespaceTrackPointExtension + " http://www.garmin.com/xmlschemas/TrackPointExtensionv1.xsd"

// elem names a child element in the GPX namespace.
func elem(local string) xmltree.Name { return xmltree.Name{Space: NamespaceGPX, Local: local} }

// attr names a plain, unqualified attribute.
func attr(local string) xmltree.Name { return xmltree.Name{Local: local} }

func newExtensions() *xmltree.Element { return xmltree.New(NamespaceGPX, "extensions") }

func hasContent(e *xmltree.Element) bool {
	return e != nil && (e.HasAttributes() || e.HasElements())
}

// loadExtensions returns a copy of el's extensions child, or current when there is none.
func loadExtensions(el, current *xmltree.Element) *xmltree.Element {
	if ext := el.Child(elem("extensions")); ext != nil {
		return ext.Clone()
	}
	return current
}

func saveExtensions(el, ext *xmltree.Element) {
	if hasContent(ext) {
		el.AddChild(ext.Clone())
	}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999", // no zone, taken as UTC
}

func formatTime(t time.Time) string { return t.Format(time.RFC3339Nano) }

func parseTime(s string) (t time.Time, err error) {
	for _, layout := range timeLayouts {
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return t, err
}

func addText(el *xmltree.Element, local, s string) {
	if s != "" {
		el.AddText(elem(local), s)
	}
}

func addFloat(el *xmltree.Element, local string, v float64) {
	if !math.IsNaN(v) {
		el.AddText(elem(local), formatFloat(v))
	}
}

func addCount(el *xmltree.Element, local string, v int) {
	if v >= 0 {
		el.AddText(elem(local), strconv.Itoa(v))
	}
}

func addTime(el *xmltree.Element, local string, t time.Time) {
	if !t.IsZero() {
		el.AddText(elem(local), formatTime(t))
	}
}

func setFloatAttr(el *xmltree.Element, local string, v float64) {
	if !math.IsNaN(v) {
		el.SetAttr(attr(local), formatFloat(v))
	}
}

func readText(el *xmltree.Element, local string) string {
	s, _ := el.ChildText(elem(local))
	return s
}

// value returns the trimmed text of a child element; blank counts as absent.
func value(el *xmltree.Element, local string) (string, bool) {
	s, ok := el.ChildText(elem(local))
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

func readFloat(el *xmltree.Element, local string) (float64, error) {
	s, ok := value(el, local)
	if !ok {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("%s: %w", local, err)
	}
	return v, nil
}

func readFloatAttr(el *xmltree.Element, local string) (float64, error) {
	s, ok := el.Attr(attr(local))
	if s = strings.TrimSpace(s); !ok || s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("%s: %w", local, err)
	}
	return v, nil
}

func readCount(el *xmltree.Element, local string) (int, error) {
	s, ok := value(el, local)
	if !ok {
		return -1, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("%s: %w", local, err)
	}
	return v, nil
}

func readTime(el *xmltree.Element, local string) (time.Time, error) {
	s, ok := value(el, local)
	if !ok {
		return time.Time{}, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", local, err)
	}
	return t, nil
}
