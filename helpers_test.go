package gpx_test

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/muktihari/gpx"
	"github.com/muktihari/gpx/xmltree"
)

const ns = `xmlns="` + gpx.NamespaceGPX + `"`

// equateNaN makes NaN equal to NaN, the absent value of float fields.
var equateNaN = cmp.Comparer(func(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
})

func parse(t *testing.T, s string) *xmltree.Element {
	t.Helper()
	el, err := xmltree.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return el
}

func render(t *testing.T, el *xmltree.Element) string {
	t.Helper()
	var buf strings.Builder
	if err := xmltree.Write(&buf, el, xmltree.WithHeader(false), xmltree.WithIndent("")); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func node(local string) *xmltree.Element { return xmltree.New(gpx.NamespaceGPX, local) }

func gpxAttr(local string) xmltree.Name { return xmltree.Name{Local: local} }

func gpxName(local string) xmltree.Name { return xmltree.Name{Space: gpx.NamespaceGPX, Local: local} }
