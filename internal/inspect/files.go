// Package inspect summarizes GPX files and implements the gpx command line
// tool on top of package gpx.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muktihari/gpx"
	"github.com/muktihari/gpx/xmltree"
	"golang.org/x/exp/slices"
)

// Load reads a GPX file including its routes, which gpx.Document leaves to
// the caller.
func Load(path string) (*gpx.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := xmltree.Parse(f)
	if errors.Is(err, xmltree.ErrNoRoot) {
		err = fmt.Errorf("%w: %w", gpx.ErrMissingRoot, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	doc := gpx.New()
	if err := doc.LoadFrom(root); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i, rte := range root.ChildrenNamed(xmltree.Name{Space: gpx.NamespaceGPX, Local: "rte"}) {
		if !rte.HasElements() {
			continue
		}
		r, err := gpx.NewRoute().LoadFrom(rte)
		if err != nil {
			return nil, fmt.Errorf("%s: rte[%d]: %w", path, i, err)
		}
		doc.AddRoute(r)
	}
	return doc, nil
}

// Write serializes doc to w with its routes placed after the way points,
// ahead of the tracks.
func Write(w io.Writer, doc *gpx.Document, opts ...xmltree.Option) error {
	root := gpx.NewRoot()
	if err := doc.SaveTo(root); err != nil {
		return err
	}

	routes := gpx.NewRoot()
	for i, r := range doc.Routes() {
		if err := r.SaveTo(routes); err != nil {
			return fmt.Errorf("rte[%d]: %w", i, err)
		}
	}
	at := slices.IndexFunc(root.Children, func(el *xmltree.Element) bool {
		return el.Name.Space == gpx.NamespaceGPX && (el.Name.Local == "trk" || el.Name.Local == "extensions")
	})
	if at < 0 {
		at = len(root.Children)
	}
	root.Children = slices.Insert(root.Children, at, routes.Children...)

	return xmltree.Write(w, root, opts...)
}
