package gpx

import "github.com/muktihari/gpx/xmltree"

// Descriptor holds the descriptive fields shared by tracks and routes.
type Descriptor struct {
	Name        string
	Comment     string
	Description string
	Source      string
	Link        Link
	Number      int // -1 when absent
	Type        string
}

func newDescriptor() Descriptor { return Descriptor{Number: -1} }

// saveTo writes name, cmt, desc, src, link, number and type in that order,
// skipping absent ones.
func (d *Descriptor) saveTo(el *xmltree.Element) error {
	addText(el, "name", d.Name)
	addText(el, "cmt", d.Comment)
	addText(el, "desc", d.Description)
	addText(el, "src", d.Source)
	if err := d.Link.SaveTo(el); err != nil {
		return err
	}
	addCount(el, "number", d.Number)
	addText(el, "type", d.Type)
	return nil
}

func (d *Descriptor) loadFrom(el *xmltree.Element) error {
	d.Name = readText(el, "name")
	d.Comment = readText(el, "cmt")
	d.Description = readText(el, "desc")
	d.Source = readText(el, "src")
	if _, err := d.Link.LoadFrom(el); err != nil {
		return err
	}
	var err error
	if d.Number, err = readCount(el, "number"); err != nil {
		return err
	}
	d.Type = readText(el, "type")
	return nil
}
