package gpx

import "github.com/muktihari/gpx/xmltree"

// linkParents are the elements a <link> may be attached to.
var linkParents = []string{"metadata", "trk", "rte"}

// Link is a reference to an external resource.
type Link struct {
	Href string // URI
	Text string
	Type string // MIME type
}

// IsEmpty reports whether none of the fields is set.
func (l *Link) IsEmpty() bool { return l.Href == "" && l.Text == "" && l.Type == "" }

// SaveTo appends a <link> child to parent, which must be metadata, trk or
// rte. Href is written as a plain attribute, Text and Type as attributes in
// the GPX namespace; each is omitted when empty.
func (l *Link) SaveTo(parent *xmltree.Element) error {
	if err := expectName(parent, linkParents...); err != nil {
		return err
	}
	if l.IsEmpty() {
		return nil
	}

	link := xmltree.New(NamespaceGPX, "link")
	if l.Href != "" {
		link.SetAttr(attr("href"), l.Href)
	}
	if l.Text != "" {
		link.SetAttr(elem("text"), l.Text)
	}
	if l.Type != "" {
		link.SetAttr(elem("type"), l.Type)
	}
	parent.AddChild(link)
	return nil
}

// LoadFrom reads l from the <link> child of parent. Text and type are also
// accepted as plain attributes or as child elements, the form the GPX
// schema itself uses.
func (l *Link) LoadFrom(parent *xmltree.Element) (*Link, error) {
	if err := expectName(parent, linkParents...); err != nil {
		return l, err
	}
	link := parent.Child(elem("link"))
	if link == nil {
		return l, nil
	}

	l.Href, _ = link.Attr(attr("href"))
	l.Text = linkField(link, "text")
	l.Type = linkField(link, "type")
	return l, nil
}

func linkField(link *xmltree.Element, local string) string {
	if v, ok := link.Attr(elem(local)); ok {
		return v
	}
	if v, ok := link.Attr(attr(local)); ok {
		return v
	}
	return readText(link, local)
}
