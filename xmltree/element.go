// Package xmltree is a small namespace-aware XML element tree. It is the
// node type the gpx package reads from and writes into: element and
// attribute names are fully resolved, text is unescaped, and namespace
// declarations are kept as attributes the way encoding/xml models them.
package xmltree

import "golang.org/x/exp/slices"

// Well-known namespaces.
const (
	NamespaceXML   = "http://www.w3.org/XML/1998/namespace"
	NamespaceXMLNS = "xmlns"
)

// Name is a resolved XML name. Space holds the namespace URI, not a prefix.
type Name struct {
	Space string
	Local string
}

func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

// Attr is an XML attribute. A namespace declaration xmlns:p="uri" is
// Attr{Name{"xmlns", "p"}, "uri"} and a default declaration xmlns="uri" is
// Attr{Name{"", "xmlns"}, "uri"}.
type Attr struct {
	Name  Name
	Value string
}

// IsNamespaceDecl reports whether a declares a namespace prefix.
func (a Attr) IsNamespaceDecl() bool {
	return a.Name.Space == NamespaceXMLNS || (a.Name.Space == "" && a.Name.Local == "xmlns")
}

// Element is a node of the tree. Text is the character data directly
// following the start tag; mixed content after child elements is not kept.
type Element struct {
	Name     Name
	Attrs    []Attr
	Children []*Element
	Text     string
}

// New creates an empty element.
func New(space, local string) *Element {
	return &Element{Name: Name{Space: space, Local: local}}
}

// HasElements reports whether e has at least one child element.
func (e *Element) HasElements() bool { return len(e.Children) > 0 }

// HasAttributes reports whether e has at least one attribute, namespace
// declarations included.
func (e *Element) HasAttributes() bool { return len(e.Attrs) > 0 }

// IsEmpty reports whether e has neither attributes nor child elements.
func (e *Element) IsEmpty() bool { return !e.HasAttributes() && !e.HasElements() }

// Child returns the first child element named name, or nil.
func (e *Element) Child(name Name) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all child elements named name in document order.
func (e *Element) ChildrenNamed(name Name) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the text of the first child named name.
func (e *Element) ChildText(name Name) (string, bool) {
	c := e.Child(name)
	if c == nil {
		return "", false
	}
	return c.Text, true
}

// Attr returns the value of the attribute named name.
func (e *Element) Attr(name Name) (string, bool) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			return e.Attrs[i].Value, true
		}
	}
	return "", false
}

// SetAttr sets the attribute named name, replacing an existing value.
func (e *Element) SetAttr(name Name, value string) {
	i := slices.IndexFunc(e.Attrs, func(a Attr) bool { return a.Name == name })
	if i >= 0 {
		e.Attrs[i].Value = value
		return
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// AddChild appends c to the children of e.
func (e *Element) AddChild(c *Element) { e.Children = append(e.Children, c) }

// AddText appends a child element named name holding text and returns it.
func (e *Element) AddText(name Name, text string) *Element {
	c := &Element{Name: name, Text: text}
	e.AddChild(c)
	return c
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := &Element{
		Name:  e.Name,
		Attrs: slices.Clone(e.Attrs),
		Text:  e.Text,
	}
	if len(e.Children) > 0 {
		c.Children = make([]*Element, len(e.Children))
		for i, child := range e.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}
