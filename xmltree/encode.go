package xmltree

import (
	"bufio"
	"encoding/xml"
	"io"
	"sort"
	"strconv"
	"strings"
)

const header = `<?xml version="1.0" encoding="utf-8"?>`

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")

// Write serializes the tree rooted at root to w.
//
// Prefixes are chosen from the namespace declarations present on the tree.
// An element in an undeclared namespace declares it as the default
// namespace; an attribute in an undeclared namespace gets a generated
// prefix (p1, p2, ...).
func Write(w io.Writer, root *Element, opts ...Option) error {
	o := defaultOptions()
	for i := range opts {
		opts[i](&o)
	}

	enc := &encoder{w: bufio.NewWriter(w), indent: o.indent}
	if o.header {
		enc.w.WriteString(header)
		enc.newline(0)
	}
	enc.element(root, namespaces{"xml": NamespaceXML}, 0)
	if o.indent != "" {
		enc.w.WriteByte('\n')
	}
	return enc.w.Flush()
}

// namespaces maps prefixes to namespace URIs; "" is the default namespace.
type namespaces map[string]string

func (ns namespaces) with(prefix, uri string) namespaces {
	m := make(namespaces, len(ns)+1)
	for k, v := range ns {
		m[k] = v
	}
	m[prefix] = uri
	return m
}

// prefixFor returns the smallest non-empty prefix bound to uri.
func (ns namespaces) prefixFor(uri string) (string, bool) {
	var prefixes []string
	for p, u := range ns {
		if p != "" && u == uri {
			prefixes = append(prefixes, p)
		}
	}
	if len(prefixes) == 0 {
		return "", false
	}
	sort.Strings(prefixes)
	return prefixes[0], true
}

type encoder struct {
	w         *bufio.Writer
	indent    string
	generated int // counter for generated attribute prefixes
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.w.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.w.WriteString(e.indent)
	}
}

func (e *encoder) element(el *Element, scope namespaces, depth int) {
	for _, attr := range el.Attrs {
		switch {
		case attr.Name.Space == NamespaceXMLNS:
			scope = scope.with(attr.Name.Local, attr.Value)
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			scope = scope.with("", attr.Value)
		}
	}

	var decls []Attr

	var prefix string
	switch space := el.Name.Space; {
	case space == scope[""]:
	case space == "":
		scope = scope.with("", "")
		decls = append(decls, Attr{Name: Name{Local: "xmlns"}})
	default:
		if p, ok := scope.prefixFor(space); ok {
			prefix = p
			break
		}
		if _, ok := el.Attr(Name{Local: "xmlns"}); ok {
			// The default namespace is taken by an explicit declaration.
			prefix = e.generatePrefix(scope)
			scope = scope.with(prefix, space)
			decls = append(decls, Attr{Name: Name{Space: NamespaceXMLNS, Local: prefix}, Value: space})
			break
		}
		scope = scope.with("", space)
		decls = append(decls, Attr{Name: Name{Local: "xmlns"}, Value: space})
	}

	names := make([]string, len(el.Attrs))
	for i, attr := range el.Attrs {
		switch {
		case attr.Name.Space == NamespaceXMLNS:
			names[i] = "xmlns:" + attr.Name.Local
		case attr.Name.Space == "":
			names[i] = attr.Name.Local
		default:
			p, ok := scope.prefixFor(attr.Name.Space)
			if !ok {
				p = e.generatePrefix(scope)
				scope = scope.with(p, attr.Name.Space)
				decls = append(decls, Attr{Name: Name{Space: NamespaceXMLNS, Local: p}, Value: attr.Name.Space})
			}
			names[i] = p + ":" + attr.Name.Local
		}
	}

	qname := el.Name.Local
	if prefix != "" {
		qname = prefix + ":" + el.Name.Local
	}

	e.w.WriteByte('<')
	e.w.WriteString(qname)
	for _, decl := range decls {
		name := "xmlns"
		if decl.Name.Space == NamespaceXMLNS {
			name += ":" + decl.Name.Local
		}
		e.attr(name, decl.Value)
	}
	for i, attr := range el.Attrs {
		e.attr(names[i], attr.Value)
	}

	if len(el.Children) == 0 && el.Text == "" {
		e.w.WriteString("/>")
		return
	}
	e.w.WriteByte('>')
	textEscaper.WriteString(e.w, el.Text)
	// Indenting children of an element with text would change the text.
	indent := el.Text == ""
	for _, child := range el.Children {
		if indent {
			e.newline(depth + 1)
		}
		e.element(child, scope, depth+1)
	}
	if indent && len(el.Children) > 0 {
		e.newline(depth)
	}
	e.w.WriteString("</")
	e.w.WriteString(qname)
	e.w.WriteByte('>')
}

func (e *encoder) attr(name, value string) {
	e.w.WriteByte(' ')
	e.w.WriteString(name)
	e.w.WriteString(`="`)
	xml.EscapeText(e.w, []byte(value))
	e.w.WriteByte('"')
}

func (e *encoder) generatePrefix(scope namespaces) string {
	for {
		e.generated++
		p := "p" + strconv.Itoa(e.generated)
		if _, taken := scope[p]; !taken {
			return p
		}
	}
}
