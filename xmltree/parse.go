package xmltree

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muktihari/gpx/internal/xmltokenizer"
	"golang.org/x/net/html/charset"
)

// declarationPeekSize is how far Parse looks ahead for an encoding declaration.
const declarationPeekSize = 256

// Parse reads a whole XML document from r and returns its root element.
// Input declared in a non-UTF-8 encoding is transcoded first.
func Parse(r io.Reader, opts ...Option) (*Element, error) {
	o := defaultOptions()
	for i := range opts {
		opts[i](&o)
	}

	r, err := decodeCharset(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}

	tok := xmltokenizer.New(r,
		xmltokenizer.WithReadBufferSize(o.readBufferSize),
		xmltokenizer.WithAutoGrowBufferMaxLimitSize(o.autoGrowBufferMaxLimitSize),
	)

	return build(tok)
}

type frame struct {
	el    *Element
	full  string            // qualified name as written, matched against the end tag
	scope map[string]string // prefix -> namespace URI
}

var rootScope = map[string]string{"xml": NamespaceXML}

// build assembles the tree. Character data belongs to the innermost open
// element until that element gets its first child; whitespace before the
// first child is dropped and text after it is ignored.
func build(tok *xmltokenizer.Tokenizer) (*Element, error) {
	var root *Element
	var stack []frame
	for {
		token, err := tok.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch {
		case token.IsMarkup():
		case token.IsEndElement:
			if len(stack) == 0 || stack[len(stack)-1].full != string(token.Name.Full) {
				return nil, fmt.Errorf("</%s>: %w", token.Name.Full, ErrMismatchedEnd)
			}
			stack = stack[:len(stack)-1]
		default:
			if root != nil && len(stack) == 0 {
				return nil, fmt.Errorf("<%s>: %w", token.Name.Full, ErrTrailingElement)
			}

			scope := rootScope
			if len(stack) > 0 {
				scope = stack[len(stack)-1].scope
			}
			el, scope, err := newElement(&token, scope)
			if err != nil {
				return nil, fmt.Errorf("<%s>: %w", token.Name.Full, err)
			}

			if root == nil {
				root = el
			} else {
				addChild(stack[len(stack)-1].el, el)
			}
			if !token.SelfClosing {
				stack = append(stack, frame{el: el, full: string(token.Name.Full), scope: scope})
			}
		}

		if len(stack) == 0 || len(token.Data) == 0 {
			continue
		}
		top := &stack[len(stack)-1]
		text, err := charData(token.Data)
		if err != nil {
			return nil, fmt.Errorf("<%s>: %w", top.full, err)
		}
		if !top.el.HasElements() {
			top.el.Text += text
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("<%s> not closed: %w", stack[len(stack)-1].full, io.ErrUnexpectedEOF)
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// addChild appends child to parent, dropping the indentation parent
// collected before its first child.
func addChild(parent, child *Element) {
	if !parent.HasElements() && isSpace(parent.Text) {
		parent.Text = ""
	}
	parent.AddChild(child)
}

func isSpace(s string) bool { return strings.Trim(s, " \t\r\n") == "" }

// newElement converts a start token into an Element, returning the
// namespace scope in effect for its children.
func newElement(token *xmltokenizer.Token, scope map[string]string) (*Element, map[string]string, error) {
	var declared bool
	for i := range token.Attrs {
		attr := &token.Attrs[i]
		var prefix string
		switch {
		case string(attr.Name.Full) == "xmlns":
		case string(attr.Name.Prefix) == "xmlns":
			prefix = string(attr.Name.Local)
		default:
			continue
		}
		if !declared {
			scope = cloneScope(scope)
			declared = true
		}
		uri, err := unescape(attr.Value)
		if err != nil {
			return nil, nil, err
		}
		scope[prefix] = uri
	}

	el := &Element{Name: resolve(scope, token.Name.Prefix, token.Name.Local, true)}
	if len(token.Attrs) > 0 {
		el.Attrs = make([]Attr, 0, len(token.Attrs))
	}
	for i := range token.Attrs {
		attr := &token.Attrs[i]
		var name Name
		switch {
		case string(attr.Name.Full) == "xmlns":
			name = Name{Local: "xmlns"}
		case string(attr.Name.Prefix) == "xmlns":
			name = Name{Space: NamespaceXMLNS, Local: string(attr.Name.Local)}
		default:
			name = resolve(scope, attr.Name.Prefix, attr.Name.Local, false)
		}
		value, err := unescape(attr.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("attr %s: %w", attr.Name.Full, err)
		}
		el.Attrs = append(el.Attrs, Attr{Name: name, Value: value})
	}

	return el, scope, nil
}

// resolve maps a prefix to its namespace. Unprefixed attributes have no
// namespace, unprefixed elements take the default one, and unknown
// prefixes are kept as they are.
func resolve(scope map[string]string, prefix, local []byte, isElement bool) Name {
	name := Name{Local: string(local)}
	if len(prefix) == 0 && !isElement {
		return name
	}
	if uri, ok := scope[string(prefix)]; ok {
		name.Space = uri
	} else {
		name.Space = string(prefix)
	}
	return name
}

func cloneScope(scope map[string]string) map[string]string {
	m := make(map[string]string, len(scope)+1)
	for k, v := range scope {
		m[k] = v
	}
	return m
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// charData decodes the raw character data following a tag. CDATA sections
// are kept verbatim, the text around them is unescaped.
func charData(b []byte) (string, error) {
	const prefix, suffix = "<![CDATA[", "]]>"
	if !bytes.Contains(b, []byte(prefix)) {
		return unescape(b)
	}

	var sb strings.Builder
	for {
		text, rest, found := bytes.Cut(b, []byte(prefix))
		s, err := unescape(text)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
		if !found {
			return sb.String(), nil
		}
		cdata, rest, _ := bytes.Cut(rest, []byte(suffix))
		newlines.WriteString(&sb, string(cdata))
		b = rest
	}
}

// unescape expands the five predefined entities and character references,
// and normalizes line endings to "\n".
func unescape(b []byte) (string, error) {
	if bytes.IndexByte(b, '&') < 0 && bytes.IndexByte(b, '\r') < 0 {
		return string(b), nil
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for {
		text, rest, found := bytes.Cut(b, []byte("&"))
		newlines.WriteString(&sb, string(text))
		if !found {
			return sb.String(), nil
		}
		ref, rest, found := bytes.Cut(rest, []byte(";"))
		if !found {
			return "", fmt.Errorf("unterminated reference %q: %w", shorten(ref), ErrInvalidEntity)
		}
		r, ok := entity(string(ref))
		if !ok {
			return "", fmt.Errorf("&%s;: %w", ref, ErrInvalidEntity)
		}
		sb.WriteRune(r)
		b = rest
	}
}

func entity(name string) (rune, bool) {
	switch name {
	case "lt":
		return '<', true
	case "gt":
		return '>', true
	case "amp":
		return '&', true
	case "apos":
		return '\'', true
	case "quot":
		return '"', true
	}

	num, ok := strings.CutPrefix(name, "#")
	if !ok {
		return 0, false
	}
	base := 10
	if hex, ok := strings.CutPrefix(num, "x"); ok {
		num, base = hex, 16
	}
	n, err := strconv.ParseUint(num, base, 32)
	if err != nil || !isInCharacterRange(rune(n)) {
		return 0, false
	}
	return rune(n), true
}

// isInCharacterRange reports whether r may appear in an XML document.
func isInCharacterRange(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

func shorten(b []byte) []byte {
	if len(b) > 16 {
		return b[:16]
	}
	return b
}

// decodeCharset wraps br with a transcoder when the XML declaration names
// an encoding other than UTF-8.
func decodeCharset(br *bufio.Reader) (io.Reader, error) {
	head, err := br.Peek(declarationPeekSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}

	switch label := strings.ToLower(declaredEncoding(head)); label {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return br, nil
	default:
		r, err := charset.NewReaderLabel(label, br)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", label, err)
		}
		return r, nil
	}
}

// declaredEncoding extracts the encoding pseudo-attribute of a leading
// <?xml ... ?> declaration.
func declaredEncoding(head []byte) string {
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(head, []byte("<?xml")) {
		return ""
	}
	end := bytes.Index(head, []byte("?>"))
	if end < 0 {
		return ""
	}
	decl := head[:end]

	i := bytes.Index(decl, []byte("encoding"))
	if i < 0 {
		return ""
	}
	rest := bytes.TrimLeft(decl[i+len("encoding"):], " \t\r\n")
	if len(rest) == 0 || rest[0] != '=' {
		return ""
	}
	rest = bytes.TrimLeft(rest[1:], " \t\r\n")
	if len(rest) == 0 || (rest[0] != '"' && rest[0] != '\'') {
		return ""
	}
	quote := rest[0]
	rest = rest[1:]
	j := bytes.IndexByte(rest, quote)
	if j < 0 {
		return ""
	}
	return string(rest[:j])
}
