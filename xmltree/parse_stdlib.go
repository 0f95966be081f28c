package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// ParseStdlib is Parse built on encoding/xml. It is slower but produces
// the same tree.
func ParseStdlib(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root *Element
	var stack []*Element
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch elem := token.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, fmt.Errorf("<%s>: %w", elem.Name.Local, ErrTrailingElement)
			}
			el := &Element{Name: Name(elem.Name)}
			if len(elem.Attr) > 0 {
				el.Attrs = make([]Attr, len(elem.Attr))
				for i, attr := range elem.Attr {
					el.Attrs[i] = Attr{Name: Name(attr.Name), Value: attr.Value}
				}
			}
			if root == nil {
				root = el
			} else {
				addChild(stack[len(stack)-1], el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			if top := stack[len(stack)-1]; !top.HasElements() {
				top.Text += string(elem)
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}
