package xmltokenizer

// Token is a single lexical unit of an XML document, one of:
//   - <?xml version="1.0" encoding="UTF-8"?>
//   - <name attr="value" attr='value'>
//   - <name attr="value"/>
//   - </name>
//   - <!-- a comment -->
//   - <!DOCTYPE gpx>
//
// The character data up to the next tag, CDATA sections included, is carried
// verbatim in Data of the token before it. Everything in a Token aliases the
// Tokenizer buffer and is only valid until the next call to Token.
type Token struct {
	Name         Name   // Empty when a tag starts with "<?" or "<!".
	Attrs        []Attr // Nil when the tag has no attributes.
	Markup       []byte // Raw bytes of a "<?" or "<!" tag.
	Data         []byte // Raw character data following the tag, nil if none.
	SelfClosing  bool   // e.g. <extensions/>. Also true for "<?" and "<!" tags.
	IsEndElement bool   // e.g. </trkpt>.
}

// IsMarkup reports whether t is a processing instruction, comment or
// directive rather than an element.
func (t *Token) IsMarkup() bool { return len(t.Name.Full) == 0 }

// Attr represents an XML attribute.
type Attr struct {
	Name  Name
	Value []byte
}

// Name represents an XML name <prefix:local>. Prefixes are not resolved
// here, that is left to the caller.
type Name struct {
	Prefix []byte
	Local  []byte
	Full   []byte // "prefix:local", or just "local" when there is no prefix.
}
