// Package xmltokenizer splits an XML stream into tokens without building
// any intermediate representation. It does not resolve namespaces, expand
// entities or validate nesting; xmltree does that on top of it.
package xmltokenizer

import (
	"errors"
	"fmt"
	"io"
)

type errorString string

func (e errorString) Error() string { return string(e) }

const (
	errAutoGrowBufferExceedMaxLimit = errorString("auto grow buffer exceed max limit")
)

const (
	defaultReadBufferSize      = 4 << 10
	autoGrowBufferMaxLimitSize = 1000 << 10
	defaultAttrsBufferSize     = 16
)

// Tokenizer is a XML tokenizer.
type Tokenizer struct {
	r       io.Reader // reader provided by the client
	n       int64     // the n read bytes counter
	options options   // tokenizer's options
	buf     []byte    // buffer that will grow as needed, large enough to hold a token (default max limit: 1MB)
	cur     int       // cursor byte position
	err     error     // last encountered error
	token   Token     // shared token
	tagLen  int       // length of the tag part of the last raw token
}

type options struct {
	readBufferSize             int
	autoGrowBufferMaxLimitSize int
}

func defaultOptions() options {
	return options{
		readBufferSize:             defaultReadBufferSize,
		autoGrowBufferMaxLimitSize: autoGrowBufferMaxLimitSize,
	}
}

// Option is Tokenizer option.
type Option func(o *options)

// WithReadBufferSize directs XML Tokenizer to this buffer size
// to read from the io.Reader. Default: 4096.
func WithReadBufferSize(size int) Option {
	if size <= 0 {
		size = defaultReadBufferSize
	}
	return func(o *options) { o.readBufferSize = size }
}

// WithAutoGrowBufferMaxLimitSize directs XML Tokenizer to limit
// auto grow buffer to not grow exceed this limit. Default: 1 MB.
func WithAutoGrowBufferMaxLimitSize(size int) Option {
	if size <= 0 {
		size = autoGrowBufferMaxLimitSize
	}
	return func(o *options) { o.autoGrowBufferMaxLimitSize = size }
}

// New creates new XML tokenizer.
func New(r io.Reader, opts ...Option) *Tokenizer {
	t := new(Tokenizer)
	t.Reset(r, opts...)
	return t
}

// Reset resets the Tokenizer, maintaining storage for
// future tokenization to reduce memory alloc.
func (t *Tokenizer) Reset(r io.Reader, opts ...Option) {
	t.r, t.err = r, nil
	t.n, t.cur = 0, 0

	t.options = defaultOptions()
	for i := range opts {
		opts[i](&t.options)
	}

	if cap(t.token.Attrs) < defaultAttrsBufferSize {
		t.token.Attrs = make([]Attr, 0, defaultAttrsBufferSize)
	}
	if t.options.readBufferSize > t.options.autoGrowBufferMaxLimitSize {
		t.options.autoGrowBufferMaxLimitSize = t.options.readBufferSize
	}

	switch size := t.options.readBufferSize; {
	case cap(t.buf) >= size+defaultReadBufferSize:
		t.buf = t.buf[:size:cap(t.buf)]
	default:
		// Extra capacity leaves room to memmove the remaining bytes.
		t.buf = make([]byte, size, size+defaultReadBufferSize)
	}
}

// Token returns either a valid token or an error. The returned token is
// only valid before the next Token or RawToken call.
func (t *Tokenizer) Token() (token Token, err error) {
	if t.err != nil {
		return token, t.err
	}

	b, err := t.RawToken()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			err = fmt.Errorf("byte pos %d: %w", t.n, err)
		}
		if len(b) == 0 || errors.Is(err, io.ErrUnexpectedEOF) {
			return
		}
		t.err = err
	}

	t.clearToken()

	tag, data := b[:t.tagLen], b[t.tagLen:]
	if tag = t.consumeNonTagIdentifier(tag); len(tag) > 0 {
		tag = t.consumeTagName(tag)
		t.consumeAttrs(tag)
	}
	t.token.Data = data

	token = t.token
	if len(token.Attrs) == 0 {
		token.Attrs = nil
	}
	if len(token.Data) == 0 {
		token.Data = nil
	}

	return token, nil
}

// RawToken returns token in its raw bytes: the tag followed by whatever
// character data comes before the next tag. At the end, it may return the
// last token bytes together with an error. The returned bytes are only
// valid before the next Token or RawToken call.
func (t *Tokenizer) RawToken() (b []byte, err error) {
	if t.err != nil {
		return nil, t.err
	}

	t.tagLen = 0
	var pivot, pos = t.cur, t.cur
	var openclose int // zero means open '<' and close '>' is matched.
	var quote byte    // the quote char of the attribute value being scanned, if any.
	var comment bool  // inside "<!--", where only "-->" ends the tag.
	for {
		if pos >= len(t.buf) {
			pivot, pos = t.memmoveRemainingBytes(pivot)
			if err = t.manageBuffer(); err != nil {
				if openclose != 0 && errors.Is(err, io.EOF) {
					err = io.ErrUnexpectedEOF
				}
				t.err = err
				return t.buf[pivot:pos], err
			}
		}
		c := t.buf[pos]
		if comment {
			if c == '>' && pos-pivot >= 6 && t.buf[pos-1] == '-' && t.buf[pos-2] == '-' {
				return t.closeTag(pivot, pos), err
			}
			pos++
			continue
		}
		switch c {
		case '"', '\'':
			// Only attribute values of element tags are quoted; directives may
			// contain a lone apostrophe.
			if openclose != 1 || t.buf[pivot+1] == '!' {
				break
			}
			switch quote {
			case 0:
				quote = c
			case c:
				quote = 0
			}
		case '-':
			if openclose == 1 && pos-pivot == 3 && string(t.buf[pivot:pos+1]) == "<!--" {
				comment = true
			}
		case '<':
			if quote != 0 {
				break
			}
			if openclose == 0 {
				pivot = pos
			}
			openclose++
		case '>':
			if quote != 0 {
				break
			}
			if openclose--; openclose != 0 {
				break
			}
			return t.closeTag(pivot, pos), err
		}
		pos++
	}
}

// closeTag records the tag spanning pivot to pos and extends it with the
// character data that follows.
func (t *Tokenizer) closeTag(pivot, pos int) []byte {
	t.tagLen = pos + 1 - pivot
	pivot, pos = t.parseCharData(pivot, pos)
	t.cur = pos + 1
	return t.buf[pivot : pos+1 : cap(t.buf)]
}

// parseCharData extends the token ending at pos with the CharData and
// <![CDATA[ ]]> sections that follow it, returning the new pivot and position.
func (t *Tokenizer) parseCharData(pivot, pos int) (newPivot, newPos int) {
	const prefix = "<![CDATA["
	lt := -1 // position of a '<' that may start a CDATA section.
	var cdata bool
	for i := pos + 1; ; i++ {
		if i >= len(t.buf) {
			var shift int
			pivot, shift, t.err = t.more(pivot)
			i, pos = i-shift, pos-shift
			if lt >= 0 {
				lt -= shift
			}
			if t.err != nil {
				if lt >= 0 && errors.Is(t.err, io.EOF) {
					t.err = io.ErrUnexpectedEOF
				}
				break
			}
		}
		c := t.buf[i]
		switch {
		case cdata:
			if c == '>' && i-lt >= 11 && t.buf[i-1] == ']' && t.buf[i-2] == ']' {
				lt, cdata = -1, false
				pos = i
			}
		case lt >= 0:
			if c != prefix[i-lt] {
				return pivot, pos
			}
			if i-lt == len(prefix)-1 {
				cdata = true
			}
		case c == '<':
			lt = i
		default:
			pos = i
		}
	}
	return pivot, pos
}

// more moves the bytes from pivot on to the front of the buffer and reads
// further input. Positions after pivot move back by shift.
func (t *Tokenizer) more(pivot int) (newPivot, shift int, err error) {
	newPivot, _ = t.memmoveRemainingBytes(pivot)
	return newPivot, pivot - newPivot, t.manageBuffer()
}

func (t *Tokenizer) memmoveRemainingBytes(pivot int) (cur, last int) {
	if pivot == 0 {
		return t.cur, len(t.buf)
	}
	n := copy(t.buf, t.buf[pivot:])
	t.buf = t.buf[:n:cap(t.buf)]
	t.cur = 0
	return t.cur, len(t.buf)
}

func (t *Tokenizer) manageBuffer() error {
	growSize := len(t.buf) + t.options.readBufferSize
	start, end := len(t.buf), growSize
	switch {
	case growSize <= cap(t.buf): // Grow by reslice
		t.buf = t.buf[:growSize:cap(t.buf)]
	default: // Grow by make new alloc
		if growSize > t.options.autoGrowBufferMaxLimitSize {
			return fmt.Errorf("could not grow buffer to %d, max limit is set to %d: %w",
				growSize, t.options.autoGrowBufferMaxLimitSize, errAutoGrowBufferExceedMaxLimit)
		}
		buf := make([]byte, growSize)
		n := copy(buf, t.buf)
		t.buf = buf
		start, end = n, cap(t.buf)
	}

	n, err := io.ReadAtLeast(t.r, t.buf[start:end], 1)
	t.buf = t.buf[: start+n : cap(t.buf)]
	t.n += int64(n)

	return err
}

func (t *Tokenizer) clearToken() {
	t.token.Name.Prefix = nil
	t.token.Name.Local = nil
	t.token.Name.Full = nil
	t.token.Attrs = t.token.Attrs[:0]
	t.token.Markup = nil
	t.token.Data = nil
	t.token.SelfClosing = false
	t.token.IsEndElement = false
}

// consumeNonTagIdentifier keeps tags starting with "<?" or "<!" as raw markup.
func (t *Tokenizer) consumeNonTagIdentifier(b []byte) []byte {
	if len(b) < 2 || (string(b[:2]) != "<?" && string(b[:2]) != "<!") {
		return b
	}
	t.token.Markup = b
	t.token.SelfClosing = true
	return nil
}

func (t *Tokenizer) consumeTagName(b []byte) []byte {
	var pos, fullpos int
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '<':
			if i+1 < len(b) && b[i+1] == '/' {
				t.token.IsEndElement = true
				i++
			}
			pos = i + 1
			fullpos = i + 1
		case ':':
			t.token.Name.Prefix = trim(b[pos:i])
			pos = i + 1
		case '>', ' ', '\t', '\r', '\n': // e.g. <gpx>, <trkpt lat="-7.1872750" lon="110.3450230">
			if b[i] == '>' && b[i-1] == '/' { // <name/>
				i--
			}
			t.token.Name.Local = trim(b[pos:i])
			t.token.Name.Full = trim(b[fullpos:i])
			return b[i:]
		}
	}
	return b
}

func (t *Tokenizer) consumeAttrs(b []byte) []byte {
	var prefix, local, full []byte
	var pos, fullpos int
	for i := 0; i < len(b); i++ {
		switch c := b[i]; c {
		case ':':
			prefix = trim(b[pos:i])
			pos = i + 1
		case '=':
			local = trim(b[pos:i])
			full = trim(b[fullpos:i])
			pos = i + 1
		case '"', '\'':
			start := i + 1
			for i++; i < len(b) && b[i] != c; i++ {
			}
			if i >= len(b) { // unterminated value
				return nil
			}
			if len(full) != 0 { // ignore malformed attr
				t.token.Attrs = append(t.token.Attrs, Attr{
					Name:  Name{Prefix: prefix, Local: local, Full: full},
					Value: b[start:i],
				})
			}
			prefix, local, full = nil, nil, nil
			pos = i + 1
			fullpos = i + 1
		case '/':
			t.token.SelfClosing = true
		case '>':
			return b[i+1:]
		}
	}
	return b
}

func trim(b []byte) []byte {
	b = trimPrefix(b)
	b = trimSuffix(b)
	return b
}

func trimPrefix(b []byte) []byte {
	var start int
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\r':
			if i+1 < len(b) && b[i+1] == '\n' {
				start += 2
				i++
			}
		case '\n', ' ', '\t':
			start++
		default:
			return b[start:]
		}
	}
	return b[start:]
}

func trimSuffix(b []byte) []byte {
	var end int = len(b)
	for i := len(b) - 1; i >= 0; i-- {
		switch b[i] {
		case '\n':
			end--
			if i-1 > 0 && b[i-1] == '\r' {
				end--
			}
		case ' ', '\t':
			end--
		default:
			return b[:end]
		}
	}
	return b[:end]
}
