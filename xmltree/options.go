package xmltree

type errorString string

func (e errorString) Error() string { return string(e) }

const (
	// ErrNoRoot is returned when the input holds no element at all.
	ErrNoRoot = errorString("no root element")
	// ErrMismatchedEnd is returned when an end tag does not close the
	// innermost open element.
	ErrMismatchedEnd = errorString("mismatched end element")
	// ErrTrailingElement is returned when a second top-level element follows the root.
	ErrTrailingElement = errorString("element after root")
	// ErrInvalidEntity is returned for references other than the predefined
	// entities and well-formed character references.
	ErrInvalidEntity = errorString("invalid entity reference")
)

type options struct {
	readBufferSize             int
	autoGrowBufferMaxLimitSize int
	indent                     string
	header                     bool
}

func defaultOptions() options {
	return options{
		indent: "  ",
		header: true,
	}
}

// Option configures Parse and Write.
type Option func(o *options)

// WithReadBufferSize sets the tokenizer read buffer size used by Parse.
func WithReadBufferSize(size int) Option {
	return func(o *options) { o.readBufferSize = size }
}

// WithAutoGrowBufferMaxLimitSize caps the size a single token may take in
// Parse. Default: 1 MB.
func WithAutoGrowBufferMaxLimitSize(size int) Option {
	return func(o *options) { o.autoGrowBufferMaxLimitSize = size }
}

// WithIndent sets the indentation Write uses per nesting level. An empty
// indent writes the whole tree on a single line. Default: two spaces.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// WithHeader controls whether Write emits the <?xml ...?> declaration.
// Default: true.
func WithHeader(header bool) Option {
	return func(o *options) { o.header = header }
}
