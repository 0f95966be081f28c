package gpx

import (
	"strings"
	"time"

	"github.com/muktihari/gpx/xmltree"
	"golang.org/x/exp/slices"
)

// timeNow stamps the metadata time on save.
var timeNow = time.Now

// Metadata is the document level descriptive block.
type Metadata struct {
	Link        Link
	Name        string
	Description string
	Author      Author
	Bounds      Bounds

	// Time is the metadata time of a loaded file. It is informational only:
	// SaveTo always stamps the current time.
	Time time.Time

	Extensions *xmltree.Element

	keywords []string
}

// NewMetadata creates empty metadata.
func NewMetadata() *Metadata {
	return &Metadata{
		Bounds:     NewBounds(),
		Extensions: newExtensions(),
	}
}

// Keywords returns a copy of the keywords in insertion order.
func (m *Metadata) Keywords() []string { return slices.Clone(m.keywords) }

// AddKeyword appends keyword unless it is empty, already present, or holds
// a comma, which separates keywords once saved.
func (m *Metadata) AddKeyword(keyword string) bool {
	if keyword == "" || strings.Contains(keyword, ",") || slices.Contains(m.keywords, keyword) {
		return false
	}
	m.keywords = append(m.keywords, keyword)
	return true
}

// RemoveKeyword removes keyword, reporting whether it was present.
func (m *Metadata) RemoveKeyword(keyword string) bool {
	i := slices.Index(m.keywords, keyword)
	if i < 0 {
		return false
	}
	m.keywords = slices.Delete(m.keywords, i, i+1)
	return true
}

// SetKeywords replaces all keywords.
func (m *Metadata) SetKeywords(keywords ...string) {
	m.keywords = nil
	for _, k := range keywords {
		m.AddKeyword(k)
	}
}

// SaveTo appends <metadata> to gpx. The block is written only when link,
// name, description, author or keywords produce content; in that case the
// extensions, a fresh time stamp and the bounds follow. Otherwise nothing
// is written except non-empty extensions, which then go straight onto gpx.
func (m *Metadata) SaveTo(gpx *xmltree.Element) error {
	if err := expectName(gpx, "gpx"); err != nil {
		return err
	}

	metadata := xmltree.New(NamespaceGPX, "metadata")
	if err := m.Link.SaveTo(metadata); err != nil {
		return err
	}
	addText(metadata, "name", m.Name)
	addText(metadata, "desc", m.Description)
	if err := m.Author.SaveTo(metadata); err != nil {
		return err
	}
	if len(m.keywords) > 0 {
		metadata.AddText(elem("keywords"), strings.Join(m.keywords, ","))
	}

	if !metadata.HasElements() {
		saveExtensions(gpx, m.Extensions)
		return nil
	}

	saveExtensions(metadata, m.Extensions)
	addTime(metadata, "time", timeNow())
	if err := m.Bounds.SaveTo(metadata); err != nil {
		return err
	}
	gpx.AddChild(metadata)
	return nil
}

// LoadFrom reads the <metadata> child of gpx. Without one m is left as is.
func (m *Metadata) LoadFrom(gpx *xmltree.Element) (*Metadata, error) {
	if err := expectName(gpx, "gpx"); err != nil {
		return m, err
	}
	metadata := gpx.Child(elem("metadata"))
	if metadata == nil {
		return m, nil
	}

	if _, err := m.Link.LoadFrom(metadata); err != nil {
		return m, err
	}
	m.Name = readText(metadata, "name")
	m.Description = readText(metadata, "desc")

	if keywords := readText(metadata, "keywords"); keywords != "" {
		m.keywords = nil
		for _, k := range strings.Split(keywords, ",") {
			m.AddKeyword(k)
		}
	}

	if _, err := m.Author.LoadFrom(metadata); err != nil {
		return m, err
	}

	var err error
	if m.Time, err = readTime(metadata, "time"); err != nil {
		return m, err
	}
	if _, err := m.Bounds.LoadFrom(metadata); err != nil {
		return m, err
	}
	m.Extensions = loadExtensions(metadata, m.Extensions)

	return m, nil
}
