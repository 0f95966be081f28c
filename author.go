package gpx

import (
	"strings"

	"github.com/muktihari/gpx/xmltree"
)

// Author describes the person or organization that created a document.
type Author struct {
	Name string
}

// SaveTo appends <author><name>..</name></author> to metadata when Name is
// not blank.
func (a *Author) SaveTo(metadata *xmltree.Element) error {
	if err := expectName(metadata, "metadata"); err != nil {
		return err
	}
	if strings.TrimSpace(a.Name) == "" {
		return nil
	}
	author := xmltree.New(NamespaceGPX, "author")
	author.AddText(elem("name"), a.Name)
	metadata.AddChild(author)
	return nil
}

// LoadFrom reads the author of metadata. Name is left untouched when the
// file has none.
func (a *Author) LoadFrom(metadata *xmltree.Element) (*Author, error) {
	if err := expectName(metadata, "metadata"); err != nil {
		return a, err
	}
	if author := metadata.Child(elem("author")); author != nil {
		if name := readText(author, "name"); name != "" {
			a.Name = name
		}
	}
	return a, nil
}
