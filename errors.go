package gpx

import (
	"fmt"
	"strings"

	"github.com/muktihari/gpx/xmltree"
)

type errorString string

func (e errorString) Error() string { return string(e) }

const (
	// ErrStructureMismatch is returned when an entity is handed an element
	// that is not named the way it requires, e.g. a <wpt> given to Track.LoadFrom.
	ErrStructureMismatch = errorString("structure mismatch")
	// ErrMissingRoot is returned when a file holds no root element.
	ErrMissingRoot = errorString("missing root element")
)

// expectName checks that el is named by one of names. Only local names are
// compared.
func expectName(el *xmltree.Element, names ...string) error {
	got := "nil"
	if el != nil {
		for _, name := range names {
			if el.Name.Local == name {
				return nil
			}
		}
		got = el.Name.Local
	}
	return fmt.Errorf("%w: expected <%s>, got <%s>", ErrStructureMismatch, strings.Join(names, "|"), got)
}
