package gpx

import "golang.org/x/exp/slices"

// collection is an ordered list of owned entities. Membership is by
// identity: the same pointer is never stored twice, equal values may be.
type collection[T any] struct {
	items []*T
}

// all returns a copy of the item list; the items themselves are shared.
func (c *collection[T]) all() []*T { return slices.Clone(c.items) }

func (c *collection[T]) len() int { return len(c.items) }

func (c *collection[T]) add(v *T) {
	if v == nil || slices.Contains(c.items, v) {
		return
	}
	c.items = append(c.items, v)
}

func (c *collection[T]) remove(v *T) bool {
	i := slices.Index(c.items, v)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

func (c *collection[T]) clear() { c.items = nil }
