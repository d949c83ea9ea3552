package registry

import "fmt"

// collection is an insertion-ordered, capacity-limited list keyed by a
// unique id. Pointers returned by at/get stay valid until the next
// add or remove.
type collection[T any, K comparable] struct {
	kind  string
	limit int
	key   func(*T) K
	items []T
}

func newCollection[T any, K comparable](kind string, limit int, key func(*T) K) collection[T, K] {
	return collection[T, K]{kind: kind, limit: limit, key: key}
}

func (c *collection[T, K]) add(v T) error {
	if c.full() {
		return &CapacityError{Kind: c.kind, Limit: c.limit}
	}
	k := c.key(&v)
	if c.index(k) >= 0 {
		return &ValidationError{Field: "ID", Reason: fmt.Sprintf("%s %v already exists", c.kind, k), Err: ErrDuplicateID}
	}
	c.items = append(c.items, v)
	return nil
}

func (c *collection[T, K]) index(k K) int {
	for i := range c.items {
		if c.key(&c.items[i]) == k {
			return i
		}
	}
	return -1
}

func (c *collection[T, K]) get(k K) (*T, bool) {
	i := c.index(k)
	if i < 0 {
		return nil, false
	}
	return &c.items[i], true
}

func (c *collection[T, K]) remove(k K) (T, error) {
	i := c.index(k)
	if i < 0 {
		var zero T
		return zero, &NotFoundError{Kind: c.kind, ID: fmt.Sprint(k)}
	}
	v := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return v, nil
}

func (c *collection[T, K]) at(i int) *T { return &c.items[i] }

func (c *collection[T, K]) len() int { return len(c.items) }

func (c *collection[T, K]) full() bool { return c.limit > 0 && len(c.items) >= c.limit }

func (c *collection[T, K]) snapshot() []T {
	return append([]T(nil), c.items...)
}

func (c *collection[T, K]) clear() { c.items = nil }
