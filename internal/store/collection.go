package store

// record is implemented by every entity the store holds.
type record interface {
	RecordID() int
}

// collection is an ordered list of records. Order is insertion order and is
// what positional removal refers to.
type collection[T record] struct {
	items []T
}

// nextID returns max(len, highest id) + 1. Deleting the record holding the
// highest id and then adding gives that id out again, and other delete/add
// sequences can likewise hand out an id that was previously assigned.
func (c *collection[T]) nextID() int {
	maxID := 0
	for _, it := range c.items {
		if id := it.RecordID(); id > maxID {
			maxID = id
		}
	}
	return max(len(c.items), maxID) + 1
}

// indexOf returns the position of the first record with id, or -1.
func (c *collection[T]) indexOf(id int) int {
	for i, it := range c.items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) get(id int) (T, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *collection[T]) list() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) append(item T) {
	c.items = append(c.items, item)
}

// update applies fn to a copy of the record with id and stores the copy only
// when fn succeeds, so a failed edit leaves the record untouched.
func (c *collection[T]) update(id int, fn func(*T) error) (T, bool, error) {
	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false, nil
	}
	cp := c.items[i]
	if err := fn(&cp); err != nil {
		return c.items[i], true, err
	}
	c.items[i] = cp
	return cp, true, nil
}

func (c *collection[T]) removeAt(pos int) (T, bool) {
	if pos < 0 || pos >= len(c.items) {
		var zero T
		return zero, false
	}
	removed := c.items[pos]
	c.items = append(c.items[:pos:pos], c.items[pos+1:]...)
	return removed, true
}

func (c *collection[T]) remove(id int) (T, bool) {
	return c.removeAt(c.indexOf(id))
}

func (c *collection[T]) reset(items []T) {
	if items == nil {
		items = []T{}
	}
	c.items = items
}
