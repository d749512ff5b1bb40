package dynamic

import (
	"hash/maphash"

	"github.com/aristanetworks/gomap"
)

// Map is the ordered map alternative: keys and values are both Variables,
// equality and hashing follow canonical ordering (Compare), and iteration
// order is insertion order. gomap itself makes no ordering guarantee, so
// order and values track insertion order alongside it for O(1) lookup.
type Map struct {
	m      *gomap.Map[Variable, Variable]
	order  []Variable
	values []Variable
}

// NewMap returns an empty ordered map.
func NewMap() *Map { return NewMapWithSizeHint(0) }

// NewMapWithSizeHint returns an empty ordered map preallocated for size
// entries.
func NewMapWithSizeHint(size int) *Map {
	return &Map{
		m: gomap.NewHint[Variable, Variable](size, mapKeyEqual, mapKeyHash),
	}
}

func mapKeyEqual(a, b Variable) bool { return Equal(a, b) }

func mapKeyHash(seed maphash.Seed, v Variable) uint64 { return hashVariable(seed, v) }

// Get returns the value associated with a key canonically equal to key.
func (d *Map) Get(key Variable) (Variable, bool) {
	return d.m.Get(key)
}

// Set associates value with key, replacing any prior value for an equal
// key without disturbing that key's position in iteration order. A new
// key is appended to the end of the iteration order.
func (d *Map) Set(key, value Variable) {
	if _, had := d.m.Get(key); !had {
		d.order = append(d.order, key)
		d.values = append(d.values, value)
	} else {
		for i, k := range d.order {
			if Equal(k, key) {
				d.values[i] = value
				break
			}
		}
	}
	d.m.Set(key, value)
}

// Delete removes the entry for key, if present.
func (d *Map) Delete(key Variable) {
	if _, had := d.m.Get(key); !had {
		return
	}
	d.m.Delete(key)
	for i, k := range d.order {
		if Equal(k, key) {
			d.order = append(d.order[:i], d.order[i+1:]...)
			d.values = append(d.values[:i], d.values[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (d *Map) Len() int { return len(d.order) }

// Iter calls yield for every entry in insertion order, stopping early if
// yield returns false.
func (d *Map) Iter(yield func(key, value Variable) bool) {
	for i, k := range d.order {
		if !yield(k, d.values[i]) {
			return
		}
	}
}
