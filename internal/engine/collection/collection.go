package collection

import "fmt"

// Index addresses a single slot in a Collection. A slot's Generation is
// bumped whenever that slot is removed, so an Index captured before a
// removal compares unequal to the slot's current generation afterwards
// rather than silently resolving to whatever later took the slot.
type Index struct {
	Slot       uint32
	Generation uint32
}

// Direction selects how AdjustSelection moves the current index: Next and
// Previous wrap around the ends of the collection, while the Move* values
// clamp instead of wrapping, matching a typical "next tab"/"jump to first
// tab" split.
type Direction uint8

const (
	Next Direction = iota
	Previous
	MoveLeft
	MoveRight
	MoveToStart
	MoveToEnd
)

type entry[T any] struct {
	item       T
	generation uint32
	removed    bool
}

// Collection is an ordered, non-empty set of items of type T (invariant
// C1), addressed by generation-checked Index values, with exactly one item
// selected as current at all times (invariant C2). Slots are append-only:
// removing an item tombstones its slot rather than reusing it, so Slot
// values never alias a different item within the Collection's lifetime
// (invariant C3); the Generation field exists for the same defensive reason
// buffer.RevisionID exists, in case a future revision of this package does
// recycle slots.
type Collection[T any] struct {
	entries    []entry[T]
	current    int
	nameOf     func(T) string
	newScratch func() T
}

// New creates a Collection containing a single item, selected as current.
// nameOf extracts an item's display name for IndexWithName; newScratch
// creates a fresh placeholder item, used by RemoveIfPresent when removing
// the last remaining item would leave the collection empty.
func New[T any](first T, nameOf func(T) string, newScratch func() T) *Collection[T] {
	return &Collection[T]{
		entries:    []entry[T]{{item: first}},
		current:    0,
		nameOf:     nameOf,
		newScratch: newScratch,
	}
}

// Len returns the number of live (non-removed) items.
func (c *Collection[T]) Len() int {
	n := 0
	for _, e := range c.entries {
		if !e.removed {
			n++
		}
	}
	return n
}

// CurrentIndex returns the Index of the currently selected item.
func (c *Collection[T]) CurrentIndex() Index {
	e := c.entries[c.current]
	return Index{Slot: uint32(c.current), Generation: e.generation}
}

// Current returns the currently selected item and its Index.
func (c *Collection[T]) Current() (T, Index) {
	return c.entries[c.current].item, c.CurrentIndex()
}

// Get returns the item at idx, or the zero value and false if idx is out of
// range, removed, or stale (its Generation doesn't match the slot's
// current one).
func (c *Collection[T]) Get(idx Index) (T, bool) {
	var zero T
	if int(idx.Slot) >= len(c.entries) {
		return zero, false
	}
	e := c.entries[idx.Slot]
	if e.removed || e.generation != idx.Generation {
		return zero, false
	}
	return e.item, true
}

// GetMut returns the same item as Get. It exists as a distinct name to
// mark read/write access separately at call sites; in Go, T is already
// the reference type (e.g. *buffer.Buffer) a caller mutates through, so
// there is no separate mutable-borrow to return.
func (c *Collection[T]) GetMut(idx Index) (T, bool) {
	return c.Get(idx)
}

// PushAndSelectNew appends item as a new slot, selects it as current, and
// returns its Index.
func (c *Collection[T]) PushAndSelectNew(item T) Index {
	slot := len(c.entries)
	c.entries = append(c.entries, entry[T]{item: item})
	c.current = slot
	return Index{Slot: uint32(slot), Generation: 0}
}

// RemoveIfPresent removes the item at idx, reports whether it removed
// anything. If idx identified the current item, a neighbour (the next live
// item, falling back to the previous one) becomes current. If removing
// idx would leave the collection empty, a fresh scratch item from
// newScratch is pushed and selected first, preserving invariant C1.
func (c *Collection[T]) RemoveIfPresent(idx Index) bool {
	if int(idx.Slot) >= len(c.entries) {
		return false
	}
	e := &c.entries[idx.Slot]
	if e.removed || e.generation != idx.Generation {
		return false
	}

	if c.Len() == 1 {
		c.PushAndSelectNew(c.newScratch())
		// The push may have reallocated entries; re-take the pointer.
		e = &c.entries[idx.Slot]
	}

	wasCurrent := c.current == int(idx.Slot)
	var zero T
	e.item = zero
	e.removed = true
	e.generation++

	if wasCurrent {
		c.reselectNeighbour(int(idx.Slot))
	}
	return true
}

// reselectNeighbour picks a new current slot after removedSlot stopped
// being live: the next live slot in document order, or failing that the
// previous one.
func (c *Collection[T]) reselectNeighbour(removedSlot int) {
	for i := removedSlot + 1; i < len(c.entries); i++ {
		if !c.entries[i].removed {
			c.current = i
			return
		}
	}
	for i := removedSlot - 1; i >= 0; i-- {
		if !c.entries[i].removed {
			c.current = i
			return
		}
	}
}

// AdjustSelection moves the current index according to dir.
func (c *Collection[T]) AdjustSelection(dir Direction) {
	live := c.liveSlots()
	if len(live) <= 1 {
		return
	}
	pos := indexOf(live, c.current)
	if pos < 0 {
		return
	}

	switch dir {
	case Next:
		c.current = live[(pos+1)%len(live)]
	case Previous:
		c.current = live[(pos-1+len(live))%len(live)]
	case MoveLeft:
		if pos > 0 {
			c.current = live[pos-1]
		}
	case MoveRight:
		if pos < len(live)-1 {
			c.current = live[pos+1]
		}
	case MoveToStart:
		c.current = live[0]
	case MoveToEnd:
		c.current = live[len(live)-1]
	}
}

func (c *Collection[T]) liveSlots() []int {
	out := make([]int, 0, len(c.entries))
	for i, e := range c.entries {
		if !e.removed {
			out = append(out, i)
		}
	}
	return out
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// IndexWithName returns the Index of the first live item whose name
// (per nameOf) equals name.
func (c *Collection[T]) IndexWithName(name string) (Index, bool) {
	for i, e := range c.entries {
		if e.removed {
			continue
		}
		if c.nameOf(e.item) == name {
			return Index{Slot: uint32(i), Generation: e.generation}, true
		}
	}
	return Index{}, false
}

// All returns every live item's Index and item, in document order.
func (c *Collection[T]) All() []IndexedItem[T] {
	out := make([]IndexedItem[T], 0, len(c.entries))
	for i, e := range c.entries {
		if e.removed {
			continue
		}
		out = append(out, IndexedItem[T]{Index: Index{Slot: uint32(i), Generation: e.generation}, Item: e.item})
	}
	return out
}

// IndexedItem pairs an item with its Index, as returned by All.
type IndexedItem[T any] struct {
	Index Index
	Item  T
}

// String renders idx for diagnostics, e.g. in log fields.
func (idx Index) String() string {
	return fmt.Sprintf("%d@%d", idx.Slot, idx.Generation)
}
