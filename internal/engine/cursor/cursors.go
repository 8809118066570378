package cursor

import (
	"sort"

	"github.com/quillx/quill/internal/engine/position"
	"github.com/quillx/quill/internal/engine/rope"
)

// CursorSet is an ordered, non-empty collection of cursors sorted
// descending by Position. Overlapping cursors are always merged; at
// least one cursor always exists.
type CursorSet struct {
	cursors []Cursor
}

// NewCursorSet creates a set containing a single cursor.
func NewCursorSet(c Cursor) *CursorSet {
	return &CursorSet{cursors: []Cursor{c}}
}

// NewCursorSetFromSlice builds a CursorSet from an arbitrary slice of
// cursors, normalizing (sorting descending, merging overlaps). An empty
// slice yields a single zero-width cursor at the document start.
func NewCursorSetFromSlice(cursors []Cursor) *CursorSet {
	if len(cursors) == 0 {
		return NewCursorSet(NewCursor(Position{}))
	}
	cs := &CursorSet{cursors: append([]Cursor(nil), cursors...)}
	cs.normalize()
	return cs
}

// Primary returns the first (topmost in descending order, i.e. last in
// document order) cursor.
func (cs *CursorSet) Primary() Cursor {
	return cs.cursors[0]
}

// All returns a copy of every cursor, in descending order.
func (cs *CursorSet) All() []Cursor {
	out := make([]Cursor, len(cs.cursors))
	copy(out, cs.cursors)
	return out
}

// Count returns the number of cursors.
func (cs *CursorSet) Count() int { return len(cs.cursors) }

// IsMulti reports whether more than one cursor exists.
func (cs *CursorSet) IsMulti() bool { return len(cs.cursors) > 1 }

// Get returns the cursor at index, or the zero Cursor if out of range.
func (cs *CursorSet) Get(index int) Cursor {
	if index < 0 || index >= len(cs.cursors) {
		return Cursor{}
	}
	return cs.cursors[index]
}

// Add inserts c into the set, merging with any cursor whose range
// overlaps it (I1).
func (cs *CursorSet) Add(c Cursor) {
	cs.cursors = append(cs.cursors, c)
	cs.normalize()
}

// ReplaceWith discards every cursor and replaces the set with a single c.
func (cs *CursorSet) ReplaceWith(c Cursor) {
	cs.cursors = []Cursor{c}
}

// SetAll replaces every cursor with the given slice, normalizing it. An
// empty slice is rejected in favor of a single cursor at the document
// start, preserving I2.
func (cs *CursorSet) SetAll(cursors []Cursor) {
	if len(cursors) == 0 {
		cs.cursors = []Cursor{NewCursor(Position{})}
		return
	}
	cs.cursors = append([]Cursor(nil), cursors...)
	cs.normalize()
}

// ForEach calls f for each cursor with its index, in descending order.
func (cs *CursorSet) ForEach(f func(index int, c Cursor)) {
	for i, c := range cs.cursors {
		f(i, c)
	}
}

// MapInPlace applies f to every cursor, then re-normalizes.
func (cs *CursorSet) MapInPlace(f func(c Cursor) Cursor) {
	for i, c := range cs.cursors {
		cs.cursors[i] = f(c)
	}
	cs.normalize()
}

// HasSelection reports whether any cursor carries a non-empty selection.
func (cs *CursorSet) HasSelection() bool {
	for _, c := range cs.cursors {
		if !c.IsEmpty() {
			return true
		}
	}
	return false
}

// CollapseAll collapses every cursor's selection to a zero-width caret.
func (cs *CursorSet) CollapseAll() {
	cs.MapInPlace(Cursor.Collapse)
}

// Clamp clamps every cursor to valid positions in r.
func (cs *CursorSet) Clamp(r rope.Rope) {
	for i, c := range cs.cursors {
		cs.cursors[i] = c.Clamp(r)
	}
	cs.normalize()
}

// Clone returns an independent copy of the set.
func (cs *CursorSet) Clone() *CursorSet {
	return &CursorSet{cursors: append([]Cursor(nil), cs.cursors...)}
}

// Ranges returns every cursor's Range(), in descending order.
func (cs *CursorSet) Ranges() []position.Range {
	out := make([]position.Range, len(cs.cursors))
	for i, c := range cs.cursors {
		out[i] = c.Range()
	}
	return out
}

// Equals reports whether two sets contain the same cursors in the same
// order.
func (cs *CursorSet) Equals(other *CursorSet) bool {
	if other == nil || cs.Count() != other.Count() {
		return false
	}
	for i, c := range cs.cursors {
		if !c.Equals(other.cursors[i]) {
			return false
		}
	}
	return true
}

// normalize sorts cursors descending by Position and merges overlapping
// or touching ranges. Descending rather than ascending order is a
// deliberate choice: the edit generator (package editgen) walks cursors
// from end to start and needs descending order to accumulate its reverse
// delta correctly.
func (cs *CursorSet) normalize() {
	if len(cs.cursors) <= 1 {
		return
	}

	sort.Slice(cs.cursors, func(i, j int) bool {
		pi, pj := cs.cursors[i].Range(), cs.cursors[j].Range()
		if !pi.Start.Equal(pj.Start) {
			return pj.Start.Less(pi.Start)
		}
		return pj.End.Less(pi.End)
	})

	merged := cs.cursors[:1]
	for _, c := range cs.cursors[1:] {
		last := &merged[len(merged)-1]
		lastRange, curRange := last.Range(), c.Range()
		if !curRange.End.Less(lastRange.Start) {
			*last = merge(*last, c)
		} else {
			merged = append(merged, c)
		}
	}
	cs.cursors = merged
}
