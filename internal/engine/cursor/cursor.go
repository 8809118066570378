package cursor

import (
	"fmt"

	"github.com/quillx/quill/internal/engine/position"
	"github.com/quillx/quill/internal/engine/rope"
)

// Position is a re-export of position.Position for convenience within this
// package's public API.
type Position = position.Position

// CharOffset is a re-export of rope.CharOffset for convenience.
type CharOffset = rope.CharOffset

// State records whether the last move attempt against this cursor was
// blocked by a buffer boundary. It exists purely to suppress sticky-offset
// updates on a blocked move: a repeated Up at line 0 should not reset the
// column the user was navigating towards.
type State uint8

const (
	// StateNone is the default: the last move succeeded normally.
	StateNone State = iota
	// StatePressedAgainstWall means the last move attempt was blocked
	// (e.g. Left at buffer start, Up at line 0).
	StatePressedAgainstWall
)

// Cursor is an insertion point with an optional selection anchor. Cursor
// is an immutable value type: every mutating method returns a new Cursor.
type Cursor struct {
	position     Position
	highlight    *Position // nil means a zero-width caret
	stickyOffset uint32
	state        State
}

// NewCursor creates a zero-width cursor at the given position.
func NewCursor(p Position) Cursor {
	return Cursor{position: p, stickyOffset: p.Offset}
}

// NewCursorAt creates a zero-width cursor on line 0 at the given in-line
// char offset. Prefer NewCursor with a resolved Position where a rope is
// available.
func NewCursorAt(offsetOnLine uint32) Cursor {
	return NewCursor(Position{Offset: offsetOnLine})
}

// Position returns the cursor's caret position.
func (c Cursor) Position() Position { return c.position }

// Highlight returns the selection anchor and whether one is set.
func (c Cursor) Highlight() (Position, bool) {
	if c.highlight == nil {
		return Position{}, false
	}
	return *c.highlight, true
}

// StickyOffset returns the column the cursor wants to return to across
// vertical moves through shorter lines.
func (c Cursor) StickyOffset() uint32 { return c.stickyOffset }

// State returns whether the last move against this cursor was blocked.
func (c Cursor) State() State { return c.state }

// IsEmpty reports whether this cursor has no selection (a bare caret).
func (c Cursor) IsEmpty() bool { return c.highlight == nil }

// Range returns the selection's [start, end) position range. For a
// zero-width cursor, start == end == Position().
func (c Cursor) Range() position.Range {
	if c.highlight == nil {
		return position.Range{Start: c.position, End: c.position}
	}
	return position.Range{
		Start: position.Min(c.position, *c.highlight),
		End:   position.Max(c.position, *c.highlight),
	}
}

// WithPosition returns a copy with Position replaced, Highlight preserved.
func (c Cursor) WithPosition(p Position) Cursor {
	c.position = p
	return c
}

// WithHighlight returns a copy with Highlight set to p.
func (c Cursor) WithHighlight(p Position) Cursor {
	h := p
	c.highlight = &h
	return c
}

// WithoutHighlight returns a copy with no selection (collapsed to a
// zero-width caret at Position()).
func (c Cursor) WithoutHighlight() Cursor {
	c.highlight = nil
	return c
}

// WithStickyOffset returns a copy with StickyOffset replaced.
func (c Cursor) WithStickyOffset(offset uint32) Cursor {
	c.stickyOffset = offset
	return c
}

// WithState returns a copy with State replaced.
func (c Cursor) WithState(s State) Cursor {
	c.state = s
	return c
}

// Collapse collapses any selection to a zero-width caret at Position(),
// clearing State.
func (c Cursor) Collapse() Cursor {
	c.highlight = nil
	c.state = StateNone
	return c
}

// Clamp clamps Position and Highlight (if any) to valid positions in r.
func (c Cursor) Clamp(r rope.Rope) Cursor {
	c.position = clampPosition(r, c.position)
	if c.highlight != nil {
		h := clampPosition(r, *c.highlight)
		c.highlight = &h
	}
	return c
}

func clampPosition(r rope.Rope, p Position) Position {
	lineCount := r.LineCount()
	if lineCount == 0 {
		return Position{}
	}
	if p.Line >= lineCount {
		p.Line = lineCount - 1
	}
	maxOffset := r.LineLenChars(p.Line)
	if p.Offset > maxOffset {
		p.Offset = maxOffset
	}
	return p
}

// Compare orders cursors by Position: -1 if c < other, 0 if equal, 1 if
// c > other.
func (c Cursor) Compare(other Cursor) int {
	if c.position.Less(other.position) {
		return -1
	}
	if other.position.Less(c.position) {
		return 1
	}
	return 0
}

// String implements fmt.Stringer.
func (c Cursor) String() string {
	if c.highlight == nil {
		return fmt.Sprintf("Cursor(%d:%d)", c.position.Line, c.position.Offset)
	}
	return fmt.Sprintf("Cursor(%d:%d, highlight=%d:%d)",
		c.position.Line, c.position.Offset, c.highlight.Line, c.highlight.Offset)
}

// Equals reports whether two cursors have identical position, highlight,
// sticky offset, and state.
func (c Cursor) Equals(other Cursor) bool {
	if c.position != other.position || c.stickyOffset != other.stickyOffset || c.state != other.state {
		return false
	}
	if (c.highlight == nil) != (other.highlight == nil) {
		return false
	}
	if c.highlight != nil && *c.highlight != *other.highlight {
		return false
	}
	return true
}

// merge combines two overlapping cursors into one spanning their union,
// keeping the outermost position and the farthest highlight, per
// CursorSet invariant I1.
func merge(a, b Cursor) Cursor {
	ar, br := a.Range(), b.Range()
	start := position.Min(ar.Start, br.Start)
	end := position.Max(ar.End, br.End)

	out := Cursor{stickyOffset: a.stickyOffset}
	if start.Equal(end) {
		out.position = start
		return out
	}
	out.position = end
	h := start
	out.highlight = &h
	return out
}
