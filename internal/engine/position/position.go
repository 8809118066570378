package position

import "github.com/quillx/quill/internal/engine/rope"

// CharOffset is a re-export of rope.CharOffset for callers that only deal
// in positions and don't otherwise import rope.
type CharOffset = rope.CharOffset

// Position is a line/in-line-char pair. Line is 0-based; Offset is the
// 0-based char offset within that line, measured in Unicode scalar values,
// never bytes and never grapheme clusters.
type Position struct {
	Line   uint32
	Offset uint32
}

// Range is a half-open [Start, End) span expressed in Position terms.
type Range struct {
	Start Position
	End   Position
}

// Less orders positions by line, then by in-line offset.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Offset < other.Offset
}

// Equal reports whether p and other address the same line/offset.
func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Offset == other.Offset
}

// Min returns the earlier of two positions in document order.
func Min(a, b Position) Position {
	if b.Less(a) {
		return b
	}
	return a
}

// Max returns the later of two positions in document order.
func Max(a, b Position) Position {
	if a.Less(b) {
		return b
	}
	return a
}

// InBounds reports whether p addresses a valid location in r: its line
// must exist, and its in-line offset must not exceed the line's char
// length (one-past-the-end is permitted, matching a caret resting after
// the last character of a line).
func InBounds(r rope.Rope, p Position) bool {
	if p.Line >= r.LineCount() {
		return false
	}
	return CharOffset(p.Offset) <= CharOffset(r.LineLenChars(p.Line))
}

// ToCharOffset converts a Position to an absolute char offset, returning
// false if p is out of bounds.
func ToCharOffset(r rope.Rope, p Position) (CharOffset, bool) {
	if !InBounds(r, p) {
		return 0, false
	}
	lineStart := r.LineToChar(p.Line)
	return lineStart + CharOffset(p.Offset), true
}

// FromCharOffset converts an absolute char offset to a Position, returning
// false if offset exceeds the rope's length.
func FromCharOffset(r rope.Rope, offset CharOffset) (Position, bool) {
	if offset > r.LenChars() {
		return Position{}, false
	}
	line := r.CharToLine(offset)
	lineStart := r.LineToChar(line)
	return Position{Line: line, Offset: uint32(offset - lineStart)}, true
}
