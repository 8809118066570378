package cursor

import (
	"regexp"
	"unicode/utf8"

	"github.com/quillx/quill/internal/engine/grapheme"
	"github.com/quillx/quill/internal/engine/position"
	"github.com/quillx/quill/internal/engine/rope"
)

// Move enumerates the supported cursor motions. Up/Down consult
// StickyOffset; Left/Right step by grapheme cluster rather than by char,
// so a cursor never lands inside a multi-scalar cluster.
type Move uint8

const (
	Up Move = iota
	Down
	Left
	Right
	ToLineStart
	ToLineEnd
	ToBufferStart
	ToBufferEnd
	ToPreviousLikelyEditLocation
	ToNextLikelyEditLocation
)

// MoveAll moves every cursor in cs according to m, collapsing any
// selection and recomputing StickyOffset where the move is horizontal or
// absolute (Up/Down preserve it).
func (cs *CursorSet) MoveAll(r rope.Rope, m Move) {
	cs.MapInPlace(func(c Cursor) Cursor {
		return moveOne(r, c, m, false)
	})
}

// ExtendAll behaves like MoveAll but preserves (initializing if absent)
// each cursor's Highlight, producing or growing a selection.
func (cs *CursorSet) ExtendAll(r rope.Rope, m Move) {
	cs.MapInPlace(func(c Cursor) Cursor {
		return moveOne(r, c, m, true)
	})
}

func moveOne(r rope.Rope, c Cursor, m Move, extend bool) Cursor {
	if extend {
		if _, ok := c.Highlight(); !ok {
			c = c.WithHighlight(c.position)
		}
	} else {
		c = c.WithoutHighlight()
	}

	switch m {
	case Up:
		return moveVertical(r, c, -1)
	case Down:
		return moveVertical(r, c, 1)
	case Left:
		return moveHorizontal(r, c, -1)
	case Right:
		return moveHorizontal(r, c, 1)
	case ToLineStart:
		p := Position{Line: c.position.Line, Offset: 0}
		return c.WithPosition(p).WithStickyOffset(0).WithState(StateNone)
	case ToLineEnd:
		end := r.LineLenChars(c.position.Line)
		p := Position{Line: c.position.Line, Offset: end}
		return c.WithPosition(p).WithStickyOffset(end).WithState(StateNone)
	case ToBufferStart:
		return c.WithPosition(Position{}).WithStickyOffset(0).WithState(StateNone)
	case ToBufferEnd:
		lastLine := r.LineCount() - 1
		offset := r.LineLenChars(lastLine)
		return c.WithPosition(Position{Line: lastLine, Offset: offset}).WithStickyOffset(offset).WithState(StateNone)
	case ToPreviousLikelyEditLocation:
		p := previousLikelyEditLocation(r, c.position)
		return c.WithPosition(p).WithStickyOffset(p.Offset).WithState(StateNone)
	case ToNextLikelyEditLocation:
		p := nextLikelyEditLocation(r, c.position)
		return c.WithPosition(p).WithStickyOffset(p.Offset).WithState(StateNone)
	default:
		return c
	}
}

// moveVertical moves c up (dir<0) or down (dir>0) one line, preserving
// StickyOffset. Reaching a shorter line places the cursor at end-of-line
// without overwriting StickyOffset. Hitting a buffer boundary sets
// StatePressedAgainstWall instead of moving.
func moveVertical(r rope.Rope, c Cursor, dir int) Cursor {
	line := c.position.Line
	if dir < 0 {
		if line == 0 {
			return c.WithState(StatePressedAgainstWall)
		}
		line--
	} else {
		if line+1 >= r.LineCount() {
			return c.WithState(StatePressedAgainstWall)
		}
		line++
	}

	lineLen := r.LineLenChars(line)
	offset := c.stickyOffset
	if offset > lineLen {
		offset = lineLen
	}
	return c.WithPosition(Position{Line: line, Offset: offset}).WithState(StateNone)
}

// moveHorizontal steps c left (dir<0) or right (dir>0) by one grapheme
// cluster, crossing line boundaries at the start/end of a line.
func moveHorizontal(r rope.Rope, c Cursor, dir int) Cursor {
	p := c.position
	lineText := r.LineText(p.Line)
	byteOffset := charOffsetToLineByteOffset(lineText, p.Offset)

	if dir < 0 {
		if p.Offset == 0 {
			if p.Line == 0 {
				return c.WithState(StatePressedAgainstWall)
			}
			prevLine := p.Line - 1
			end := r.LineLenChars(prevLine)
			np := Position{Line: prevLine, Offset: end}
			return c.WithPosition(np).WithStickyOffset(end).WithState(StateNone)
		}
		// The cluster just before the caret is the one holding its
		// preceding byte.
		start, _ := grapheme.ClusterAt(lineText, byteOffset-1)
		offset := uint32(utf8.RuneCountInString(lineText[:start]))
		np := Position{Line: p.Line, Offset: offset}
		return c.WithPosition(np).WithStickyOffset(offset).WithState(StateNone)
	}

	lineLen := r.LineLenChars(p.Line)
	if p.Offset >= lineLen {
		if p.Line+1 >= r.LineCount() {
			return c.WithState(StatePressedAgainstWall)
		}
		np := Position{Line: p.Line + 1, Offset: 0}
		return c.WithPosition(np).WithStickyOffset(0).WithState(StateNone)
	}
	seg := grapheme.NewSegmenter(lineText)
	seg.SeekByte(byteOffset)
	_, end, ok := seg.Next()
	if !ok {
		end = len(lineText)
	}
	offset := uint32(utf8.RuneCountInString(lineText[:end]))
	if offset > lineLen {
		offset = lineLen
	}
	np := Position{Line: p.Line, Offset: offset}
	return c.WithPosition(np).WithStickyOffset(offset).WithState(StateNone)
}

// charOffsetToLineByteOffset converts an in-line char offset to the
// corresponding byte offset within lineText.
func charOffsetToLineByteOffset(lineText string, charOffset uint32) int {
	n := uint32(0)
	for i := range lineText {
		if n == charOffset {
			return i
		}
		n++
	}
	return len(lineText)
}

// likelyEditBoundary classifies runes into \w, \s, or punctuation, using
// the same regex character classes a reader would reach for.
var (
	wordRune  = regexp.MustCompile(`\w`)
	spaceRune = regexp.MustCompile(`\s`)
)

type runeClass uint8

const (
	classWord runeClass = iota
	classSpace
	classPunct
)

func classify(r rune) runeClass {
	s := string(r)
	switch {
	case wordRune.MatchString(s):
		return classWord
	case spaceRune.MatchString(s):
		return classSpace
	default:
		return classPunct
	}
}

// isLikelyEditBoundary reports whether the transition from `from` to `to`
// is one of the four recognized edit-location boundaries: \w→punct,
// punct→\w, \s→\w, \s→punct.
func isLikelyEditBoundary(from, to runeClass) bool {
	switch {
	case from == classWord && to == classPunct:
		return true
	case from == classPunct && to == classWord:
		return true
	case from == classSpace && to == classWord:
		return true
	case from == classSpace && to == classPunct:
		return true
	default:
		return false
	}
}

func nextLikelyEditLocation(r rope.Rope, p Position) Position {
	total := r.LenChars()
	offset, ok := position.ToCharOffset(r, p)
	if !ok {
		offset = total
	}

	start := offset
	if p.Offset == 0 {
		// Already at the start of a line: don't require forward progress
		// past the current rune before considering a boundary, so that
		// the very first transition on the line can be found.
	} else {
		start = offset + 1
	}

	prevClass := classAt(r, offset)
	for o := start; o < total; o++ {
		cur := classAt(r, o)
		if isLikelyEditBoundary(prevClass, cur) {
			np, ok := position.FromCharOffset(r, o)
			if ok {
				return np
			}
		}
		prevClass = cur
	}
	np, _ := position.FromCharOffset(r, total)
	return np
}

func previousLikelyEditLocation(r rope.Rope, p Position) Position {
	offset, ok := position.ToCharOffset(r, p)
	if !ok || offset == 0 {
		return Position{}
	}

	o := offset
	prevClass := classAt(r, o-1)
	for o > 0 {
		o--
		if o == 0 {
			break
		}
		cur := classAt(r, o-1)
		if isLikelyEditBoundary(cur, prevClass) {
			np, ok := position.FromCharOffset(r, o)
			if ok {
				return np
			}
		}
		prevClass = cur
	}
	return Position{}
}

func classAt(r rope.Rope, offset rope.CharOffset) runeClass {
	ch, ok := r.RuneAt(offset)
	if !ok {
		return classSpace
	}
	return classify(ch)
}

// WordRangeAt returns the maximal run of same-class (\w, \s, or
// punctuation) chars containing p, for double-click word selection. An
// empty buffer, or p at the very end of the buffer, yields a zero-width
// range at p.
func WordRangeAt(r rope.Rope, p Position) position.Range {
	offset, ok := position.ToCharOffset(r, p)
	total := r.LenChars()
	if !ok || offset >= total {
		return position.Range{Start: p, End: p}
	}

	class := classAt(r, offset)
	start := offset
	for start > 0 && classAt(r, start-1) == class {
		start--
	}
	end := offset + 1
	for end < total && classAt(r, end) == class {
		end++
	}

	startPos, _ := position.FromCharOffset(r, start)
	endPos, _ := position.FromCharOffset(r, end)
	return position.Range{Start: startPos, End: endPos}
}

// Drag implements mouse-drag selection: the first call for a cursor sets
// Highlight to its pre-drag Position; subsequent calls just move
// Position, extending the selection.
func (cs *CursorSet) Drag(r rope.Rope, p Position) {
	cs.MapInPlace(func(c Cursor) Cursor {
		if _, ok := c.Highlight(); !ok {
			c = c.WithHighlight(c.position)
		}
		return c.WithPosition(p).Clamp(r)
	})
}

// ExtendToLineCover transforms every cursor so its selection covers every
// line its current selection touches, for a "delete lines" command:
// position becomes (b+1, 0) and highlight becomes (a, 0), unless b+1
// exceeds the line count, in which case it anchors to the last line's
// non-newline end instead.
func (cs *CursorSet) ExtendToLineCover(r rope.Rope) {
	cs.MapInPlace(func(c Cursor) Cursor {
		rng := c.Range()
		a, b := rng.Start.Line, rng.End.Line

		if b+1 >= r.LineCount() {
			end := r.FinalNonNewlineCharOffsetForLine(b)
			endPos, _ := position.FromCharOffset(r, end+1)
			startPos := Position{Line: a, Offset: 0}
			return c.WithHighlight(startPos).WithPosition(endPos).WithStickyOffset(endPos.Offset)
		}

		startPos := Position{Line: a, Offset: 0}
		endPos := Position{Line: b + 1, Offset: 0}
		return c.WithHighlight(startPos).WithPosition(endPos).WithStickyOffset(0)
	})
}
