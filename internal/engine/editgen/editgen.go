package editgen

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/quillx/quill/internal/engine/cursor"
	"github.com/quillx/quill/internal/engine/edit"
	"github.com/quillx/quill/internal/engine/position"
	"github.com/quillx/quill/internal/engine/rope"
)

// DefaultTabStr is the text a TabIn inserts after each touched line's
// leading whitespace, and the maximum TabOut removes from it.
const DefaultTabStr = "    "

// Generator builds Edit values from commands applied to a cursor set
// against a rope. TabStr is overridable only as a whole string at
// construction, never per edit.
type Generator struct {
	TabStr string
}

// New returns a Generator using DefaultTabStr.
func New() *Generator {
	return &Generator{TabStr: DefaultTabStr}
}

func (g *Generator) tabStr() string {
	if g.TabStr == "" {
		return DefaultTabStr
	}
	return g.TabStr
}

// specialKind selects how step 2 of generate derives a cursor's final
// Position/Highlight from its placed caret offset.
type specialKind uint8

const (
	handlingNone specialKind = iota
	// handlingHighlightOnLeftShiftedLeftBy places the caret at the placed
	// offset and the highlight at offset-k.
	handlingHighlightOnLeftShiftedLeftBy
	// handlingHighlightOnRightPositionShiftedLeftBy places the highlight at
	// the placed offset and the caret at offset-k, clipping to 0 rather
	// than relocating past the start of the buffer (Open Question (a)).
	handlingHighlightOnRightPositionShiftedLeftBy
)

// perCursor is the intermediate result of computing one cursor's own edit,
// independent of every other cursor (valid because CursorSet invariant I1
// guarantees non-overlapping selections).
type perCursor struct {
	rangeEdits edit.RangeEdits

	// localOffset is the absolute char offset this cursor's own edit
	// leaves its caret at, in coordinates that already include this
	// cursor's own delta but none of any other cursor's.
	localOffset    rope.CharOffset
	delta          int64
	postDeltaShift int64
	kind           specialKind
	k              rope.CharOffset
}

// generate runs compute against every cursor in cs (in its stored,
// descending order), assembles the fully-edited rope, places cursors, and
// returns the resulting Edit.
func (g *Generator) generate(r rope.Rope, cs *cursor.CursorSet, compute func(r rope.Rope, c cursor.Cursor) perCursor) edit.Edit {
	old := cs.All()
	n := len(old)
	results := make([]perCursor, n)
	for i, c := range old {
		results[i] = compute(r, c)
	}

	// Assemble the final rope by applying edits rightmost-first: since
	// cursor ranges never overlap, an edit at a larger offset never
	// invalidates the range bounds of an edit to its left.
	finalRope := r
	for i := 0; i < n; i++ {
		finalRope = applyRangeEdits(finalRope, results[i].rangeEdits)
	}
	ropeLen := int64(finalRope.LenChars())

	// Place cursors leftmost-first (the reverse of storage order):
	// totalDelta accumulates the effect of every already-placed cursor to
	// this one's left, since only a further-left edit shifts this
	// cursor's final offset (a further-right edit cannot).
	rangeEdits := make([]edit.RangeEdits, n)
	newCursors := make([]cursor.Cursor, n)
	var totalDelta int64
	for i := n - 1; i >= 0; i-- {
		res := results[i]
		rangeEdits[i] = res.rangeEdits

		newOffset := clampOffset(int64(res.localOffset)+totalDelta+res.postDeltaShift, ropeLen)
		newCursors[i] = placeCursor(finalRope, res, newOffset)

		totalDelta += res.delta
	}

	var e edit.Edit
	e.RangeEdits = rangeEdits
	e.Cursors.Old = old
	e.Cursors.New = newCursors
	return e
}

func clampOffset(v, max int64) rope.CharOffset {
	if v < 0 {
		v = 0
	}
	if v > max {
		v = max
	}
	return rope.CharOffset(v)
}

func placeCursor(r rope.Rope, res perCursor, offset rope.CharOffset) cursor.Cursor {
	pos, _ := position.FromCharOffset(r, offset)
	base := cursor.NewCursor(pos).WithStickyOffset(pos.Offset)

	switch res.kind {
	case handlingHighlightOnLeftShiftedLeftBy:
		hOffset := clampOffset(int64(offset)-int64(res.k), int64(r.LenChars()))
		hPos, _ := position.FromCharOffset(r, hOffset)
		return base.WithHighlight(hPos)
	case handlingHighlightOnRightPositionShiftedLeftBy:
		pOffset := clampOffset(int64(offset)-int64(res.k), int64(r.LenChars()))
		pPos, _ := position.FromCharOffset(r, pOffset)
		return cursor.NewCursor(pPos).WithStickyOffset(pPos.Offset).WithHighlight(pos)
	default:
		return base
	}
}

// Apply applies every RangeEdits in e, in order, to r and returns the
// result. Used both internally (assembling the final rope while
// generating an edit) and by callers applying an already-built Edit —
// including a negated one, for undo.
func Apply(r rope.Rope, e edit.Edit) rope.Rope {
	for _, re := range e.RangeEdits {
		r = applyRangeEdits(r, re)
	}
	return r
}

// applyRangeEdits applies one cursor's delete-then-insert pair to r,
// assuming re's Range values are expressed in r's current coordinates.
func applyRangeEdits(r rope.Rope, re edit.RangeEdits) rope.Rope {
	insertAt := rope.CharOffset(0)
	if re.Insert != nil {
		insertAt = re.Insert.Range.Start
	}
	if re.Delete != nil {
		insertAt = re.Delete.Range.Start
		r = r.RemoveChars(re.Delete.Range.Start, re.Delete.Range.End)
	}
	if re.Insert != nil {
		r = r.InsertChars(insertAt, re.Insert.Chars)
	}
	return r
}

func charOffsets(r rope.Rope, rng position.Range) (start, end rope.CharOffset) {
	start, _ = position.ToCharOffset(r, rng.Start)
	end, _ = position.ToCharOffset(r, rng.End)
	return
}

// Insert replaces every cursor's selection (or inserts at its caret, if
// none) with text, leaving each cursor collapsed after the inserted text.
func (g *Generator) Insert(r rope.Rope, cs *cursor.CursorSet, text string) edit.Edit {
	return g.generate(r, cs, func(r rope.Rope, c cursor.Cursor) perCursor {
		return computeInsert(r, c, text)
	})
}

func computeInsert(r rope.Rope, c cursor.Cursor, text string) perCursor {
	start, end := charOffsets(r, c.Range())
	insChars := rope.CharOffset(utf8.RuneCountInString(text))

	var del *edit.RangeEdit
	if start != end {
		del = &edit.RangeEdit{Chars: r.SliceChars(start, end), Range: edit.CharRange{Start: start, End: end}}
	}
	var ins *edit.RangeEdit
	if text != "" {
		ins = &edit.RangeEdit{Chars: text, Range: edit.CharRange{Start: start, End: start + insChars}}
	}

	return perCursor{
		rangeEdits:  edit.RangeEdits{Delete: del, Insert: ins},
		localOffset: start + insChars,
		delta:       int64(insChars) - int64(end-start),
		kind:        handlingNone,
	}
}

// InsertNumbersAtCursors replaces each cursor's selection (or inserts at
// its caret) with a sequential decimal number, starting at start and
// incrementing once per cursor in cs's stored order.
func (g *Generator) InsertNumbersAtCursors(r rope.Rope, cs *cursor.CursorSet, start int) edit.Edit {
	next := start
	return g.generate(r, cs, func(r rope.Rope, c cursor.Cursor) perCursor {
		result := computeInsert(r, c, strconv.Itoa(next))
		next++
		return result
	})
}

// Delete removes every cursor's selection, or the one char before its
// caret if it has none (backspace).
func (g *Generator) Delete(r rope.Rope, cs *cursor.CursorSet) edit.Edit {
	return g.generate(r, cs, computeDelete)
}

func computeDelete(r rope.Rope, c cursor.Cursor) perCursor {
	start, end := charOffsets(r, c.Range())
	if start == end {
		if start == 0 {
			return perCursor{localOffset: 0, kind: handlingNone}
		}
		start--
	}
	deleted := r.SliceChars(start, end)
	return perCursor{
		rangeEdits:  edit.RangeEdits{Delete: &edit.RangeEdit{Chars: deleted, Range: edit.CharRange{Start: start, End: end}}},
		localOffset: start,
		delta:       -int64(end - start),
		kind:        handlingNone,
	}
}

// DeleteLines extends every cursor's selection to cover the lines it
// touches, then deletes that extended selection.
func (g *Generator) DeleteLines(r rope.Rope, cs *cursor.CursorSet) edit.Edit {
	extended := cs.Clone()
	extended.ExtendToLineCover(r)

	old := cs.All()
	e := g.generate(r, extended, computeDelete)
	e.Cursors.Old = old
	return e
}

// Cut deletes every cursor's selection; a cursor with no selection is left
// untouched (no-op RangeEdits).
func (g *Generator) Cut(r rope.Rope, cs *cursor.CursorSet) edit.Edit {
	return g.generate(r, cs, func(r rope.Rope, c cursor.Cursor) perCursor {
		start, end := charOffsets(r, c.Range())
		if start == end {
			return perCursor{localOffset: start, kind: handlingNone}
		}
		deleted := r.SliceChars(start, end)
		return perCursor{
			rangeEdits:  edit.RangeEdits{Delete: &edit.RangeEdit{Chars: deleted, Range: edit.CharRange{Start: start, End: end}}},
			localOffset: start,
			delta:       -int64(end - start),
			kind:        handlingNone,
		}
	})
}

// CutText returns the concatenated text Cut would remove, in descending
// cursor order, for placing on a clipboard alongside the generated Edit.
func CutText(r rope.Rope, cs *cursor.CursorSet) string {
	var b strings.Builder
	for i, c := range cs.All() {
		start, end := charOffsets(r, c.Range())
		if start == end {
			continue
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.SliceChars(start, end))
	}
	return b.String()
}

// TabIn inserts TabStr after the leading whitespace of every line a cursor
// touches (or at the caret, for an empty selection), growing the
// selection to cover the inserted text.
func (g *Generator) TabIn(r rope.Rope, cs *cursor.CursorSet) edit.Edit {
	tab := g.tabStr()
	return g.generate(r, cs, func(r rope.Rope, c cursor.Cursor) perCursor {
		rng := c.Range()
		if rng.Start.Equal(rng.End) {
			return computeInsert(r, c, tab)
		}
		return computeLineIndent(r, rng, tab, indentLine)
	})
}

// TabOut removes up to len(TabStr) leading whitespace chars from every
// line a cursor touches, shrinking the selection correspondingly.
func (g *Generator) TabOut(r rope.Rope, cs *cursor.CursorSet) edit.Edit {
	tab := g.tabStr()
	return g.generate(r, cs, func(r rope.Rope, c cursor.Cursor) perCursor {
		rng := c.Range()
		if rng.Start.Equal(rng.End) {
			return computeDedentCaret(r, c, tab)
		}
		return computeLineIndent(r, rng, tab, dedentLine)
	})
}

func indentLine(line string, tab string) string {
	prefix := leadingWhitespaceLen(line)
	return line[:prefix] + tab + line[prefix:]
}

func dedentLine(line string, tab string) string {
	prefix := leadingWhitespaceLen(line)
	remove := len(tab)
	if remove > prefix {
		remove = prefix
	}
	return line[:prefix-remove] + line[prefix:]
}

func leadingWhitespaceLen(line string) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

// computeLineIndent rewrites every full line in [rng.Start.Line,
// rng.End.Line] with transform, replacing that whole line span with the
// rewritten text in a single RangeEdits, and growing the selection to
// cover the full (rewritten) line span.
func computeLineIndent(r rope.Rope, rng position.Range, tab string, transform func(line, tab string) string) perCursor {
	firstLine := rng.Start.Line
	lastLine := rng.End.Line
	// A selection ending at column 0 of a line doesn't touch that line.
	if lastLine > firstLine && rng.End.Offset == 0 {
		lastLine--
	}

	spanStart := r.LineToChar(firstLine)
	spanEnd := r.LineToChar(lastLine) + rope.CharOffset(r.LineLenChars(lastLine))

	var b strings.Builder
	for line := firstLine; line <= lastLine; line++ {
		if line > firstLine {
			b.WriteByte('\n')
		}
		b.WriteString(transform(r.LineText(line), tab))
	}
	newText := b.String()
	newChars := rope.CharOffset(utf8.RuneCountInString(newText))

	oldText := r.SliceChars(spanStart, spanEnd)

	return perCursor{
		rangeEdits: edit.RangeEdits{
			Delete: &edit.RangeEdit{Chars: oldText, Range: edit.CharRange{Start: spanStart, End: spanEnd}},
			Insert: &edit.RangeEdit{Chars: newText, Range: edit.CharRange{Start: spanStart, End: spanStart + newChars}},
		},
		localOffset: spanStart + newChars,
		delta:       int64(newChars) - int64(spanEnd-spanStart),
		kind:        handlingHighlightOnLeftShiftedLeftBy,
		k:           newChars,
	}
}

// computeDedentCaret handles TabOut for a caret with no selection: dedent
// the caret's own line and keep the caret a bare, collapsed position,
// shifted left by however much whitespace was removed before its column
// (clipped to the start of the line).
func computeDedentCaret(r rope.Rope, c cursor.Cursor, tab string) perCursor {
	line := c.Position().Line
	lineText := r.LineText(line)
	removed := leadingWhitespaceLen(lineText)
	if removed > len(tab) {
		removed = len(tab)
	}
	if removed == 0 {
		return perCursor{localOffset: mustCharOffset(r, c.Position()), kind: handlingNone}
	}

	lineStart := r.LineToChar(line)
	shift := rope.CharOffset(removed)
	if rope.CharOffset(c.Position().Offset) < shift {
		shift = rope.CharOffset(c.Position().Offset)
	}

	return perCursor{
		rangeEdits: edit.RangeEdits{
			Delete: &edit.RangeEdit{Chars: lineText[:removed], Range: edit.CharRange{Start: lineStart, End: lineStart + rope.CharOffset(removed)}},
		},
		localOffset: mustCharOffset(r, c.Position()) - shift,
		delta:       -int64(removed),
		kind:        handlingNone,
	}
}

func mustCharOffset(r rope.Rope, p position.Position) rope.CharOffset {
	off, _ := position.ToCharOffset(r, p)
	return off
}
