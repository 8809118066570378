package editgen

import (
	"testing"

	"github.com/quillx/quill/internal/engine/cursor"
	"github.com/quillx/quill/internal/engine/edit"
	"github.com/quillx/quill/internal/engine/rope"
)

func mustRope(t *testing.T, s string) rope.Rope {
	t.Helper()
	r, err := rope.FromStringStrict(s)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func applyEdit(t *testing.T, r rope.Rope, e edit.Edit) rope.Rope {
	t.Helper()
	return Apply(r, e)
}

func TestInsertSingleCursor(t *testing.T) {
	r := mustRope(t, "hello world")
	cs := cursor.NewCursorSet(cursor.NewCursor(cursor.Position{Line: 0, Offset: 5}))

	e := New().Insert(r, cs, ",")
	got := applyEdit(t, r, e)
	if got.String() != "hello, world" {
		t.Fatalf("got %q", got.String())
	}
	if e.Cursors.New[0].Position().Offset != 6 {
		t.Errorf("caret offset = %d, want 6", e.Cursors.New[0].Position().Offset)
	}
}

func TestInsertReplacesSelection(t *testing.T) {
	r := mustRope(t, "hello world")
	c := cursor.NewCursor(cursor.Position{Line: 0, Offset: 0}).WithHighlight(cursor.Position{Line: 0, Offset: 5})
	cs := cursor.NewCursorSet(c)

	e := New().Insert(r, cs, "goodbye")
	got := applyEdit(t, r, e)
	if got.String() != "goodbye world" {
		t.Fatalf("got %q", got.String())
	}
}

func TestInsertMultiCursorShiftsRightwardCarets(t *testing.T) {
	// "0123456789", cursors at offset 2 and offset 8 (descending: 8 then 2).
	r := mustRope(t, "0123456789")
	c8 := cursor.NewCursor(cursor.Position{Line: 0, Offset: 8})
	c2 := cursor.NewCursor(cursor.Position{Line: 0, Offset: 2})
	cs := cursor.NewCursorSetFromSlice([]cursor.Cursor{c8, c2})

	e := New().Insert(r, cs, "X")
	got := applyEdit(t, r, e)
	if got.String() != "01X234567X89" {
		t.Fatalf("got %q", got.String())
	}

	// New cursors remain stored descending: index 0 is the rightmost.
	if e.Cursors.New[0].Position().Offset != 10 {
		t.Errorf("rightmost caret offset = %d, want 10 (shifted by the left cursor's own insert)", e.Cursors.New[0].Position().Offset)
	}
	if e.Cursors.New[1].Position().Offset != 3 {
		t.Errorf("leftmost caret offset = %d, want 3", e.Cursors.New[1].Position().Offset)
	}
}

func TestInsertNumbersAtCursorsAssignsSequentialValues(t *testing.T) {
	// "0123456789", cursors at offset 2 and offset 8 (descending: 8 then 2).
	// Cursors are numbered in their stored order, so the rightmost cursor
	// (offset 8) gets the first number and the leftmost (offset 2) the next.
	r := mustRope(t, "0123456789")
	c8 := cursor.NewCursor(cursor.Position{Line: 0, Offset: 8})
	c2 := cursor.NewCursor(cursor.Position{Line: 0, Offset: 2})
	cs := cursor.NewCursorSetFromSlice([]cursor.Cursor{c8, c2})

	e := New().InsertNumbersAtCursors(r, cs, 1)
	got := applyEdit(t, r, e)
	if got.String() != "012234567189" {
		t.Fatalf("got %q, want %q", got.String(), "012234567189")
	}

	if e.Cursors.New[0].Position().Offset != 10 {
		t.Errorf("rightmost caret offset = %d, want 10", e.Cursors.New[0].Position().Offset)
	}
	if e.Cursors.New[1].Position().Offset != 3 {
		t.Errorf("leftmost caret offset = %d, want 3", e.Cursors.New[1].Position().Offset)
	}
}

func TestDeleteBackspace(t *testing.T) {
	r := mustRope(t, "hello")
	cs := cursor.NewCursorSet(cursor.NewCursor(cursor.Position{Line: 0, Offset: 5}))

	e := New().Delete(r, cs)
	got := applyEdit(t, r, e)
	if got.String() != "hell" {
		t.Fatalf("got %q", got.String())
	}
	if e.Cursors.New[0].Position().Offset != 4 {
		t.Errorf("caret offset = %d, want 4", e.Cursors.New[0].Position().Offset)
	}
}

func TestDeleteAtBufferStartIsNoop(t *testing.T) {
	r := mustRope(t, "hello")
	cs := cursor.NewCursorSet(cursor.NewCursor(cursor.Position{Line: 0, Offset: 0}))

	e := New().Delete(r, cs)
	if !e.IsNoop() {
		t.Errorf("Delete at buffer start should be a no-op, got %+v", e.RangeEdits)
	}
}

func TestDeleteLinesExtendsToLineCover(t *testing.T) {
	r := mustRope(t, "one\ntwo\nthree\n")
	cs := cursor.NewCursorSet(cursor.NewCursor(cursor.Position{Line: 1, Offset: 1}))

	e := New().DeleteLines(r, cs)
	got := applyEdit(t, r, e)
	if got.String() != "one\nthree\n" {
		t.Fatalf("got %q", got.String())
	}
}

func TestCutLeavesEmptySelectionUntouched(t *testing.T) {
	r := mustRope(t, "hello world")
	c1 := cursor.NewCursor(cursor.Position{Line: 0, Offset: 0}).WithHighlight(cursor.Position{Line: 0, Offset: 5})
	c2 := cursor.NewCursor(cursor.Position{Line: 0, Offset: 8})
	cs := cursor.NewCursorSetFromSlice([]cursor.Cursor{c1, c2})

	e := New().Cut(r, cs)
	got := applyEdit(t, r, e)
	if got.String() != " world" {
		t.Fatalf("got %q", got.String())
	}
}

func TestCutTextConcatenatesRemovedSelections(t *testing.T) {
	r := mustRope(t, "hello world")
	c := cursor.NewCursor(cursor.Position{Line: 0, Offset: 0}).WithHighlight(cursor.Position{Line: 0, Offset: 5})
	cs := cursor.NewCursorSet(c)

	if got := CutText(r, cs); got != "hello" {
		t.Errorf("CutText() = %q, want %q", got, "hello")
	}
}

func TestTabInEmptySelectionInsertsTabStr(t *testing.T) {
	r := mustRope(t, "hello")
	cs := cursor.NewCursorSet(cursor.NewCursor(cursor.Position{Line: 0, Offset: 0}))

	e := New().TabIn(r, cs)
	got := applyEdit(t, r, e)
	if got.String() != "    hello" {
		t.Fatalf("got %q", got.String())
	}
}

func TestTabInIndentsEveryTouchedLineAfterLeadingWhitespace(t *testing.T) {
	r := mustRope(t, "  one\ntwo\n")
	c := cursor.NewCursor(cursor.Position{Line: 0, Offset: 2}).WithHighlight(cursor.Position{Line: 1, Offset: 1})
	cs := cursor.NewCursorSet(c)

	e := New().TabIn(r, cs)
	got := applyEdit(t, r, e)
	if got.String() != "      one\n    two\n" {
		t.Fatalf("got %q", got.String())
	}
}

func TestTabOutDedentsCaretLine(t *testing.T) {
	r := mustRope(t, "      one\n")
	cs := cursor.NewCursorSet(cursor.NewCursor(cursor.Position{Line: 0, Offset: 6}))

	e := New().TabOut(r, cs)
	got := applyEdit(t, r, e)
	if got.String() != "  one\n" {
		t.Fatalf("got %q", got.String())
	}
	if e.Cursors.New[0].Position().Offset != 2 {
		t.Errorf("caret offset = %d, want 2", e.Cursors.New[0].Position().Offset)
	}
}

func TestTabOutRemovesAtMostTabWidth(t *testing.T) {
	r := mustRope(t, "  one\n")
	cs := cursor.NewCursorSet(cursor.NewCursor(cursor.Position{Line: 0, Offset: 2}))

	e := New().TabOut(r, cs)
	got := applyEdit(t, r, e)
	if got.String() != "one\n" {
		t.Fatalf("got %q", got.String())
	}
}

// TestInsertRoundTripsViaNegate checks invariant B3: applying an edit then
// its negation restores the original text.
func TestInsertRoundTripsViaNegate(t *testing.T) {
	r := mustRope(t, "hello world")
	cs := cursor.NewCursorSet(cursor.NewCursor(cursor.Position{Line: 0, Offset: 5}))

	e := New().Insert(r, cs, ", there")
	edited := applyEdit(t, r, e)

	restored := applyEdit(t, edited, e.Negate())
	if restored.String() != r.String() {
		t.Fatalf("round trip via Negate = %q, want %q", restored.String(), r.String())
	}
}

func TestCustomTabStr(t *testing.T) {
	r := mustRope(t, "hello")
	cs := cursor.NewCursorSet(cursor.NewCursor(cursor.Position{Line: 0, Offset: 0}))

	g := &Generator{TabStr: "\t"}
	e := g.TabIn(r, cs)
	got := applyEdit(t, r, e)
	if got.String() != "\thello" {
		t.Fatalf("got %q", got.String())
	}
}
