package cursor

import (
	"testing"

	"github.com/quillx/quill/internal/engine/rope"
)

func mustRope(t *testing.T, s string) rope.Rope {
	t.Helper()
	r, err := rope.FromStringStrict(s)
	if err != nil {
		t.Fatalf("FromStringStrict: %v", err)
	}
	return r
}

func TestCursorRangeAndEquals(t *testing.T) {
	c := NewCursor(Position{Line: 0, Offset: 3})
	if !c.IsEmpty() {
		t.Fatal("fresh cursor should have no selection")
	}

	c2 := c.WithHighlight(Position{Line: 0, Offset: 1})
	if c2.IsEmpty() {
		t.Fatal("cursor with highlight should not be empty")
	}
	rng := c2.Range()
	if rng.Start.Offset != 1 || rng.End.Offset != 3 {
		t.Errorf("Range() = %+v, want start=1 end=3", rng)
	}

	if c.Equals(c2) {
		t.Error("cursors with different highlight should not be equal")
	}
}

func TestCursorSetNormalizeDescending(t *testing.T) {
	cs := NewCursorSetFromSlice([]Cursor{
		NewCursor(Position{Line: 0, Offset: 0}),
		NewCursor(Position{Line: 2, Offset: 0}),
		NewCursor(Position{Line: 1, Offset: 0}),
	})

	all := cs.All()
	if len(all) != 3 {
		t.Fatalf("Count() = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if !all[i].Position().Less(all[i-1].Position()) {
			t.Errorf("cursors not in descending order: %v then %v", all[i-1], all[i])
		}
	}
}

func TestCursorSetMergeOverlapping(t *testing.T) {
	cs := NewCursorSet(NewCursor(Position{Line: 0, Offset: 5}).WithHighlight(Position{Line: 0, Offset: 0}))
	cs.Add(NewCursor(Position{Line: 0, Offset: 8}).WithHighlight(Position{Line: 0, Offset: 3}))

	if cs.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after merging overlapping cursors", cs.Count())
	}
	rng := cs.Primary().Range()
	if rng.Start.Offset != 0 || rng.End.Offset != 8 {
		t.Errorf("merged range = %+v, want start=0 end=8", rng)
	}
}

func TestMoveAllLeftRightAcrossLines(t *testing.T) {
	r := mustRope(t, "ab\ncd")
	cs := NewCursorSet(NewCursor(Position{Line: 1, Offset: 0}))

	cs.MoveAll(r, Left)
	p := cs.Primary().Position()
	if p.Line != 0 || p.Offset != 2 {
		t.Errorf("Left across line boundary: got %+v, want line 0 offset 2", p)
	}

	cs.MoveAll(r, Right)
	cs.MoveAll(r, Right)
	p = cs.Primary().Position()
	if p.Line != 1 || p.Offset != 1 {
		t.Errorf("Right back across line boundary then one more: got %+v, want line 1 offset 1", p)
	}
}

func TestMoveAllUpDownStickyOffset(t *testing.T) {
	r := mustRope(t, "abcdef\nab\nabcdef")
	cs := NewCursorSet(NewCursor(Position{Line: 0, Offset: 5}))

	cs.MoveAll(r, Down) // onto short line "ab" (len 2)
	p := cs.Primary().Position()
	if p.Line != 1 || p.Offset != 2 {
		t.Errorf("Down onto short line: got %+v, want line 1 offset 2 (clamped)", p)
	}
	if cs.Primary().StickyOffset() != 5 {
		t.Errorf("StickyOffset() = %d, want 5 preserved across short line", cs.Primary().StickyOffset())
	}

	cs.MoveAll(r, Down) // back onto a long line; sticky offset should be restored
	p = cs.Primary().Position()
	if p.Line != 2 || p.Offset != 5 {
		t.Errorf("Down restoring sticky offset: got %+v, want line 2 offset 5", p)
	}
}

func TestMoveAllPressedAgainstWall(t *testing.T) {
	r := mustRope(t, "abc")
	cs := NewCursorSet(NewCursor(Position{Line: 0, Offset: 0}))

	cs.MoveAll(r, Left)
	if cs.Primary().State() != StatePressedAgainstWall {
		t.Error("Left at buffer start should set StatePressedAgainstWall")
	}
}

func TestExtendAllCreatesSelection(t *testing.T) {
	r := mustRope(t, "hello world")
	cs := NewCursorSet(NewCursor(Position{Line: 0, Offset: 0}))

	cs.ExtendAll(r, Right)
	cs.ExtendAll(r, Right)

	c := cs.Primary()
	if c.IsEmpty() {
		t.Fatal("ExtendAll should produce a selection")
	}
	h, _ := c.Highlight()
	if h.Offset != 0 {
		t.Errorf("Highlight().Offset = %d, want 0 (anchor at start)", h.Offset)
	}
	if c.Position().Offset != 2 {
		t.Errorf("Position().Offset = %d, want 2", c.Position().Offset)
	}
}

func TestExtendToLineCover(t *testing.T) {
	r := mustRope(t, "one\ntwo\nthree\n")
	cs := NewCursorSet(NewCursor(Position{Line: 1, Offset: 1}))
	cs.ExtendToLineCover(r)

	c := cs.Primary()
	h, ok := c.Highlight()
	if !ok {
		t.Fatal("ExtendToLineCover should set a highlight")
	}
	if h.Line != 1 || h.Offset != 0 {
		t.Errorf("Highlight = %+v, want line 1 offset 0", h)
	}
	if c.Position().Line != 2 || c.Position().Offset != 0 {
		t.Errorf("Position = %+v, want line 2 offset 0", c.Position())
	}
}

func TestDragSetsHighlightOnce(t *testing.T) {
	r := mustRope(t, "abcdef")
	cs := NewCursorSet(NewCursor(Position{Line: 0, Offset: 2}))

	cs.Drag(r, Position{Line: 0, Offset: 4})
	h, ok := cs.Primary().Highlight()
	if !ok || h.Offset != 2 {
		t.Fatalf("Drag should anchor Highlight at the pre-drag position, got %+v ok=%v", h, ok)
	}

	cs.Drag(r, Position{Line: 0, Offset: 5})
	h2, _ := cs.Primary().Highlight()
	if h2.Offset != 2 {
		t.Errorf("second Drag moved the anchor: %+v, want unchanged at 2", h2)
	}
	if cs.Primary().Position().Offset != 5 {
		t.Errorf("Position().Offset = %d, want 5", cs.Primary().Position().Offset)
	}
}

func TestLikelyEditLocation(t *testing.T) {
	r := mustRope(t, "foo bar.baz")
	cs := NewCursorSet(NewCursor(Position{Line: 0, Offset: 0}))

	cs.MoveAll(r, ToNextLikelyEditLocation)
	if off := cs.Primary().Position().Offset; off == 0 {
		t.Error("ToNextLikelyEditLocation should advance past offset 0")
	}

	cs.MoveAll(r, ToPreviousLikelyEditLocation)
	// Should move back towards (but not necessarily to) the start.
	if cs.Primary().Position().Offset > 4 {
		t.Errorf("ToPreviousLikelyEditLocation offset = %d, want <= 4", cs.Primary().Position().Offset)
	}
}
