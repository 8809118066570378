package editor

import (
	"testing"

	"github.com/quillx/quill/internal/engine/position"
)

func TestSelectAllThenInsertReplacesWholeBuffer(t *testing.T) {
	e := New()
	e.Dispatch(Input{Kind: InsertText, Text: "hello world"})

	view, _ := e.Dispatch(Input{Kind: SelectAll})
	if view.Stats.CharCount != len("hello world") {
		t.Fatalf("CharCount = %d, want %d", view.Stats.CharCount, len("hello world"))
	}

	e.Dispatch(Input{Kind: InsertText, Text: "bye"})
	main, _ := e.buffers.Current()
	if got := main.Text(); got != "bye" {
		t.Fatalf("after selecting all and typing, got %q", got)
	}
}

func TestUndoRestoresPriorState(t *testing.T) {
	e := New()
	e.Dispatch(Input{Kind: InsertText, Text: "abc"})
	main, _ := e.buffers.Current()
	if main.Text() != "abc" {
		t.Fatalf("got %q", main.Text())
	}

	e.Dispatch(Input{Kind: Undo})
	if main.Text() != "" {
		t.Fatalf("after Undo, got %q, want empty", main.Text())
	}

	e.Dispatch(Input{Kind: Redo})
	if main.Text() != "abc" {
		t.Fatalf("after Redo, got %q", main.Text())
	}
}

func TestEditedTransitionsMatchSavedPosition(t *testing.T) {
	e := New()
	view, _ := e.Dispatch(Input{Kind: InsertText, Text: "x"})
	if view.EditedTransitions[0] != ToEdited {
		t.Fatalf("first edit should report ToEdited, got %v", view.EditedTransitions[0])
	}

	e.Dispatch(Input{Kind: SaveCurrentBuffer})
	e.Dispatch(Input{Kind: InsertText, Text: "y"})
	view, _ = e.Dispatch(Input{Kind: Undo})
	if view.EditedTransitions[0] != ToUnedited {
		t.Fatalf("undoing back to the saved position should report ToUnedited, got %v", view.EditedTransitions[0])
	}
}

func TestScrollableBufferTextAlwaysMainBuffer(t *testing.T) {
	e := New()
	e.Dispatch(Input{Kind: OpenFind})
	e.Dispatch(Input{Kind: InsertText, Target: BufferKindFind, Text: "needle"})

	main, _ := e.buffers.Current()
	if main.Text() != "" {
		t.Fatalf("typing into the find field must not touch the main buffer, got %q", main.Text())
	}
	if e.GetScrollableBufferMut(BufferKindMain) != main {
		t.Fatal("GetScrollableBufferMut(BufferKindMain) must always resolve to the real document buffer")
	}
}

func TestFindNextWrapsAndMovesCursor(t *testing.T) {
	e := New()
	e.Dispatch(Input{Kind: InsertText, Text: "foo bar foo"})
	e.Dispatch(Input{Kind: OpenFind})
	e.Dispatch(Input{Kind: InsertText, Target: BufferKindFind, Text: "foo"})

	e.Dispatch(Input{Kind: FindNext})
	main, _ := e.buffers.Current()
	if p := main.Cursors.Primary().Position(); p.Offset != 8 {
		t.Errorf("after first FindNext, caret offset = %d, want 8", p.Offset)
	}

	e.Dispatch(Input{Kind: FindNext})
	if p := main.Cursors.Primary().Position(); p.Offset != 0 {
		t.Errorf("after second FindNext (wrapping), caret offset = %d, want 0", p.Offset)
	}
}

func TestReplaceAllReplacesEveryMatch(t *testing.T) {
	e := New()
	e.Dispatch(Input{Kind: InsertText, Text: "foo bar foo"})
	e.Dispatch(Input{Kind: OpenReplace})
	e.Dispatch(Input{Kind: InsertText, Target: BufferKindFind, Text: "foo"})
	e.Dispatch(Input{Kind: InsertText, Target: BufferKindReplace, Text: "baz"})

	e.Dispatch(Input{Kind: ReplaceAll})
	main, _ := e.buffers.Current()
	if main.Text() != "baz bar baz" {
		t.Fatalf("got %q", main.Text())
	}
}

func TestGoToPositionNavigatesCursor(t *testing.T) {
	e := New()
	e.Dispatch(Input{Kind: InsertText, Text: "one\ntwo\nthree"})
	e.Dispatch(Input{Kind: OpenGoToPosition})
	e.Dispatch(Input{Kind: InsertText, Target: BufferKindGoToPosition, Text: "2:1"})

	e.Dispatch(Input{Kind: ConfirmGoToPosition})
	main, _ := e.buffers.Current()
	if p := main.Cursors.Primary().Position(); p.Line != 1 || p.Offset != 0 {
		t.Errorf("caret = %+v, want line 1 offset 0", p)
	}
}

func TestCloseLastBufferInsertsScratch(t *testing.T) {
	e := New()
	view, _ := e.Dispatch(Input{Kind: CloseCurrentBuffer})
	if view.IndexState.Count != 1 {
		t.Fatalf("closing the only buffer should leave exactly one (a fresh scratch), got %d", view.IndexState.Count)
	}
}

func TestNewBufferNumbersScratchBuffers(t *testing.T) {
	e := New()
	e.Dispatch(Input{Kind: NewBuffer})
	view, _ := e.Dispatch(Input{Kind: NewBuffer})
	if view.IndexState.Count != 3 {
		t.Fatalf("Count = %d, want 3", view.IndexState.Count)
	}
	if view.Buffers[1].Name != "Scratch 2" || view.Buffers[2].Name != "Scratch 3" {
		t.Errorf("scratch names = %q, %q", view.Buffers[1].Name, view.Buffers[2].Name)
	}
}

func TestPasteWithEmptyClipboardIsNoop(t *testing.T) {
	e := New()
	_, cmd := e.Dispatch(Input{Kind: Paste, Text: ""})
	if cmd.Kind != NoCmd {
		t.Errorf("pasting empty text should be a no-op Cmd, got %+v", cmd)
	}
	main, _ := e.buffers.Current()
	if main.IsDirty() {
		t.Error("a no-op paste must not touch saved_at_history_position")
	}
}

func TestCutReturnsClipboardCmd(t *testing.T) {
	e := New()
	e.Dispatch(Input{Kind: InsertText, Text: "hello"})
	e.Dispatch(Input{Kind: SelectAll})

	_, cmd := e.Dispatch(Input{Kind: Cut})
	if cmd.Kind != SetClipboard || cmd.Text != "hello" {
		t.Fatalf("Cut Cmd = %+v, want SetClipboard(hello)", cmd)
	}
}

func TestLoadFileRoundTripsThroughAddOrSelectBuffer(t *testing.T) {
	e := New()

	_, cmd := e.Dispatch(Input{Kind: LoadFile, Path: "/tmp/notes.txt"})
	if cmd.Kind != LoadFileCmd || cmd.Path != "/tmp/notes.txt" {
		t.Fatalf("LoadFile Cmd = %+v, want LoadFileCmd(/tmp/notes.txt)", cmd)
	}

	view, _ := e.Dispatch(Input{Kind: AddOrSelectBuffer, Path: "/tmp/notes.txt", Text: "hello file"})
	if view.IndexState.Count != 2 {
		t.Fatalf("Count = %d, want 2", view.IndexState.Count)
	}
	main, _ := e.buffers.Current()
	if main.Name != "/tmp/notes.txt" || main.Text() != "hello file" {
		t.Fatalf("main buffer = %q/%q, want /tmp/notes.txt/hello file", main.Name, main.Text())
	}
	if main.IsDirty() {
		t.Error("a freshly loaded file must not appear dirty")
	}
}

func TestAddOrSelectBufferSelectsAlreadyOpenPathWithoutClobberingEdits(t *testing.T) {
	e := New()
	e.Dispatch(Input{Kind: AddOrSelectBuffer, Path: "/tmp/a.txt", Text: "original"})
	e.Dispatch(Input{Kind: InsertText, Text: "!"})
	e.Dispatch(Input{Kind: NewBuffer})

	view, _ := e.Dispatch(Input{Kind: AddOrSelectBuffer, Path: "/tmp/a.txt", Text: "stale content from a second load"})
	if view.IndexState.Count != 3 {
		t.Fatalf("Count = %d, want 3 (selecting an open path must not create a new buffer)", view.IndexState.Count)
	}
	main, _ := e.buffers.Current()
	if main.Text() != "!original" {
		t.Fatalf("Text() = %q, want unchanged edited content, not the reloaded text", main.Text())
	}
}

func TestSetBufferPathThenSavedAsRenamesAndMarksSaved(t *testing.T) {
	e := New()
	e.Dispatch(Input{Kind: InsertText, Text: "draft"})

	e.Dispatch(Input{Kind: SetBufferPath, Path: "/tmp/draft.txt"})
	main, _ := e.buffers.Current()
	if main.Name != "/tmp/draft.txt" {
		t.Fatalf("Name = %q after SetBufferPath, want /tmp/draft.txt", main.Name)
	}
	if !main.IsDirty() {
		t.Error("SetBufferPath alone must not mark the buffer saved")
	}

	e.Dispatch(Input{Kind: SavedAs, Path: "/tmp/draft.txt"})
	if main.IsDirty() {
		t.Error("SavedAs must mark the buffer saved")
	}
}

func TestInsertNumbersAtCursorsViaDispatch(t *testing.T) {
	e := New()
	e.Dispatch(Input{Kind: InsertText, Text: "a b"})
	e.Dispatch(Input{Kind: SetCursor, Position: position.Position{Line: 0, Offset: 1}})
	e.Dispatch(Input{Kind: AddCursor, Position: position.Position{Line: 0, Offset: 3}})

	// Cursors are stored descending by position, so the offset-3 cursor is
	// numbered first (gets "1") and the offset-1 cursor second (gets "2").
	view, _ := e.Dispatch(Input{Kind: InsertNumbersAtCursors, Start: 1})
	main, _ := e.buffers.Current()
	if main.Text() != "a2 b1" {
		t.Fatalf("Text() = %q, want %q", main.Text(), "a2 b1")
	}
	if view.Stats.CharCount != 5 {
		t.Errorf("CharCount = %d, want 5", view.Stats.CharCount)
	}
}
