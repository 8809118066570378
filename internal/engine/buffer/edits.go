package buffer

import (
	"github.com/quillx/quill/internal/engine/cursor"
	"github.com/quillx/quill/internal/engine/edit"
	"github.com/quillx/quill/internal/engine/editgen"
	"github.com/quillx/quill/internal/engine/position"
	"github.com/quillx/quill/internal/engine/rope"
)

// Apply applies e to the buffer's rope and cursor set and records it in
// History. It is the building block every higher-level editing operation
// below funnels through, so every one of them is automatically undoable.
func (b *Buffer) Apply(e edit.Edit) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.applyLocked(e)
	b.History.Record(e)
}

// applyLocked mutates rope/cursors/search results for e without touching
// History. Used both by Apply and by Undo/Redo, which manage the history
// index themselves.
func (b *Buffer) applyLocked(e edit.Edit) {
	b.rope = editgen.Apply(b.rope, e)
	b.Cursors = cursor.NewCursorSetFromSlice(e.Cursors.New)
	b.revisionID = NewRevisionID()
	if b.SearchResults != nil {
		if refreshed, err := b.SearchResults.Refresh(b.rope); err == nil {
			b.SearchResults = refreshed
		}
	}
}

// Undo reverts the most recent edit, if any, and reports whether one was
// reverted.
func (b *Buffer) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.History.Undo()
	if !ok {
		return false
	}
	b.applyLocked(e)
	return true
}

// Redo reapplies the most recently undone edit, if any, and reports
// whether one was reapplied.
func (b *Buffer) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.History.Redo()
	if !ok {
		return false
	}
	b.applyLocked(e)
	return true
}

// MarkSaved records the current history position as "saved", so IsDirty
// reports false until the next edit.
func (b *Buffer) MarkSaved() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.SavedAtHistoryPosition = b.History.Position()
}

// SetName changes the buffer's display name, e.g. when a scratch buffer
// is given a path by a first save or a Save As.
func (b *Buffer) SetName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Name = name
}

// IsDirty reports whether the buffer has unsaved edits.
func (b *Buffer) IsDirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.History.Position() != b.SavedAtHistoryPosition
}

// Rope returns the buffer's current rope.
func (b *Buffer) Rope() rope.Rope {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope
}

// InsertAtCursors replaces every cursor's selection (or inserts at its
// caret) with text.
func (b *Buffer) InsertAtCursors(text string) {
	b.mu.Lock()
	e := b.gen.Insert(b.rope, b.Cursors, text)
	b.mu.Unlock()
	b.Apply(e)
}

// InsertNumbersAtCursors replaces each cursor's selection (or inserts at
// its caret) with a sequential number, one per cursor, starting at start.
func (b *Buffer) InsertNumbersAtCursors(start int) {
	b.mu.Lock()
	e := b.gen.InsertNumbersAtCursors(b.rope, b.Cursors, start)
	b.mu.Unlock()
	b.Apply(e)
}

// DeleteAtCursors removes every cursor's selection, or the char before a
// bare caret.
func (b *Buffer) DeleteAtCursors() {
	b.mu.RLock()
	e := b.gen.Delete(b.rope, b.Cursors)
	b.mu.RUnlock()
	b.Apply(e)
}

// DeleteLines removes every whole line a cursor touches.
func (b *Buffer) DeleteLines() {
	b.mu.RLock()
	e := b.gen.DeleteLines(b.rope, b.Cursors)
	b.mu.RUnlock()
	b.Apply(e)
}

// Cut removes every cursor's selection and returns the removed text, for
// placing on a clipboard.
func (b *Buffer) Cut() string {
	b.mu.RLock()
	cut := editgen.CutText(b.rope, b.Cursors)
	e := b.gen.Cut(b.rope, b.Cursors)
	b.mu.RUnlock()
	b.Apply(e)
	return cut
}

// Copy returns the concatenated text of every cursor's selection, without
// modifying the buffer.
func (b *Buffer) Copy() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return editgen.CutText(b.rope, b.Cursors)
}

// TabIn indents every line a cursor touches.
func (b *Buffer) TabIn() {
	b.mu.RLock()
	e := b.gen.TabIn(b.rope, b.Cursors)
	b.mu.RUnlock()
	b.Apply(e)
}

// TabOut dedents every line a cursor touches.
func (b *Buffer) TabOut() {
	b.mu.RLock()
	e := b.gen.TabOut(b.rope, b.Cursors)
	b.mu.RUnlock()
	b.Apply(e)
}

// MoveAllCursors moves every cursor by m, collapsing any selection.
func (b *Buffer) MoveAllCursors(m cursor.Move) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Cursors.MoveAll(b.rope, m)
}

// ExtendSelectionForAllCursors moves every cursor's caret by m while
// keeping (or establishing) its highlight.
func (b *Buffer) ExtendSelectionForAllCursors(m cursor.Move) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Cursors.ExtendAll(b.rope, m)
}

// SelectAll collapses the cursor set to a single cursor selecting the
// entire buffer.
func (b *Buffer) SelectAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	lastLine := b.rope.LineCount()
	if lastLine > 0 {
		lastLine--
	}
	end := position.Position{Line: lastLine, Offset: b.rope.LineLenChars(lastLine)}
	c := cursor.NewCursor(end).WithHighlight(position.Position{})
	b.Cursors = cursor.NewCursorSet(c)
}

// SetCursor replaces the cursor set with a single bare caret at p.
func (b *Buffer) SetCursor(p position.Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Cursors = cursor.NewCursorSet(cursor.NewCursor(p).Clamp(b.rope))
}

// AddCursor adds an additional bare caret at p to the existing set.
func (b *Buffer) AddCursor(p position.Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Cursors.Add(cursor.NewCursor(p).Clamp(b.rope))
}

// DragCursors implements mouse-drag selection against the primary cursor
// set: the first call after a press sets each cursor's highlight, further
// calls extend it to p.
func (b *Buffer) DragCursors(p position.Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Cursors.Drag(b.rope, p)
}

// SelectCharTypeGrouping replaces the cursor set with a single cursor
// selecting the run of same-class (word, space, or punctuation) chars
// containing p — the double-click word-select gesture.
func (b *Buffer) SelectCharTypeGrouping(p position.Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rng := cursor.WordRangeAt(b.rope, p)
	c := cursor.NewCursor(rng.End).WithHighlight(rng.Start)
	b.Cursors = cursor.NewCursorSet(c)
}
