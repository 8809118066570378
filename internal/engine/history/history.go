package history

import "github.com/quillx/quill/internal/engine/edit"

// noCurrent is the sentinel "current" value meaning "before the first
// edit".
const noCurrent = -1

// History is an ordered sequence of edits plus a cursor into it. current
// == noCurrent means no edit has been applied yet (or all have been
// undone); current == i means the buffer reflects edits[0..i] applied in
// order.
type History struct {
	edits      []edit.Edit
	current    int
	maxEntries int
}

// New creates an empty History. maxEntries <= 0 means unbounded.
func New(maxEntries int) *History {
	return &History{current: noCurrent, maxEntries: maxEntries}
}

// Record appends e as the newest edit, truncating any redo tail (lost-redo
// semantics — performing a new edit after undoing discards the undone
// edits).
func (h *History) Record(e edit.Edit) {
	h.edits = h.edits[:h.current+1]
	h.edits = append(h.edits, e)
	h.current = len(h.edits) - 1

	if h.maxEntries > 0 && len(h.edits) > h.maxEntries {
		drop := len(h.edits) - h.maxEntries
		h.edits = h.edits[drop:]
		h.current -= drop
	}
}

// CanUndo reports whether an edit exists to undo.
func (h *History) CanUndo() bool { return h.current != noCurrent }

// CanRedo reports whether a previously undone edit exists to redo.
func (h *History) CanRedo() bool { return h.current+1 < len(h.edits) }

// Undo returns the negated form of the current edit and retreats current,
// or (edit.Edit{}, false) if there is nothing to undo. The caller is
// responsible for applying the returned edit to the buffer.
func (h *History) Undo() (edit.Edit, bool) {
	if !h.CanUndo() {
		return edit.Edit{}, false
	}
	e := h.edits[h.current].Negate()
	h.current--
	return e, true
}

// Redo returns the next edit and advances current, or (edit.Edit{}, false)
// if there is nothing to redo.
func (h *History) Redo() (edit.Edit, bool) {
	if !h.CanRedo() {
		return edit.Edit{}, false
	}
	h.current++
	return h.edits[h.current], true
}

// Position returns the current index (noCurrent, i.e. -1, before any
// edit). Buffer compares this against the position recorded at the last
// save to determine whether it is edited.
func (h *History) Position() int { return h.current }

// Len returns the total number of recorded edits (including any
// available for redo).
func (h *History) Len() int { return len(h.edits) }

// Clear discards all history.
func (h *History) Clear() {
	h.edits = nil
	h.current = noCurrent
}
