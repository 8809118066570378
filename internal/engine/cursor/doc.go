// Package cursor implements Quill's multi-cursor model: a Cursor value
// type (position, optional selection highlight, sticky column, wall
// state) and an ordered CursorSet enforcing the model's invariants.
//
// Cursor uses an immutable-builder method style (WithX, Clamp, Compare)
// over {Position, Highlight, StickyOffset, State}. CursorSet.normalize
// sorts **descending** by position — required so the edit generator can
// apply per-cursor edits back-to-front without index-rewriting (no two
// cursors' selection ranges may overlap).
package cursor
