// Package editgen builds an edit.Edit from a rope, a cursor set, and one
// of the seven supported commands (Insert, InsertNumbersAtCursors, Delete,
// DeleteLines, Cut, TabIn, TabOut).
//
// A naive algorithm clones the rope and mutates it incrementally between
// per-cursor computations so each cursor sees an accurate local view of
// the document as it walks end to start. CursorSet's no-overlapping-
// selections invariant makes that incremental mutation unnecessary: each
// cursor's own RangeEdits depend only on its own selection and
// surrounding line text, which the original, unedited rope already
// describes correctly regardless of what any other cursor is doing.
// Generator therefore computes every cursor's RangeEdits directly
// against the original rope, then performs two simpler passes — one to
// assemble the fully-edited rope (applying RangeEdits rightmost-first,
// since edits at larger offsets never invalidate the range bounds of
// edits to their left), and one to place cursors (walking leftmost-first
// this time, accumulating the delta contributed by every already-placed,
// further-left edit, since only edits to a cursor's left can shift that
// cursor's final offset). This is documented in DESIGN.md as an
// equivalent simplification, not a behavioral change.
//
// Edit construction follows a delete-then-insert convention per command.
package editgen
