// Package history implements the undo/redo record for a single buffer: an
// ordered sequence of edit.Edit values plus a current index into it.
//
// Edit (package edit) is already self-inverting via Edit.Negate(), so a
// single record type suffices in place of a tree of per-verb Command
// types: History only needs to remember the sequence and where "current"
// points. Redo advances current; undo retreats it; performing a new edit
// truncates any redo tail.
package history
