// Package collection holds an ordered, non-empty set of items addressed by
// generation-checked indices, used to manage the editor's open buffers.
//
// The generation counter is the same idea as buffer.RevisionID's monotonic
// atomic counter, applied per-slot instead of per-buffer: each slot in the
// collection carries its own counter, bumped whenever the slot is removed
// (slots are never reused), so an Index captured before a removal reads as
// stale afterwards.
package collection
