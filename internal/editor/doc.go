// Package editor is the orchestrator facade: Dispatch(Input) (View, Cmd).
//
// One struct, one constructor, read ops / write ops / undo-redo ops / cursor
// ops grouped the same way, generalized from a single buffer to a
// collection.Collection of buffers plus four independent menu sub-buffers
// (find, replace, file switcher, go-to-position).
//
// The editor owns exactly one goroutine's worth of mutable state; Dispatch
// is the only entry point that mutates it, and it runs to completion before
// returning — there is no suspension point inside it.
package editor
