// Package logging provides Quill's process-wide structured logger.
//
// internal/editor and cmd/quill are the only callers. internal/editor logs
// Debug for every dispatched Input under tag "input", Info for buffer
// lifecycle events (new, close, save, load, rename) under tag "buffer",
// and Warn under tag "recover" when it ignores a stale or unknown buffer
// index, a file-switcher query with no matching buffer, or file content
// that is not valid UTF-8. cmd/quill logs Warn under tag "recover" when
// opening a file, reading or writing the recovery directory, or a
// LoadFile request fails.
// Lower-level packages (rope, cursor, edit, buffer) stay silent, keeping
// those packages free of side effects.
package logging
