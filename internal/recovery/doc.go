// Package recovery persists unsaved buffer contents to disk so Quill can
// offer to restore them after a crash: a directory holding one index
// file plus one content file per buffer.
//
// The index file has one line per buffer:
//
//	Path:<32-hex-uuid>,<path>
//	Scratch:<32-hex-uuid>,<decimal-number>
//
// Lines with an unrecognized prefix are skipped on read rather than
// treated as an error, so a future Quill version can add new entry kinds
// without breaking older recovery directories. Each buffer's raw bytes
// live in a sibling file named <ascii-slug-of-name>_<uuid>.
package recovery
