// Package config provides Quill's configuration surface: typed defaults
// backed by internal/config/registry's schema registry, a JSON document
// read/written with tidwall/gjson and tidwall/sjson so unknown keys
// round-trip untouched, and an environment variable overlay.
//
// Quill's configuration is narrow: no keymap layer, no plugin manifests,
// no LSP/AI/vim sections — those concerns are out of scope for this
// editor core.
package config
