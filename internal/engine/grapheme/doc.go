// Package grapheme segments UTF-8 text into extended grapheme clusters per
// Unicode UAX#29, using github.com/rivo/uniseg. Rope offsets (package rope)
// are counted in Unicode scalar values; this package is the bridge a cursor
// needs to step by user-visible "character" instead, grounded on the way
// bethropolis-tide drives uniseg.NewGraphemes directly in its cursor and
// drawing code.
package grapheme
