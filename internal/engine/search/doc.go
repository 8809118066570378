// Package search implements byte-exact needle search over a rope: no case
// folding, no regex, just all non-overlapping occurrences of a literal
// needle, ordered by position, plus a "find next" cursor that advances
// modulo the match count.
//
// Follows a refresh-on-needle-change / advance-on-repeat protocol, built
// over rope.Rope and position.Position rather than byte offsets.
package search
