package search

import (
	"errors"
	"strings"

	"github.com/quillx/quill/internal/engine/position"
	"github.com/quillx/quill/internal/engine/rope"
)

// ErrEmptyNeedle is returned by Find when asked to search for "".
var ErrEmptyNeedle = errors.New("search: empty needle")

// Match is one occurrence of the needle, as a half-open Position range.
type Match struct {
	Start, End position.Position
}

// Results holds every occurrence of Needle in a buffer's rope, in
// ascending, non-overlapping order, plus which one is "current" (the
// target of the next find-next / find-previous step).
type Results struct {
	Needle       string
	Ranges       []Match
	CurrentRange int
}

// Find computes Results from scratch for needle against r. This is the
// "refresh" half of the §4.7 protocol: called whenever the needle
// changes.
func Find(r rope.Rope, needle string) (*Results, error) {
	if needle == "" {
		return nil, ErrEmptyNeedle
	}

	text := r.String()
	var ranges []Match

	byteOffset := 0
	for {
		idx := strings.Index(text[byteOffset:], needle)
		if idx < 0 {
			break
		}
		startByte := byteOffset + idx
		endByte := startByte + len(needle)

		startChar := r.ByteToChar(rope.ByteOffset(startByte))
		endChar := r.ByteToChar(rope.ByteOffset(endByte))
		startPos, _ := position.FromCharOffset(r, startChar)
		endPos, _ := position.FromCharOffset(r, endChar)
		ranges = append(ranges, Match{Start: startPos, End: endPos})

		byteOffset = endByte
	}

	return &Results{Needle: needle, Ranges: ranges, CurrentRange: 0}, nil
}

// HasMatches reports whether any occurrence was found.
func (res *Results) HasMatches() bool {
	return res != nil && len(res.Ranges) > 0
}

// Current returns the match the "find next"/"find previous" cursor
// currently points at, and whether one exists.
func (res *Results) Current() (Match, bool) {
	if !res.HasMatches() {
		return Match{}, false
	}
	return res.Ranges[res.CurrentRange], true
}

// Next advances CurrentRange to the following match, wrapping around, and
// returns it. The needle is assumed unchanged (see Refresh).
func (res *Results) Next() (Match, bool) {
	if !res.HasMatches() {
		return Match{}, false
	}
	res.CurrentRange = (res.CurrentRange + 1) % len(res.Ranges)
	return res.Current()
}

// Previous retreats CurrentRange to the preceding match, wrapping around.
func (res *Results) Previous() (Match, bool) {
	if !res.HasMatches() {
		return Match{}, false
	}
	res.CurrentRange = (res.CurrentRange - 1 + len(res.Ranges)) % len(res.Ranges)
	return res.Current()
}

// Refresh recomputes Ranges against r for the same Needle, clamping
// CurrentRange back into bounds. Use this after any edit to the buffer
// being searched so positions stay accurate.
func (res *Results) Refresh(r rope.Rope) (*Results, error) {
	fresh, err := Find(r, res.Needle)
	if err != nil {
		return nil, err
	}
	if res.CurrentRange < len(fresh.Ranges) {
		fresh.CurrentRange = res.CurrentRange
	}
	return fresh, nil
}
