package editor

import (
	"regexp"
	"strconv"

	"github.com/quillx/quill/internal/engine/position"
)

// goToPositionPattern matches the go-to-position input field's grammar:
// a 1-based line number, optionally followed by a 1-based column
// separated by ':' or ','.
var goToPositionPattern = regexp.MustCompile(`^\d+(?:[:,]\d+)?$`)

// parseGoToPosition parses s per the grammar above, decrementing each
// 1-based component to 0-based. A component of "0" (already below the
// 1-based floor) saturates to 0 rather than underflowing.
func parseGoToPosition(s string) (position.Position, bool) {
	if !goToPositionPattern.MatchString(s) {
		return position.Position{}, false
	}

	sep := -1
	for i, r := range s {
		if r == ':' || r == ',' {
			sep = i
			break
		}
	}

	lineStr, colStr := s, ""
	if sep >= 0 {
		lineStr, colStr = s[:sep], s[sep+1:]
	}

	line := oneBasedToZero(lineStr)
	col := uint32(0)
	if colStr != "" {
		col = oneBasedToZero(colStr)
	}
	return position.Position{Line: line, Offset: col}, true
}

// oneBasedToZero parses a decimal string known to match \d+ and
// decrements it by one, saturating at 0.
func oneBasedToZero(s string) uint32 {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0
	}
	return uint32(n - 1)
}
