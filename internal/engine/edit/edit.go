package edit

import (
	"github.com/quillx/quill/internal/engine/cursor"
	"github.com/quillx/quill/internal/engine/rope"
)

// CharRange is a half-open [Start, End) span of absolute char offsets.
type CharRange struct {
	Start, End rope.CharOffset
}

// Len returns the number of chars spanned.
func (r CharRange) Len() rope.CharOffset {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// RangeEdit pairs a char range with the text occupying it — either the
// text being removed (when used as a RangeEdits.Delete) or the text being
// inserted (when used as a RangeEdits.Insert).
type RangeEdit struct {
	Chars string
	Range CharRange
}

// RangeEdits is the delete-then-insert pair applied at one cursor's
// location. Either half may be absent: a pure insertion has no Delete, a
// pure deletion has no Insert.
type RangeEdits struct {
	Delete *RangeEdit
	Insert *RangeEdit
}

// Negate swaps Delete and Insert, producing the RangeEdits that undoes
// this one when applied.
func (re RangeEdits) Negate() RangeEdits {
	return RangeEdits{Delete: re.Insert, Insert: re.Delete}
}

// IsZero reports whether this RangeEdits carries neither a delete nor an
// insert (a no-op placeholder for a cursor the command left untouched).
func (re RangeEdits) IsZero() bool {
	return re.Delete == nil && re.Insert == nil
}

// Edit is a complete, invertible multi-cursor edit: one RangeEdits per
// cursor that existed when the edit was generated, in the same descending
// order as the cursor set, plus the cursor sets before and after.
type Edit struct {
	RangeEdits []RangeEdits
	Cursors    struct {
		Old []cursor.Cursor
		New []cursor.Cursor
	}
}

// Negate reverses the RangeEdits order and swaps the cursor sets, so that
// applying the negated Edit to the post-edit buffer exactly restores the
// pre-edit buffer and cursor set.
func (e Edit) Negate() Edit {
	n := len(e.RangeEdits)
	reversed := make([]RangeEdits, n)
	for i, re := range e.RangeEdits {
		reversed[n-1-i] = re.Negate()
	}

	var out Edit
	out.RangeEdits = reversed
	out.Cursors.Old = e.Cursors.New
	out.Cursors.New = e.Cursors.Old
	return out
}

// IsNoop reports whether every RangeEdits in the edit is empty, meaning
// applying it would change neither text nor (observably) cursors.
func (e Edit) IsNoop() bool {
	for _, re := range e.RangeEdits {
		if !re.IsZero() {
			return false
		}
	}
	return true
}
