package position

import "math"

// minAbsPos is the smallest non-degenerate apron ratio, preventing the
// apron computation from dividing by an effectively-zero margin.
const minAbsPos = 1.0 / (1 << 23)

// AbsPos is a floating-point scalar for screen/text geometry. Conversions
// to an integer pixel or cell count saturate to 0 instead of underflowing,
// since geometry arithmetic can transiently go negative during scroll
// adjustment.
type AbsPos float64

// ToUint saturates a to a non-negative integer.
func (a AbsPos) ToUint() uint32 {
	if a <= 0 {
		return 0
	}
	if a > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(a)
}

// Add returns a + b.
func (a AbsPos) Add(b AbsPos) AbsPos { return a + b }

// Sub returns a - b, saturating at 0.
func (a AbsPos) Sub(b AbsPos) AbsPos {
	r := a - b
	if r < 0 {
		return 0
	}
	return r
}

// Half returns a / 2.
func (a AbsPos) Half() AbsPos { return a / 2 }

// AbsPos2 is a 2D screen/text-space point.
type AbsPos2 struct {
	X, Y AbsPos
}

// Sub returns the componentwise difference p - other.
func (p AbsPos2) Sub(other AbsPos2) AbsPos2 {
	return AbsPos2{X: p.X.Sub(other.X), Y: p.Y.Sub(other.Y)}
}

// Add returns the componentwise sum p + other.
func (p AbsPos2) Add(other AbsPos2) AbsPos2 {
	return AbsPos2{X: p.X + other.X, Y: p.Y + other.Y}
}

// Rect is an axis-aligned rectangle in screen or text space.
type Rect struct {
	Origin AbsPos2
	Width  AbsPos
	Height AbsPos
}

// Contains reports whether p lies within r (inclusive of edges).
func (r Rect) Contains(p AbsPos2) bool {
	return p.X >= r.Origin.X && p.X <= r.Origin.X+r.Width &&
		p.Y >= r.Origin.Y && p.Y <= r.Origin.Y+r.Height
}

// Shrink returns r inset by the given apron, expressed as absolute margins
// (not ratios — callers resolve Apron ratios to margins first via
// Apron.Resolve).
func (r Rect) Shrink(left, top, right, bottom AbsPos) Rect {
	return Rect{
		Origin: AbsPos2{X: r.Origin.X + left, Y: r.Origin.Y + top},
		Width:  r.Width.Sub(left + right),
		Height: r.Height.Sub(top + bottom),
	}
}

// Apron holds four margin ratios in [0,1] of the rect's half-dimensions,
// used by AttemptToMakeXYVisible to keep the target point away from the
// viewport edge by a proportional margin rather than a fixed pixel count.
type Apron struct {
	Left, Top, Right, Bottom float64
}

func clampRatio(r float64) float64 {
	if r < minAbsPos {
		return minAbsPos
	}
	if r > 1 {
		return 1
	}
	return r
}

// Resolve turns ratio margins into absolute margins for the given rect.
func (a Apron) Resolve(r Rect) (left, top, right, bottom AbsPos) {
	halfW := r.Width.Half()
	halfH := r.Height.Half()
	left = AbsPos(clampRatio(a.Left)) * halfW
	right = AbsPos(clampRatio(a.Right)) * halfW
	top = AbsPos(clampRatio(a.Top)) * halfH
	bottom = AbsPos(clampRatio(a.Bottom)) * halfH
	return
}

// CharDim is the pixel/cell dimensions of a single character cell.
type CharDim struct {
	Width, Height AbsPos
}

// Rounding selects how a fractional cell position resolves to a char
// column.
type Rounding int

const (
	// RoundTowardsZero truncates — used for selection-start placement.
	RoundTowardsZero Rounding = iota
	// RoundUp rounds the right half of a cell to the next position — used
	// for click placement, matching the intuition that clicking on the
	// right half of a glyph means "after it".
	RoundUp
)

// ScreenToText converts a screen-space point to text-space, given the
// text box's screen origin and the current scroll offset.
func ScreenToText(screenXY, textBoxOrigin AbsPos2, scroll AbsPos2) AbsPos2 {
	return screenXY.Sub(textBoxOrigin).Add(scroll)
}

// TextToScreen is the inverse of ScreenToText.
func TextToScreen(textXY, textBoxOrigin AbsPos2, scroll AbsPos2) AbsPos2 {
	return textXY.Add(textBoxOrigin).Sub(scroll)
}

// TextXYToPosition converts a text-space point to a Position, using
// charDim to resolve column/row cell sizes and rounding to decide how a
// fractional offset within a cell resolves.
func TextXYToPosition(textXY AbsPos2, charDim CharDim, rounding Rounding) Position {
	if charDim.Height <= 0 {
		charDim.Height = 1
	}
	if charDim.Width <= 0 {
		charDim.Width = 1
	}

	line := textXY.Y / charDim.Height
	col := textXY.X / charDim.Width

	var lineIdx, colIdx uint32
	if line > 0 {
		lineIdx = uint32(line)
	}

	switch rounding {
	case RoundUp:
		frac := col - AbsPos(math.Floor(float64(col)))
		if frac >= 0.5 {
			col = AbsPos(math.Floor(float64(col))) + 1
		} else {
			col = AbsPos(math.Floor(float64(col)))
		}
	default: // RoundTowardsZero
		col = AbsPos(math.Trunc(float64(col)))
	}
	if col > 0 {
		colIdx = uint32(col)
	}

	return Position{Line: lineIdx, Offset: colIdx}
}

// AttemptToMakeXYVisible adjusts *scroll so target (in text space) becomes
// visible within outerRect shrunk by apron. Returns true if scroll was
// changed. Only the target point is considered — no cursor extents — and
// the adjustment always succeeds when target fits inside outerRect at all.
func AttemptToMakeXYVisible(scroll *AbsPos2, outerRect Rect, apron Apron, target AbsPos2) bool {
	// The viewport in text space is the size of outerRect, positioned at
	// the current scroll offset.
	visible := Rect{Origin: *scroll, Width: outerRect.Width, Height: outerRect.Height}
	left, top, right, bottom := apron.Resolve(visible)
	inner := visible.Shrink(left, top, right, bottom)

	adjusted := false
	newScroll := *scroll

	if target.X < inner.Origin.X {
		newScroll.X = newScroll.X.Sub(inner.Origin.X - target.X)
		adjusted = true
	} else if rightEdge := inner.Origin.X + inner.Width; target.X > rightEdge {
		newScroll.X = newScroll.X + (target.X - rightEdge)
		adjusted = true
	}

	if target.Y < inner.Origin.Y {
		newScroll.Y = newScroll.Y.Sub(inner.Origin.Y - target.Y)
		adjusted = true
	} else if bottomEdge := inner.Origin.Y + inner.Height; target.Y > bottomEdge {
		newScroll.Y = newScroll.Y + (target.Y - bottomEdge)
		adjusted = true
	}

	if adjusted {
		*scroll = newScroll
	}
	return adjusted
}
