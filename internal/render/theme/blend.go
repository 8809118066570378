package theme

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/quillx/quill/internal/renderer/core"
)

// Blend mixes overlay over base in CIE-Lab space and returns the result
// as amount ranges from 0 (pure base) to 1 (pure overlay). Lab blending
// keeps a highlight rectangle's perceived brightness roughly constant
// across different base/overlay hue pairs, unlike a per-channel RGB
// average, which can produce a visibly duller or muddier midpoint than
// either endpoint.
//
// Indexed or default (non-true-color) inputs can't be blended — Blend
// falls back to whichever side amount favors. core.Color.Blend makes the
// same choice for indexed inputs but blends default colors channel by
// channel.
func Blend(base, overlay core.Color, amount float64) core.Color {
	if base.Indexed || overlay.Indexed || base.IsDefault() || overlay.IsDefault() {
		if amount < 0.5 {
			return base
		}
		return overlay
	}

	a := fromCore(base)
	b := fromCore(overlay)
	return toCore(a.BlendLab(b, amount).Clamped())
}

func fromCore(c core.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func toCore(c colorful.Color) core.Color {
	r, g, b := c.RGB255()
	return core.ColorFromRGB(r, g, b)
}
