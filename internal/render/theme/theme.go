package theme

import (
	"github.com/quillx/quill/internal/renderer/core"
)

// Theme names the colors a host renderer needs beyond plain text
// foreground/background: the cursor caret, the selection rectangle, the
// current-line rectangle, and the two search-highlight states (an
// ordinary match and the one FindNext just landed on).
type Theme struct {
	Name string

	Background core.Color
	Foreground core.Color

	Cursor        core.Color
	Selection     core.Color
	LineHighlight core.Color

	SearchMatch       core.Color
	SearchActiveMatch core.Color
}

// DefaultDark is a sensible default dark theme, in the same palette
// family as a typical terminal-editor dark scheme.
func DefaultDark() Theme {
	return Theme{
		Name:              "Default Dark",
		Background:        core.ColorFromRGB(30, 30, 30),
		Foreground:        core.ColorFromRGB(212, 212, 212),
		Cursor:            core.ColorFromRGB(255, 255, 255),
		Selection:         core.ColorFromRGB(64, 64, 128),
		LineHighlight:     core.ColorFromRGB(40, 40, 40),
		SearchMatch:       core.ColorFromRGB(130, 110, 40),
		SearchActiveMatch: core.ColorFromRGB(230, 180, 40),
	}
}

// SelectionStyle returns the style a renderer should paint a selected
// range with: the theme's foreground over a perceptual blend of the
// background and the selection color.
func (t Theme) SelectionStyle() core.Style {
	return core.NewStyle(t.Foreground).WithBackground(Blend(t.Background, t.Selection, 0.65))
}

// SearchHighlightStyle returns the style for a search match; active
// distinguishes the match the find cursor currently sits on from the
// rest, blended more strongly toward SearchActiveMatch.
func (t Theme) SearchHighlightStyle(active bool) core.Style {
	overlay := t.SearchMatch
	amount := 0.45
	if active {
		overlay = t.SearchActiveMatch
		amount = 0.75
	}
	return core.NewStyle(t.Foreground).WithBackground(Blend(t.Background, overlay, amount))
}

// LineHighlightStyle returns the style for the line the primary cursor
// sits on.
func (t Theme) LineHighlightStyle() core.Style {
	return core.NewStyle(t.Foreground).WithBackground(Blend(t.Background, t.LineHighlight, 0.5))
}
