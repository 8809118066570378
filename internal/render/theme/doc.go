// Package theme describes the colors a host renderer paints cursor,
// selection, and search-highlight rectangles with, and blends overlay
// colors onto a base in perceptually uniform Lab space via go-colorful
// rather than the naive per-channel average internal/renderer/core.Color
// uses for its own Lighten/Darken/Blend helpers.
package theme
