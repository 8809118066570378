// Package position provides the coordinate model shared by the cursor set,
// the edit generator, and any host renderer: conversions between a
// line/in-line-char Position and an absolute char offset, and between
// screen-space and text-space geometry for scrolling and click placement.
//
// Uses char columns rather than byte columns throughout, with a
// screen-geometry half for viewport and click-placement math.
package position
