package grapheme

import "github.com/rivo/uniseg"

// UnicodeVersion reports the Unicode version the embedded grapheme tables
// implement, exposed for reproducibility per the design notes on grapheme
// tables: a recorded edit's cluster boundaries may shift across library
// upgrades, so tooling that replays history should pin this value.
func UnicodeVersion() string {
	return uniseg.UnicodeVersion
}

// CountClusters returns the number of extended grapheme clusters in s.
func CountClusters(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// ClusterAt returns the byte range [start, end) of the grapheme cluster
// containing byteOffset. If byteOffset is at or past len(s), it returns the
// empty range at len(s).
func ClusterAt(s string, byteOffset int) (start, end int) {
	if byteOffset < 0 {
		byteOffset = 0
	}
	pos := 0
	state := -1
	for pos < len(s) {
		cluster, _, _, newState := uniseg.FirstGraphemeClusterInString(s[pos:], state)
		clusterEnd := pos + len(cluster)
		if byteOffset < clusterEnd {
			return pos, clusterEnd
		}
		state = newState
		pos = clusterEnd
	}
	return len(s), len(s)
}

// Segmenter steps forward and backward over the extended grapheme clusters
// of a fixed string. Boundaries are computed once on first use and then
// indexed directly, giving O(1) amortised stepping as required of a
// cursor-style segmenter.
type Segmenter struct {
	s          string
	boundaries []int // boundaries[i] is the start byte offset of cluster i; last entry == len(s)
	index      int   // current cluster index; -1 before start, len(boundaries)-1 past end
}

// NewSegmenter creates a Segmenter positioned before the first cluster of s.
func NewSegmenter(s string) *Segmenter {
	return &Segmenter{s: s, index: -1}
}

func (g *Segmenter) ensureBoundaries() {
	if g.boundaries != nil {
		return
	}
	boundaries := []int{0}
	pos := 0
	state := -1
	for pos < len(g.s) {
		cluster, _, _, newState := uniseg.FirstGraphemeClusterInString(g.s[pos:], state)
		pos += len(cluster)
		state = newState
		boundaries = append(boundaries, pos)
	}
	g.boundaries = boundaries
}

// Next advances to the next cluster, returning its byte range. ok is false
// once iteration has passed the final cluster.
func (g *Segmenter) Next() (start, end int, ok bool) {
	g.ensureBoundaries()
	next := g.index + 1
	if next >= len(g.boundaries)-1 {
		return 0, 0, false
	}
	g.index = next
	return g.boundaries[next], g.boundaries[next+1], true
}

// Prev moves to the previous cluster, returning its byte range. ok is false
// once iteration has moved before the first cluster.
func (g *Segmenter) Prev() (start, end int, ok bool) {
	g.ensureBoundaries()
	if g.index <= 0 {
		g.index = -1
		return 0, 0, false
	}
	g.index--
	return g.boundaries[g.index], g.boundaries[g.index+1], true
}

// SeekByte repositions the segmenter so the next call to Next() returns the
// cluster containing byteOffset.
func (g *Segmenter) SeekByte(byteOffset int) {
	g.ensureBoundaries()
	for i := 0; i < len(g.boundaries)-1; i++ {
		if g.boundaries[i] <= byteOffset && byteOffset < g.boundaries[i+1] {
			g.index = i - 1
			return
		}
	}
	g.index = len(g.boundaries) - 2
}

// Reset returns the segmenter to its initial, before-the-start position.
func (g *Segmenter) Reset() {
	g.index = -1
}
