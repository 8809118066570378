package rope

import "unicode/utf8"

// CharOffset represents a count of Unicode scalar values (runes) from the
// start of the rope. This is distinct from ByteOffset: cursor-facing
// positions are always expressed in chars, never bytes or graphemes.
type CharOffset uint64

// LenChars returns the total number of Unicode scalar values in the rope.
func (r Rope) LenChars() CharOffset {
	if r.root == nil {
		return 0
	}
	return CharOffset(r.root.summary.Chars)
}

// CharToByte converts a char offset to the corresponding byte offset.
// Offsets past the end of the rope are clamped to Len().
func (r Rope) CharToByte(charOffset CharOffset) ByteOffset {
	if r.root == nil || charOffset == 0 {
		return 0
	}
	if charOffset >= CharOffset(r.root.summary.Chars) {
		return r.Len()
	}
	return r.root.charToByte(charOffset)
}

// ByteToChar converts a byte offset to the corresponding char offset.
// Offsets past the end of the rope are clamped to LenChars().
func (r Rope) ByteToChar(byteOffset ByteOffset) CharOffset {
	if r.root == nil || byteOffset == 0 {
		return 0
	}
	if byteOffset >= r.Len() {
		return r.LenChars()
	}
	return r.root.byteToChar(byteOffset)
}

// charToByte descends the tree accumulating Chars, mirroring
// findChildByOffset but keyed on the Chars metric instead of Bytes.
func (n *Node) charToByte(charOffset CharOffset) ByteOffset {
	if n.IsLeaf() {
		return leafCharToByte(n.chunks, charOffset)
	}

	var byteBase ByteOffset
	var charBase CharOffset
	for i, summary := range n.childSummaries {
		childChars := CharOffset(summary.Chars)
		if charBase+childChars > charOffset {
			return byteBase + n.children[i].charToByte(charOffset-charBase)
		}
		byteBase += summary.Bytes
		charBase += childChars
	}

	// charOffset is at or past the end: clamp to last child's end.
	lastIdx := len(n.children) - 1
	return byteBase - n.childSummaries[lastIdx].Bytes +
		n.children[lastIdx].charToByte(charOffset-(charBase-CharOffset(n.childSummaries[lastIdx].Chars)))
}

func leafCharToByte(chunks []Chunk, charOffset CharOffset) ByteOffset {
	var byteBase ByteOffset
	var charBase CharOffset
	for _, chunk := range chunks {
		chunkChars := CharOffset(chunk.Summary().Chars)
		if charBase+chunkChars > charOffset {
			return byteBase + chunkCharToByte(chunk.String(), charOffset-charBase)
		}
		byteBase += ByteOffset(chunk.Len())
		charBase += chunkChars
	}
	return byteBase
}

// chunkCharToByte scans runes within a single chunk to find the byte offset
// of the nth char. Chunks are bounded by MaxChunkSize, so this scan is O(1)
// amortized relative to the rope's overall size.
func chunkCharToByte(s string, n CharOffset) ByteOffset {
	var count CharOffset
	for i := range s {
		if count == n {
			return ByteOffset(i)
		}
		count++
	}
	return ByteOffset(len(s))
}

func (n *Node) byteToChar(byteOffset ByteOffset) CharOffset {
	if n.IsLeaf() {
		return leafByteToChar(n.chunks, byteOffset)
	}

	var byteBase ByteOffset
	var charBase CharOffset
	for i, summary := range n.childSummaries {
		if byteBase+summary.Bytes > byteOffset {
			return charBase + n.children[i].byteToChar(byteOffset-byteBase)
		}
		byteBase += summary.Bytes
		charBase += CharOffset(summary.Chars)
	}

	lastIdx := len(n.children) - 1
	lastByteBase := byteBase - n.childSummaries[lastIdx].Bytes
	lastCharBase := charBase - CharOffset(n.childSummaries[lastIdx].Chars)
	return lastCharBase + n.children[lastIdx].byteToChar(byteOffset-lastByteBase)
}

func leafByteToChar(chunks []Chunk, byteOffset ByteOffset) CharOffset {
	var byteBase ByteOffset
	var charBase CharOffset
	for _, chunk := range chunks {
		chunkLen := ByteOffset(chunk.Len())
		if byteBase+chunkLen > byteOffset {
			return charBase + chunkByteToChar(chunk.String(), int(byteOffset-byteBase))
		}
		byteBase += chunkLen
		charBase += CharOffset(chunk.Summary().Chars)
	}
	return charBase
}

func chunkByteToChar(s string, byteOffset int) CharOffset {
	var count CharOffset
	for i := range s {
		if i >= byteOffset {
			break
		}
		count++
	}
	return count
}

// InsertChars inserts text at the given char offset. Returns a new rope.
func (r Rope) InsertChars(charOffset CharOffset, text string) Rope {
	return r.Insert(r.CharToByte(charOffset), text)
}

// RemoveChars deletes the char range [start, end). Returns a new rope.
func (r Rope) RemoveChars(start, end CharOffset) Rope {
	return r.Delete(r.CharToByte(start), r.CharToByte(end))
}

// ReplaceChars replaces the char range [start, end) with text.
func (r Rope) ReplaceChars(start, end CharOffset, text string) Rope {
	return r.Replace(r.CharToByte(start), r.CharToByte(end), text)
}

// SliceChars returns the text in the char range [start, end).
func (r Rope) SliceChars(start, end CharOffset) string {
	return r.Slice(r.CharToByte(start), r.CharToByte(end))
}

// RuneAt returns the rune starting at the given char offset.
func (r Rope) RuneAt(charOffset CharOffset) (rune, bool) {
	b := r.CharToByte(charOffset)
	if b >= r.Len() {
		return 0, false
	}
	s := r.Slice(b, r.Len())
	rn, size := utf8.DecodeRuneInString(s)
	if rn == utf8.RuneError && size <= 1 {
		return 0, false
	}
	return rn, true
}

// CharToLine converts a char offset to a 0-indexed line number.
func (r Rope) CharToLine(charOffset CharOffset) uint32 {
	return r.OffsetToPoint(r.CharToByte(charOffset)).Line
}

// LineToChar returns the char offset of the start of the given line.
func (r Rope) LineToChar(line uint32) CharOffset {
	return r.ByteToChar(r.LineStartOffset(line))
}

// FinalNonNewlineCharOffsetForLine returns the char offset of the last
// non-break char in a line — used to clamp cursors away from splitting a
// \r\n pair.
func (r Rope) FinalNonNewlineCharOffsetForLine(line uint32) CharOffset {
	start := r.LineStartOffset(line)
	end := r.LineEndOffset(line)
	text := r.Slice(start, end)
	// LineEndOffset already excludes the line break itself, so the final
	// non-newline char offset is simply the char length of that slice,
	// measured from the line start.
	lineStartChar := r.ByteToChar(start)
	return lineStartChar + CharOffset(utf8.RuneCountInString(text))
}

// LineLenChars returns the number of chars in the given line, excluding
// its line break.
func (r Rope) LineLenChars(line uint32) uint32 {
	return uint32(utf8.RuneCountInString(r.LineText(line)))
}
