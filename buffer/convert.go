package buffer

// Offset returns the cursor as a rune offset into Text().
func (b *Buffer) Offset() int { return b.OffsetFromPos(b.cursor) }

// SetOffset moves the cursor to a rune offset, clamped into the document.
func (b *Buffer) SetOffset(off int) { b.SetCursor(b.posFromOffset(off)) }

// OffsetFromPos converts a clamped position to a rune offset.
func (b *Buffer) OffsetFromPos(p Pos) int {
	p = b.clampPos(p)
	off := 0
	for row := 0; row < p.Row; row++ {
		off += len(b.lines[row]) + 1
	}
	return off + p.Col
}

// PosFromOffset converts a rune offset to a position, clamping out-of-range
// offsets to the document bounds.
func (b *Buffer) PosFromOffset(off int) Pos { return b.posFromOffset(off) }

func (b *Buffer) posFromOffset(off int) Pos {
	if off <= 0 {
		return Pos{}
	}
	for row, line := range b.lines {
		if off <= len(line) {
			return Pos{Row: row, Col: off}
		}
		off -= len(line) + 1
	}
	last := len(b.lines) - 1
	return Pos{Row: last, Col: len(b.lines[last])}
}

// Len returns the document length in runes.
func (b *Buffer) Len() int {
	n := 0
	for i, line := range b.lines {
		if i > 0 {
			n++
		}
		n += len(line)
	}
	return n
}
