package buffer

import "unicode"

type MoveUnit int

const (
	MoveRune MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (doc start for MoveDoc)
	DirEnd  // line end (doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // extend the selection instead of clearing it
}

// Move moves the cursor and reports whether anything changed.
func (b *Buffer) Move(m Move) bool {
	prevCursor, prevSel := b.cursor, b.sel
	next := b.clampPos(b.moveCursor(prevCursor, m))

	nextSel := selectionState{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active {
			anchor = prevSel.anchor
		}
		if anchor != next {
			nextSel = selectionState{active: true, anchor: anchor, end: next}
		}
	}
	if prevCursor == next && prevSel == nextSel {
		return false
	}
	b.cursor = next
	b.sel = nextSel
	b.version++
	return true
}

func (b *Buffer) moveCursor(p Pos, m Move) Pos {
	switch m.Unit {
	case MoveRune:
		return b.moveRune(p, m.Dir)
	case MoveWord:
		return b.moveWord(p, m.Dir)
	case MoveLine:
		return b.moveLine(p, m.Dir)
	case MoveDoc:
		return b.moveDoc(p, m.Dir)
	}
	return p
}

func (b *Buffer) moveRune(p Pos, dir MoveDir) Pos {
	switch dir {
	case DirLeft:
		if p.Col > 0 {
			return Pos{Row: p.Row, Col: p.Col - 1}
		}
		if p.Row > 0 {
			return Pos{Row: p.Row - 1, Col: len(b.lines[p.Row-1])}
		}
	case DirRight:
		if p.Col < len(b.lines[p.Row]) {
			return Pos{Row: p.Row, Col: p.Col + 1}
		}
		if p.Row < len(b.lines)-1 {
			return Pos{Row: p.Row + 1}
		}
	default:
		return b.moveLine(p, dir)
	}
	return p
}

func (b *Buffer) moveWord(p Pos, dir MoveDir) Pos {
	line := b.lines[p.Row]
	switch dir {
	case DirLeft:
		return Pos{Row: p.Row, Col: prevWordBoundary(line, p.Col)}
	case DirRight:
		return Pos{Row: p.Row, Col: nextWordBoundary(line, p.Col)}
	}
	return b.moveLine(p, dir)
}

func (b *Buffer) moveLine(p Pos, dir MoveDir) Pos {
	switch dir {
	case DirHome:
		return Pos{Row: p.Row}
	case DirEnd:
		return Pos{Row: p.Row, Col: len(b.lines[p.Row])}
	case DirUp:
		if p.Row > 0 {
			return Pos{Row: p.Row - 1, Col: min(p.Col, len(b.lines[p.Row-1]))}
		}
	case DirDown:
		if p.Row < len(b.lines)-1 {
			return Pos{Row: p.Row + 1, Col: min(p.Col, len(b.lines[p.Row+1]))}
		}
	}
	return p
}

func (b *Buffer) moveDoc(p Pos, dir MoveDir) Pos {
	last := len(b.lines) - 1
	switch dir {
	case DirHome, DirUp:
		return Pos{}
	case DirEnd, DirDown:
		return Pos{Row: last, Col: len(b.lines[last])}
	}
	return p
}

// Word boundaries skip whitespace, then non-whitespace, within one line.
func prevWordBoundary(line []rune, col int) int {
	i := clampInt(col, 0, len(line))
	for i > 0 && unicode.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(line []rune, col int) int {
	i := clampInt(col, 0, len(line))
	for i < len(line) && unicode.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !unicode.IsSpace(line[i]) {
		i++
	}
	return i
}
