package buffer

import "strings"

// InsertText inserts s at the cursor, replacing the selection if any.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		b.DeleteSelection()
		return
	}
	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.edit(r, s)
}

// InsertNewline inserts a line break at the cursor.
func (b *Buffer) InsertNewline() { b.InsertText("\n") }

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if b.DeleteSelection() {
		return
	}
	row, col := b.cursor.Row, b.cursor.Col
	switch {
	case col > 0:
		b.edit(Range{Start: Pos{Row: row, Col: col - 1}, End: b.cursor}, "")
	case row > 0:
		// Join with the previous line.
		b.edit(Range{Start: Pos{Row: row - 1, Col: len(b.lines[row-1])}, End: b.cursor}, "")
	}
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if b.DeleteSelection() {
		return
	}
	row, col := b.cursor.Row, b.cursor.Col
	switch {
	case col < len(b.lines[row]):
		b.edit(Range{Start: b.cursor, End: Pos{Row: row, Col: col + 1}}, "")
	case row < len(b.lines)-1:
		b.edit(Range{Start: b.cursor, End: Pos{Row: row + 1}}, "")
	}
}

// DeleteSelection deletes the active selection and reports whether it did.
func (b *Buffer) DeleteSelection() bool {
	r, ok := b.Selection()
	if !ok {
		return false
	}
	b.edit(r, "")
	return true
}

func (b *Buffer) edit(r Range, text string) {
	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)
	next, applied, changed := b.replaceRange(r, text)
	if !changed {
		return
	}
	b.cursor = next
	b.sel = selectionState{}
	b.version++
	b.recordUndo(prev)
	change.addAppliedEdit(applied)
	b.commitChange(change)
}

func (b *Buffer) replaceRange(r Range, text string) (next Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	deleted := b.textInRange(r)
	if deleted == text {
		return b.cursor, AppliedEdit{}, false
	}

	prefix := append([]rune(nil), b.lines[r.Start.Row][:r.Start.Col]...)
	suffix := append([]rune(nil), b.lines[r.End.Row][r.End.Col:]...)

	ins := splitLines(text)
	repl := make([][]rune, 0, len(ins))
	for i, part := range ins {
		var line []rune
		if i == 0 {
			line = append(line, prefix...)
		}
		line = append(line, part...)
		repl = append(repl, line)
	}
	lastPart := ins[len(ins)-1]
	next = Pos{Row: r.Start.Row + len(ins) - 1, Col: len(lastPart)}
	if len(ins) == 1 {
		next.Col += len(prefix)
	}
	repl[len(repl)-1] = append(repl[len(repl)-1], suffix...)

	out := make([][]rune, 0, len(b.lines)-(r.End.Row-r.Start.Row)+len(repl))
	out = append(out, b.lines[:r.Start.Row]...)
	out = append(out, repl...)
	out = append(out, b.lines[r.End.Row+1:]...)
	b.lines = out

	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: next},
		InsertText:  text,
		DeletedText: deleted,
	}
	return next, applied, true
}

func (b *Buffer) textInRange(r Range) string {
	if r.IsEmpty() {
		return ""
	}
	if r.Start.Row == r.End.Row {
		return string(b.lines[r.Start.Row][r.Start.Col:r.End.Col])
	}
	var sb strings.Builder
	for row := r.Start.Row; row <= r.End.Row; row++ {
		if row > r.Start.Row {
			sb.WriteByte('\n')
		}
		start, end := 0, len(b.lines[row])
		if row == r.Start.Row {
			start = r.Start.Col
		}
		if row == r.End.Row {
			end = r.End.Col
		}
		sb.WriteString(string(b.lines[row][start:end]))
	}
	return sb.String()
}
