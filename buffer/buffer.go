package buffer

import "strings"

type Options struct {
	HistoryLimit int // default: 1000
}

type selectionState struct {
	active bool
	anchor Pos
	end    Pos
}

// Buffer is the document state: text, cursor and selection.
//
// Buffer is not safe for concurrent use; it is owned by one Bubble Tea model.
type Buffer struct {
	lines   [][]rune
	version uint64

	cursor Pos
	sel    selectionState

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool
	listeners     []listener
	nextListener  int
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	return &Buffer{
		lines: splitLines(text),
		opt:   opt,
	}
}

func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Version increments on every effective text, cursor or selection change.
func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Cursor() Pos { return b.cursor }

// LineCount returns the number of logical lines (at least 1).
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of row, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor && !b.sel.active {
		return
	}
	b.cursor = next
	b.sel = selectionState{}
	b.version++
}

func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// SetSelection selects r and moves the cursor to its end. An empty range
// clears the selection.
func (b *Buffer) SetSelection(r Range) {
	c := ClampRange(r, len(b.lines), b.lineLen)
	if c.Start == c.End {
		b.ClearSelection()
		return
	}
	next := selectionState{active: true, anchor: c.Start, end: c.End}
	if next == b.sel {
		return
	}
	b.sel = next
	b.cursor = c.End
	b.version++
}

func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	b.sel = selectionState{}
	b.version++
}

// SetText replaces the whole document and places the cursor at the rune
// offset cursor in one step. Listeners observe a single change tagged with
// source.
func (b *Buffer) SetText(text string, cursor int, source ChangeSource) {
	prev := b.snapshot()
	change := b.beginChange(source)
	before := b.Text()

	b.lines = splitLines(text)
	b.sel = selectionState{}
	b.cursor = b.posFromOffset(cursor)
	if before == text && prev.cursor == b.cursor && !prev.sel.active {
		return
	}
	b.version++
	if before != text {
		b.recordUndo(prev)
		if applied, ok := replacementAppliedEdit(before, text); ok {
			change.addAppliedEdit(applied)
		}
	}
	b.commitChange(change)
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	return lines
}
