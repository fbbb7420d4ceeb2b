package buffer

type bufferSnapshot struct {
	text   string
	cursor Pos
	sel    selectionState
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{text: b.Text(), cursor: b.cursor, sel: b.sel}
}

func (b *Buffer) restore(s bufferSnapshot) {
	b.lines = splitLines(s.text)
	b.cursor = b.clampPos(s.cursor)
	b.sel = selectionState{}
	if s.sel.active {
		anchor, end := b.clampPos(s.sel.anchor), b.clampPos(s.sel.end)
		if anchor != end {
			b.sel = selectionState{active: true, anchor: anchor, end: end}
		}
	}
}

func (b *Buffer) pushUndo(s bufferSnapshot) {
	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}
	b.hist.undo = append(b.hist.undo, s)
	if len(b.hist.undo) > limit {
		b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
	}
}

func (b *Buffer) recordUndo(prev bufferSnapshot) {
	b.pushUndo(prev)
	b.hist.redo = nil
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

// Undo restores the state before the last text edit. Accepted completions
// are undoable like typed text.
func (b *Buffer) Undo() bool {
	if len(b.hist.undo) == 0 {
		return false
	}
	cur := b.snapshot()
	i := len(b.hist.undo) - 1
	prev := b.hist.undo[i]
	b.hist.undo = b.hist.undo[:i]
	b.hist.redo = append(b.hist.redo, cur)
	b.swapTo(cur, prev)
	return true
}

func (b *Buffer) Redo() bool {
	if len(b.hist.redo) == 0 {
		return false
	}
	cur := b.snapshot()
	i := len(b.hist.redo) - 1
	next := b.hist.redo[i]
	b.hist.redo = b.hist.redo[:i]
	b.pushUndo(cur)
	b.swapTo(cur, next)
	return true
}

func (b *Buffer) swapTo(cur, target bufferSnapshot) {
	change := b.beginChange(ChangeSourceLocal)
	b.restore(target)
	b.version++
	if applied, ok := replacementAppliedEdit(cur.text, target.text); ok {
		change.addAppliedEdit(applied)
	}
	b.commitChange(change)
}
