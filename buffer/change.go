package buffer

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	// ChangeSourceLocal marks edits typed by the user.
	ChangeSourceLocal ChangeSource = iota
	// ChangeSourceProgrammatic marks writes made by code, such as an accepted
	// completion.
	ChangeSourceProgrammatic
)

func (s ChangeSource) String() string {
	switch s {
	case ChangeSourceLocal:
		return "local"
	case ChangeSourceProgrammatic:
		return "programmatic"
	default:
		return "unknown"
	}
}

// AppliedEdit describes one effective edit in a change.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string
}

// Change is a versioned mutation payload delivered to listeners.
type Change struct {
	Source        ChangeSource
	VersionBefore uint64
	VersionAfter  uint64
	CursorBefore  Pos
	CursorAfter   Pos
	AppliedEdits  []AppliedEdit
}

// TextChanged reports whether the change touched the text.
func (c Change) TextChanged() bool { return len(c.AppliedEdits) > 0 }

type listener struct {
	id int
	fn func(Change)
}

// OnChange registers fn for every committed change and returns a function
// that unregisters it. Calling the returned function more than once is a no-op.
func (b *Buffer) OnChange(fn func(Change)) (cancel func()) {
	b.nextListener++
	id := b.nextListener
	b.listeners = append(b.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.AppliedEdits = append([]AppliedEdit(nil), in.AppliedEdits...)
	return out
}

type changeBuilder struct {
	source        ChangeSource
	versionBefore uint64
	cursorBefore  Pos
	appliedEdits  []AppliedEdit
}

func (b *Buffer) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:        source,
		versionBefore: b.version,
		cursorBefore:  b.cursor,
	}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	edit.RangeBefore = NormalizeRange(edit.RangeBefore)
	edit.RangeAfter = NormalizeRange(edit.RangeAfter)
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		Source:        cb.source,
		VersionBefore: cb.versionBefore,
		VersionAfter:  b.version,
		CursorBefore:  cb.cursorBefore,
		CursorAfter:   b.cursor,
		AppliedEdits:  append([]AppliedEdit(nil), cb.appliedEdits...),
	}
	b.hasLastChange = true
	for _, l := range append([]listener(nil), b.listeners...) {
		l.fn(cloneChange(b.lastChange))
	}
}

func replacementAppliedEdit(beforeText, afterText string) (AppliedEdit, bool) {
	if beforeText == afterText {
		return AppliedEdit{}, false
	}
	return AppliedEdit{
		RangeBefore: fullDocumentRange(beforeText),
		RangeAfter:  fullDocumentRange(afterText),
		InsertText:  afterText,
		DeletedText: beforeText,
	}, true
}

func fullDocumentRange(text string) Range {
	lines := splitLines(text)
	last := len(lines) - 1
	return Range{End: Pos{Row: last, Col: len(lines[last])}}
}
