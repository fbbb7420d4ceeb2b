package surface

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

// TextInput adapts a single-line bubbles text input.
type TextInput struct {
	m      *textinput.Model
	info   FieldInfo
	notify Notifier
}

func NewTextInput(m *textinput.Model, info FieldInfo, n Notifier) *TextInput {
	if info.Type == "" {
		info.Type = "text"
	}
	return &TextInput{m: m, info: info, notify: n}
}

func (s *TextInput) Kind() Kind  { return KindNativeField }
func (s *TextInput) Target() any { return s.m }

func (s *TextInput) Read() Snapshot {
	return Snapshot{Text: s.m.Value(), Cursor: s.m.Position()}.Clamp()
}

func (s *TextInput) Write(text string, cursor int) error {
	s.m.SetValue(text)
	s.m.SetCursor(cursor)
	s.notify.notify(s, SourceProgrammatic)
	return nil
}

func (s *TextInput) FieldInfo() FieldInfo {
	info := s.info
	if info.Placeholder == "" {
		info.Placeholder = s.m.Placeholder
	}
	return info
}

// TextArea adapts a multi-line bubbles textarea. Offsets count '\n' as one
// rune.
type TextArea struct {
	m      *textarea.Model
	info   FieldInfo
	notify Notifier
}

func NewTextArea(m *textarea.Model, info FieldInfo, n Notifier) *TextArea {
	if info.Type == "" {
		info.Type = "textarea"
	}
	return &TextArea{m: m, info: info, notify: n}
}

func (s *TextArea) Kind() Kind  { return KindNativeField }
func (s *TextArea) Target() any { return s.m }

func (s *TextArea) Read() Snapshot {
	text := s.m.Value()
	li := s.m.LineInfo()
	row, col := s.m.Line(), li.StartColumn+li.ColumnOffset
	return Snapshot{Text: text, Cursor: offsetOf(text, row, col)}.Clamp()
}

func (s *TextArea) Write(text string, cursor int) error {
	s.m.SetValue(text)
	row, col := rowColOf(text, cursor)
	// SetValue leaves the cursor on the last line; walk back up to row.
	for guard := utf8.RuneCountInString(text) + 1; s.m.Line() > row && guard > 0; guard-- {
		s.m.CursorUp()
	}
	s.m.SetCursor(col)
	s.notify.notify(s, SourceProgrammatic)
	return nil
}

func (s *TextArea) FieldInfo() FieldInfo {
	info := s.info
	if info.Placeholder == "" {
		info.Placeholder = s.m.Placeholder
	}
	return info
}

// offsetOf converts a (row, col) rune position in text to a rune offset.
func offsetOf(text string, row, col int) int {
	off, r := 0, 0
	for _, c := range text {
		if r == row {
			break
		}
		off++
		if c == '\n' {
			r++
		}
	}
	return off + col
}

// rowColOf converts a rune offset into a (row, col) position in text.
func rowColOf(text string, off int) (row, col int) {
	i := 0
	for _, c := range text {
		if i >= off {
			break
		}
		i++
		if c == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}
