package surface

import "github.com/iw2rmb/autotab/buffer"

// Rich adapts a buffer.Buffer acting as a content-editable region.
type Rich struct {
	b      *buffer.Buffer
	info   FieldInfo
	notify Notifier
}

func NewRich(b *buffer.Buffer, info FieldInfo, n Notifier) *Rich {
	if info.Type == "" {
		info.Type = "contenteditable"
	}
	return &Rich{b: b, info: info, notify: n}
}

func (s *Rich) Kind() Kind           { return KindContentEditable }
func (s *Rich) Target() any          { return s.b }
func (s *Rich) FieldInfo() FieldInfo { return s.info }
func (s *Rich) Read() Snapshot       { return Snapshot{Text: s.b.Text(), Cursor: s.b.Offset()} }

func (s *Rich) Write(text string, cursor int) error {
	s.b.SetText(text, cursor, buffer.ChangeSourceProgrammatic)
	s.notify.notify(s, SourceProgrammatic)
	return nil
}
