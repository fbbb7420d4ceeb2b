package surface

// CodeModel is the text model of a third-party editor widget, addressed by
// rune offsets.
type CodeModel interface {
	Value() string
	CursorOffset() int
	SetValue(text string)
	SetCursorOffset(off int)
}

// ModelHost is implemented by widgets that expose their CodeModel. The model
// may be absent, for example before the widget has loaded a document.
type ModelHost interface {
	EditorModel() (CodeModel, bool)
}

// Widget adapts a ModelHost. Without a model it reads as empty text at
// offset 0 and ignores writes.
type Widget struct {
	host   ModelHost
	notify Notifier
}

func NewWidget(host ModelHost, n Notifier) *Widget {
	return &Widget{host: host, notify: n}
}

func (s *Widget) Kind() Kind  { return KindWidget }
func (s *Widget) Target() any { return s.host }

func (s *Widget) Read() Snapshot {
	m, ok := s.host.EditorModel()
	if !ok || m == nil {
		return Snapshot{}
	}
	return Snapshot{Text: m.Value(), Cursor: m.CursorOffset()}.Clamp()
}

func (s *Widget) Write(text string, cursor int) error {
	m, ok := s.host.EditorModel()
	if !ok || m == nil {
		return nil
	}
	m.SetValue(text)
	m.SetCursorOffset(cursor)
	s.notify.notify(s, SourceProgrammatic)
	return nil
}
