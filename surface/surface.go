// Package surface gives uniform read/write access to the text and cursor of
// whichever editable control has focus.
//
// Three kinds of control are supported: native fields (bubbles textinput and
// textarea), content-editable regions (buffer.Buffer) and third-party widgets
// that expose a code model through ModelHost.
package surface

import (
	"errors"
	"unicode/utf8"
)

// ErrUnsupported is returned by Registry.Resolve when no adapter recognizes a
// target. Callers ignore such targets silently.
var ErrUnsupported = errors.New("surface: unsupported target")

// Snapshot is the text of a surface and its cursor as a rune offset into it.
type Snapshot struct {
	Text   string
	Cursor int
}

// Clamp returns s with Cursor clamped into [0, rune length of Text].
func (s Snapshot) Clamp() Snapshot {
	n := utf8.RuneCountInString(s.Text)
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor > n {
		s.Cursor = n
	}
	return s
}

// Before returns the text before the cursor.
func (s Snapshot) Before() string {
	s = s.Clamp()
	return string([]rune(s.Text)[:s.Cursor])
}

// After returns the text after the cursor.
func (s Snapshot) After() string {
	s = s.Clamp()
	return string([]rune(s.Text)[s.Cursor:])
}

// Kind tags the variant behind a Surface.
type Kind uint8

const (
	KindNativeField Kind = iota
	KindContentEditable
	KindWidget
)

func (k Kind) String() string {
	switch k {
	case KindNativeField:
		return "native-field"
	case KindContentEditable:
		return "content-editable"
	case KindWidget:
		return "widget"
	default:
		return "unknown"
	}
}

// Surface reads and writes one editable control.
//
// Write replaces the whole text and places the cursor in one step, then
// reports the change through the adapter's Notifier so the host sees it as
// ordinary input.
type Surface interface {
	Kind() Kind
	Read() Snapshot
	Write(text string, cursor int) error
	// Target returns the underlying control. It identifies the surface across
	// events.
	Target() any
}

// FieldInfo describes a control for context extraction.
type FieldInfo struct {
	Label       string
	Placeholder string
	Name        string
	Type        string
}

// Describer is implemented by surfaces and targets that can describe
// themselves.
type Describer interface {
	FieldInfo() FieldInfo
}

// Describe returns the FieldInfo of s, consulting the surface first and then
// its target.
func Describe(s Surface) FieldInfo {
	if d, ok := s.(Describer); ok {
		return d.FieldInfo()
	}
	if d, ok := s.Target().(Describer); ok {
		return d.FieldInfo()
	}
	return FieldInfo{}
}

// Source tells whether a change came from the user or from code.
type Source uint8

const (
	SourceUser Source = iota
	SourceProgrammatic
)

func (s Source) String() string {
	if s == SourceProgrammatic {
		return "programmatic"
	}
	return "user"
}

// ChangeEvent is delivered to a Notifier after a surface changes.
type ChangeEvent struct {
	Target   any
	Source   Source
	Snapshot Snapshot
}

// Notifier receives change events; it is the host's input notification.
type Notifier func(ChangeEvent)

func (n Notifier) notify(s Surface, src Source) {
	if n == nil {
		return
	}
	n(ChangeEvent{Target: s.Target(), Source: src, Snapshot: s.Read()})
}
