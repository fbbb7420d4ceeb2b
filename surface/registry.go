package surface

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/iw2rmb/autotab/buffer"
)

// Entry recognizes one kind of target and builds its adapter.
type Entry struct {
	Name     string
	Kind     Kind
	Supports func(target any) bool
	New      func(target any, n Notifier) Surface
}

// Registry resolves targets to adapters, trying entries in order.
type Registry struct {
	entries []Entry
	notify  Notifier
	infos   map[any]FieldInfo
}

// NewRegistry returns a registry with the built-in adapters: text input,
// textarea, rich buffer and model host, in that order.
func NewRegistry(n Notifier) *Registry {
	r := &Registry{notify: n, infos: map[any]FieldInfo{}}
	r.Register(Entry{
		Name:     "textinput",
		Kind:     KindNativeField,
		Supports: func(t any) bool { _, ok := t.(*textinput.Model); return ok },
		New: func(t any, n Notifier) Surface {
			m := t.(*textinput.Model)
			return NewTextInput(m, r.infos[t], n)
		},
	})
	r.Register(Entry{
		Name:     "textarea",
		Kind:     KindNativeField,
		Supports: func(t any) bool { _, ok := t.(*textarea.Model); return ok },
		New: func(t any, n Notifier) Surface {
			return NewTextArea(t.(*textarea.Model), r.infos[t], n)
		},
	})
	r.Register(Entry{
		Name:     "buffer",
		Kind:     KindContentEditable,
		Supports: func(t any) bool { _, ok := t.(*buffer.Buffer); return ok },
		New: func(t any, n Notifier) Surface {
			return NewRich(t.(*buffer.Buffer), r.infos[t], n)
		},
	})
	r.Register(Entry{
		Name:     "model-host",
		Kind:     KindWidget,
		Supports: func(t any) bool { _, ok := t.(ModelHost); return ok },
		New: func(t any, n Notifier) Surface {
			return NewWidget(t.(ModelHost), n)
		},
	})
	return r
}

// Register appends an entry. Entries registered later have lower priority.
func (r *Registry) Register(e Entry) {
	r.entries = append(r.entries, e)
}

// Prepend inserts an entry ahead of all others.
func (r *Registry) Prepend(e Entry) {
	r.entries = append([]Entry{e}, r.entries...)
}

// Describe attaches field metadata to a target for adapters that carry it.
func (r *Registry) Describe(target any, info FieldInfo) {
	r.infos[target] = info
}

// Resolve returns the adapter for target.
func (r *Registry) Resolve(target any) (Surface, error) {
	if target == nil {
		return nil, ErrUnsupported
	}
	for _, e := range r.entries {
		if e.Supports != nil && e.Supports(target) {
			return e.New(target, r.notify), nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, target)
}
