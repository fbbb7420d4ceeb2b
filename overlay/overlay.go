// Package overlay draws the suggestion UI on top of a host view: a tooltip box
// next to the focused field or faint ghost text at the caret, plus a status
// slot for loading and error messages.
//
// A Renderer holds at most one suggestion overlay. Keyboard handling is tied
// to that overlay through a KeyScope: showing an overlay installs its handler
// and removing it disposes the handler, on every path.
package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode selects how a suggestion is drawn.
type Mode uint8

const (
	ModeTooltip Mode = iota
	ModeGhost
)

func (m Mode) String() string {
	if m == ModeGhost {
		return "ghost"
	}
	return "tooltip"
}

// Content is what an overlay shows. Alternatives keep their position so the
// numbers drawn next to them match the digit keys; empty entries are hidden.
type Content struct {
	Remaining    string
	Alternatives []string
}

// Empty reports whether there is nothing worth drawing.
func (c Content) Empty() bool {
	return strings.TrimSpace(c.Remaining) == ""
}

func (c Content) hasAlternatives() bool {
	for _, a := range c.Alternatives {
		if strings.TrimSpace(a) != "" {
			return true
		}
	}
	return false
}

// Handler receives key presses while its overlay is shown. It reports whether
// it consumed the key.
type Handler func(tea.KeyMsg) (bool, tea.Cmd)

// Overlay is a shown suggestion overlay.
type Overlay struct {
	id      uint64
	mode    Mode
	content Content
	dispose Disposer
	removed bool
}

func (o *Overlay) ID() uint64       { return o.id }
func (o *Overlay) Mode() Mode       { return o.mode }
func (o *Overlay) Content() Content { return o.content }

// Removed reports whether the overlay has been taken down.
func (o *Overlay) Removed() bool { return o.removed }

func (o *Overlay) remove() {
	if o.removed {
		return
	}
	o.removed = true
	if o.dispose != nil {
		o.dispose()
	}
}
