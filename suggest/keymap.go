package suggest

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/autotab/overlay"
)

// KeyMap binds the keys handled while a suggestion is shown.
type KeyMap struct {
	Accept     key.Binding
	AcceptWord key.Binding
	Dismiss    key.Binding
	// Alternatives[i] accepts alternative i. Only honoured in tooltip mode.
	Alternatives []key.Binding
}

func DefaultKeyMap() KeyMap {
	alts := make([]key.Binding, 0, 9)
	for i := 1; i <= 9; i++ {
		d := strconv.Itoa(i)
		alts = append(alts, key.NewBinding(key.WithKeys(d), key.WithHelp(d, "accept alternative "+d)))
	}
	return KeyMap{
		Accept:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "accept")),
		AcceptWord:   key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("ctrl+→", "accept word")),
		Dismiss:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Alternatives: alts,
	}
}

// Hints describes the key map for the tooltip.
func (k KeyMap) Hints() overlay.Hints {
	h := overlay.Hints{}
	if k.Accept.Enabled() {
		h.Accept = help(k.Accept)
	}
	if k.Dismiss.Enabled() {
		h.Dismiss = help(k.Dismiss)
	}
	if n := len(k.Alternatives); n > 0 {
		if n > MaxAlternatives {
			n = MaxAlternatives
		}
		h.Alternatives = "1-" + strconv.Itoa(n) + " alternatives"
	}
	return h
}

func help(b key.Binding) string {
	hb := b.Help()
	if hb.Key == "" {
		return hb.Desc
	}
	return hb.Key + " " + hb.Desc
}
