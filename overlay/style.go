package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles controls overlay rendering.
type Styles struct {
	Tooltip     lipgloss.Style
	Completion  lipgloss.Style
	Alternative lipgloss.Style
	Hint        lipgloss.Style
	Ghost       lipgloss.Style
	Loading     lipgloss.Style
	Error       lipgloss.Style
}

// DefaultStyles returns styles bound to the default lipgloss renderer.
func DefaultStyles() Styles {
	return StylesFor(lipgloss.DefaultRenderer())
}

// StylesFor returns the default styles bound to r. Adaptive colours follow r's
// background detection.
func StylesFor(r *lipgloss.Renderer) Styles {
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "250", Dark: "240"}).
		Padding(0, 1)
	dim := lipgloss.AdaptiveColor{Light: "245", Dark: "242"}
	return Styles{
		Tooltip:     box,
		Completion:  r.NewStyle().Bold(true),
		Alternative: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "238", Dark: "250"}),
		Hint:        r.NewStyle().Foreground(dim).Italic(true),
		Ghost:       r.NewStyle().Foreground(dim).Faint(true),
		Loading:     box.Foreground(dim),
		Error:       box.BorderForeground(lipgloss.Color("160")).Foreground(lipgloss.Color("160")),
	}
}

// Hints are the key descriptions printed at the bottom of the tooltip.
type Hints struct {
	Accept       string
	Alternatives string
	Dismiss      string
}

// DefaultHints matches the default suggestion key map.
func DefaultHints() Hints {
	return Hints{
		Accept:       "tab accept",
		Alternatives: "1-3 alternatives",
		Dismiss:      "esc dismiss",
	}
}

func (h Hints) line(withAlternatives bool) string {
	parts := []string{h.Accept}
	if withAlternatives {
		parts = append(parts, h.Alternatives)
	}
	parts = append(parts, h.Dismiss)

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " · ")
}
