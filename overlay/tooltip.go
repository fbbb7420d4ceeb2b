package overlay

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/autotab/internal/grapheme"
)

// tooltip renders the tooltip box for c, sized to fit the viewport.
func (r *Renderer) tooltip(c Content, f Frame) (string, bool) {
	st := r.styles
	inner := minInt(r.maxWidth, f.Viewport.Width) - st.Tooltip.GetHorizontalFrameSize()
	if inner <= 0 {
		return "", false
	}

	lines := []string{st.Completion.Render(fit(c.Remaining, inner))}
	for i, a := range c.Alternatives {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		lines = append(lines, st.Alternative.Render(fit(strconv.Itoa(i+1)+": "+a, inner)))
	}
	if hint := r.hints.line(c.hasAlternatives()); hint != "" {
		lines = append(lines, st.Hint.Render(fit(hint, inner)))
	}
	return st.Tooltip.Render(strings.Join(lines, "\n")), true
}

// statusBox renders a loading or error message in the status slot.
func (r *Renderer) statusBox(s Status, f Frame) (string, bool) {
	style := r.styles.Loading
	if s.Kind == StatusError {
		style = r.styles.Error
	}
	inner := minInt(r.maxWidth, f.Viewport.Width) - style.GetHorizontalFrameSize()
	if inner <= 0 || strings.TrimSpace(s.Text) == "" {
		return "", false
	}
	return style.Render(fit(s.Text, inner)), true
}

// boxPosition anchors a box at the caret column below the field.
func (r *Renderer) boxPosition(box string, f Frame) (int, int) {
	anchorX, _ := f.CaretCell()
	x, y, _ := placeBox(f.Viewport, f.Field, anchorX, lipgloss.Width(box), lipgloss.Height(box))
	return x, y
}

func fit(text string, width int) string {
	return grapheme.Truncate(grapheme.SingleLine(strings.TrimSpace(text)), width, "…")
}
