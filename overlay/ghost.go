package overlay

import (
	"strings"

	"github.com/iw2rmb/autotab/internal/grapheme"
)

// ghost renders the remaining text as one faint line starting at the caret.
// Alternatives are not drawn in ghost mode.
func (r *Renderer) ghost(c Content, f Frame) (text string, x, y int, ok bool) {
	x, y = f.CaretCell()
	x += f.Metrics.CursorCells
	if x < 0 || y < 0 || x >= f.Viewport.Width || y >= f.Viewport.Height {
		return "", 0, 0, false
	}

	remaining := grapheme.SingleLine(c.Remaining)
	remaining = strings.TrimRight(remaining, " \t")
	remaining = grapheme.Truncate(remaining, f.Viewport.Width-x, "")
	if strings.TrimSpace(remaining) == "" {
		return "", 0, 0, false
	}
	return r.styles.Ghost.Render(remaining), x, y, true
}
