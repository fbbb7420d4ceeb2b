package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// composite draws fg over bg with its top-left cell at (x, y).
func composite(fg, bg string, x, y int) string {
	if strings.Contains(fg, "\n") || strings.Contains(bg, "\n") {
		return overlay.Composite(fg, bg, overlay.Left, overlay.Top, x, y)
	}
	// overlay.Composite returns fg as is when both views are one line.
	if fg == "" || y != 0 {
		return bg
	}
	x = maxInt(x, 0)

	left := ansi.Truncate(bg, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	return left + fg + ansi.TruncateLeft(bg, x+ansi.StringWidth(fg), "")
}
