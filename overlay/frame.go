package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/autotab/internal/grapheme"
)

// Size is a width and height in cells.
type Size struct {
	Width  int
	Height int
}

// Rect is a cell rectangle relative to the top-left of the host view.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Metrics describe how the field lays out its text.
type Metrics struct {
	// PaddingLeft is the number of cells between Field.X and the first text
	// cell, such as a prompt or a border.
	PaddingLeft int
	TabWidth    int
	// ScrollX and ScrollY are the cells and rows scrolled out of view.
	ScrollX int
	ScrollY int
	// CursorCells is the width of the cursor the host draws at the caret.
	// Ghost text starts after it.
	CursorCells int
}

// Caret locates the cursor inside the field.
type Caret struct {
	Row    int
	Before string
}

// Frame is everything the renderer needs to place an overlay.
type Frame struct {
	Viewport Size
	Field    Rect
	Metrics  Metrics
	Caret    Caret
}

// withViewport fills a missing viewport from the rendered base view.
func (f Frame) withViewport(base string) Frame {
	if f.Viewport.Width <= 0 {
		f.Viewport.Width = lipgloss.Width(base)
	}
	if f.Viewport.Height <= 0 {
		f.Viewport.Height = lipgloss.Height(base)
	}
	return f
}

// CaretCell returns the view cell of the caret.
func (f Frame) CaretCell() (x, y int) {
	x = f.Field.X + f.Metrics.PaddingLeft + grapheme.Width(f.Caret.Before, f.Metrics.TabWidth) - f.Metrics.ScrollX
	y = f.Field.Y + f.Caret.Row - f.Metrics.ScrollY
	return x, y
}

// placeBox positions a w×h box under the field starting at column anchorX. The
// box moves above the field when it would overflow the bottom and fits above,
// then is clamped into the viewport.
func placeBox(vp Size, field Rect, anchorX, w, h int) (x, y int, above bool) {
	height := field.Height
	if height < 1 {
		height = 1
	}
	belowY := field.Y + height
	belowAvail := maxInt(vp.Height-belowY, 0)
	aboveAvail := maxInt(field.Y, 0)

	y = belowY
	if h > belowAvail && aboveAvail >= h {
		y = field.Y - h
		above = true
	}
	y = clampInt(y, 0, maxInt(vp.Height-h, 0))
	x = clampInt(anchorX, 0, maxInt(vp.Width-w, 0))
	return x, y, above
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
