// Package grapheme measures text the way a terminal draws it: grapheme
// clusters laid out in cells, with tabs expanded to the next stop.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is used when a caller passes a non-positive tab width.
const DefaultTabWidth = 4

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// CellWidth returns the number of cells cluster occupies when drawn at
// visualCol. Tabs advance to the next multiple of tabWidth.
func CellWidth(cluster string, visualCol, tabWidth int) int {
	if cluster == "\t" {
		return tabAdvance(visualCol, tabWidth)
	}

	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	if w < 0 {
		w = 0
	}
	return w
}

// Width returns the cell width of a single-line string starting at column 0.
func Width(text string, tabWidth int) int {
	col := 0
	for _, c := range Split(text) {
		col += CellWidth(c, col, tabWidth)
	}
	return col
}

// Truncate cuts text so that it fits in maxCells cells. When text is cut and
// tail is non-empty, tail replaces the last cells.
func Truncate(text string, maxCells int, tail string) string {
	if maxCells <= 0 {
		return ""
	}
	if Width(text, DefaultTabWidth) <= maxCells {
		return text
	}

	tailW := Width(tail, DefaultTabWidth)
	if tailW >= maxCells {
		tail, tailW = "", 0
	}
	limit := maxCells - tailW

	var sb strings.Builder
	col := 0
	for _, c := range Split(text) {
		w := CellWidth(c, col, DefaultTabWidth)
		if col+w > limit {
			break
		}
		sb.WriteString(c)
		col += w
	}
	sb.WriteString(tail)
	return sb.String()
}

// SingleLine replaces line breaks with spaces and drops other control
// characters except tab.
func SingleLine(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r':
			return ' '
		case r == '\t':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func tabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	if visualCol < 0 {
		visualCol = 0
	}
	return tabWidth - visualCol%tabWidth
}
