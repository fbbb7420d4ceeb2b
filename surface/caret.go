package surface

import "strings"

// Caret locates the cursor of s: its 0-based line, the text of that line and
// the text on that line before the cursor.
func Caret(s Snapshot) (row int, line, before string) {
	head := s.Before()
	row = strings.Count(head, "\n")
	lineStart := strings.LastIndexByte(head, '\n') + 1
	before = head[lineStart:]

	rest := s.Text[lineStart:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return row, rest, before
}
