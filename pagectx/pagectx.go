// Package pagectx builds the page and field context sent with every
// completion request.
package pagectx

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/iw2rmb/autotab/internal/logx"
	"github.com/iw2rmb/autotab/surface"
)

// DefaultMaxDistance is the default number of rows around the field scanned
// for nearby text.
const DefaultMaxDistance = 6

// labelReach is how many rows above the field a "Label:" line may sit.
const labelReach = 2

// Snapshot is the context attached to a completion request.
type Snapshot struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	NearbyText       string `json:"nearby_text"`
	InputLabel       string `json:"input_label"`
	InputPlaceholder string `json:"input_placeholder"`
	InputName        string `json:"input_name"`
	InputType        string `json:"input_type"`
}

// Page is the visible text of the host program, one entry per screen row.
type Page struct {
	Title       string
	Description string
	Lines       []string
}

// Extractor turns a Page and a field into a Snapshot.
type Extractor struct {
	// MaxDistance bounds how far, in rows, nearby text is collected from.
	MaxDistance int
	// Hook optionally rewrites the snapshot.
	Hook   *LuaHook
	Logger *log.Logger
}

// Extract builds the snapshot for a field drawn at row of page.
func (e *Extractor) Extract(page Page, field surface.FieldInfo, row int) Snapshot {
	s := Snapshot{
		Title:            strings.TrimSpace(page.Title),
		Description:      strings.TrimSpace(page.Description),
		NearbyText:       NearbyText(page.Lines, row, e.maxDistance()),
		InputLabel:       InferLabel(page.Lines, field, row),
		InputPlaceholder: field.Placeholder,
		InputName:        field.Name,
		InputType:        field.Type,
	}
	if e.Hook == nil {
		return s
	}
	out, err := e.Hook.Apply(s)
	if err != nil {
		logx.OrDiscard(e.Logger).Warn("context hook failed", "err", err)
		return s
	}
	return out
}

func (e *Extractor) maxDistance() int {
	if e.MaxDistance <= 0 {
		return DefaultMaxDistance
	}
	return e.MaxDistance
}

// NearbyText joins the non-empty lines within maxDistance rows of row,
// closest first. The field row itself is skipped. Lines at equal distance
// keep page order.
func NearbyText(lines []string, row, maxDistance int) string {
	type near struct {
		text string
		dist int
		row  int
	}
	var found []near
	for i, l := range lines {
		d := i - row
		if d < 0 {
			d = -d
		}
		if i == row || d > maxDistance {
			continue
		}
		if t := strings.Join(strings.Fields(l), " "); t != "" {
			found = append(found, near{text: t, dist: d, row: i})
		}
	}
	sort.SliceStable(found, func(a, b int) bool {
		if found[a].dist != found[b].dist {
			return found[a].dist < found[b].dist
		}
		return found[a].row < found[b].row
	})
	out := make([]string, len(found))
	for i, n := range found {
		out[i] = n.text
	}
	return strings.Join(out, " ")
}

// InferLabel returns the field's explicit label, else the closest line
// ending in ':' within two rows above it, else "".
func InferLabel(lines []string, field surface.FieldInfo, row int) string {
	if l := strings.TrimSpace(field.Label); l != "" {
		return l
	}
	for i := row - 1; i >= 0 && i >= row-labelReach; i-- {
		if i >= len(lines) {
			continue
		}
		l := strings.TrimSpace(lines[i])
		if strings.HasSuffix(l, ":") {
			return strings.TrimSpace(strings.TrimSuffix(l, ":"))
		}
	}
	return ""
}
