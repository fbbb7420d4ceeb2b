package overlay

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func plainRenderer(mode Mode) *Renderer {
	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(termenv.Ascii)
	lr.SetHasDarkBackground(true)
	st := StylesFor(lr)
	return NewRenderer(Config{Mode: mode, Styles: &st})
}

func blank(w, h int) string {
	row := strings.Repeat(" ", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func consumeAll(tea.KeyMsg) (bool, tea.Cmd) { return true, nil }

func TestShow_EmptyRemainingCreatesNothing(t *testing.T) {
	for _, remaining := range []string{"", " ", "\t \n"} {
		r := plainRenderer(ModeTooltip)
		o, ok := r.Show(Content{Remaining: remaining, Alternatives: []string{"x"}}, consumeAll)
		if ok || o != nil {
			t.Fatalf("Show(%q): got overlay, want none", remaining)
		}
		if r.Current() != nil {
			t.Fatalf("Show(%q): Current should be nil", remaining)
		}
		if r.Keys().Active() {
			t.Fatalf("Show(%q): key handler installed for empty overlay", remaining)
		}
		if handled, _ := r.Keys().Dispatch(tea.KeyMsg{Type: tea.KeyTab}); handled {
			t.Fatalf("Show(%q): key was handled with no overlay", remaining)
		}
	}
}

func TestShow_ReplacesPreviousOverlay(t *testing.T) {
	r := plainRenderer(ModeTooltip)

	var calls []string
	first, ok := r.Show(Content{Remaining: "one"}, func(tea.KeyMsg) (bool, tea.Cmd) {
		calls = append(calls, "first")
		return true, nil
	})
	if !ok {
		t.Fatalf("first Show failed")
	}
	second, ok := r.Show(Content{Remaining: "two"}, func(tea.KeyMsg) (bool, tea.Cmd) {
		calls = append(calls, "second")
		return true, nil
	})
	if !ok {
		t.Fatalf("second Show failed")
	}

	if !first.Removed() {
		t.Fatalf("first overlay should be removed")
	}
	if r.Current() != second {
		t.Fatalf("Current should be the second overlay")
	}
	if second.ID() <= first.ID() {
		t.Fatalf("overlay ids: got %d then %d, want increasing", first.ID(), second.ID())
	}

	r.Keys().Dispatch(tea.KeyMsg{Type: tea.KeyTab})
	if len(calls) != 1 || calls[0] != "second" {
		t.Fatalf("dispatch: got %v, want [second]", calls)
	}
}

func TestRemove_IsIdempotentAndLeavesNoHandler(t *testing.T) {
	r := plainRenderer(ModeGhost)
	o, _ := r.Show(Content{Remaining: "fox"}, consumeAll)

	r.Remove()
	r.Remove()

	if !o.Removed() || r.Current() != nil {
		t.Fatalf("overlay should be gone")
	}
	if r.Keys().Active() {
		t.Fatalf("handler leaked after Remove")
	}
	if !r.Keys().Balanced() {
		t.Fatalf("installs and disposals should balance")
	}
}

func TestUpdate_EmptyContentRemoves(t *testing.T) {
	r := plainRenderer(ModeTooltip)
	if r.Update(Content{Remaining: "x"}) {
		t.Fatalf("Update with nothing shown should report false")
	}

	o, _ := r.Show(Content{Remaining: "brown fox"}, consumeAll)
	if !r.Update(Content{Remaining: "fox"}) {
		t.Fatalf("Update should keep the overlay")
	}
	if got := o.Content().Remaining; got != "fox" {
		t.Fatalf("content: got %q, want %q", got, "fox")
	}
	if !r.Keys().Active() {
		t.Fatalf("Update should keep the handler")
	}

	if r.Update(Content{Remaining: "  "}) {
		t.Fatalf("Update with empty content should remove")
	}
	if r.Keys().Active() || !o.Removed() {
		t.Fatalf("overlay and handler should be gone")
	}
}

func TestKeyScope_StaleDisposerKeepsNewerHandler(t *testing.T) {
	var s KeyScope
	d1 := s.Install(consumeAll)
	d2 := s.Install(consumeAll)

	d1()
	if !s.Active() {
		t.Fatalf("stale disposer detached the newer handler")
	}
	d2()
	d2()
	if s.Active() {
		t.Fatalf("handler still active after dispose")
	}
	if !s.Balanced() {
		t.Fatalf("installs and disposals should balance")
	}
}

func TestPlaceBox(t *testing.T) {
	vp := Size{Width: 40, Height: 10}
	tests := []struct {
		name      string
		field     Rect
		anchorX   int
		w, h      int
		wantX     int
		wantY     int
		wantAbove bool
	}{
		{name: "below", field: Rect{X: 2, Y: 1, Width: 20, Height: 1}, anchorX: 5, w: 10, h: 3, wantX: 5, wantY: 2},
		{name: "flip above", field: Rect{X: 0, Y: 8, Width: 20, Height: 1}, anchorX: 0, w: 10, h: 4, wantX: 0, wantY: 4, wantAbove: true},
		{name: "clamp right edge", field: Rect{X: 0, Y: 0, Width: 40, Height: 1}, anchorX: 35, w: 10, h: 3, wantX: 30, wantY: 1},
		{name: "no room either side", field: Rect{X: 0, Y: 2, Width: 40, Height: 1}, anchorX: 0, w: 10, h: 9, wantX: 0, wantY: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, above := placeBox(vp, tt.field, tt.anchorX, tt.w, tt.h)
			if x != tt.wantX || y != tt.wantY || above != tt.wantAbove {
				t.Fatalf("placeBox: got (%d, %d, %v), want (%d, %d, %v)", x, y, above, tt.wantX, tt.wantY, tt.wantAbove)
			}
		})
	}
}

func TestFrame_CaretCell(t *testing.T) {
	f := Frame{
		Field:   Rect{X: 3, Y: 2},
		Metrics: Metrics{PaddingLeft: 2, TabWidth: 4, ScrollX: 1, ScrollY: 1},
		Caret:   Caret{Row: 2, Before: "\tab"},
	}
	x, y := f.CaretCell()
	if x != 3+2+6-1 || y != 2+2-1 {
		t.Fatalf("CaretCell: got (%d, %d), want (%d, %d)", x, y, 10, 3)
	}
}
