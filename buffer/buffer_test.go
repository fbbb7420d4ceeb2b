package buffer

import (
	"reflect"
	"testing"
)

func TestBuffer_SetCursor_ClampsAndVersions(t *testing.T) {
	b := New("a\nbc", Options{})
	if b.Version() != 0 {
		t.Fatalf("expected version 0, got %d", b.Version())
	}

	b.SetCursor(Pos{Row: 999, Col: 999})
	if got := b.Cursor(); got != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("cursor=%v, want (1,2)", got)
	}
	if b.Version() != 1 {
		t.Fatalf("expected version 1, got %d", b.Version())
	}

	b.SetCursor(Pos{Row: 1, Col: 2})
	if b.Version() != 1 {
		t.Fatalf("expected version unchanged, got %d", b.Version())
	}
}

func TestBuffer_SetSelection_NormalizesAndClamps(t *testing.T) {
	b := New("a\nbc", Options{})
	b.SetSelection(Range{Start: Pos{Row: 1, Col: 99}, End: Pos{Row: 0, Col: -1}})

	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected selection active")
	}
	want := Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 1, Col: 2}}
	if r != want {
		t.Fatalf("selection=%v, want %v", r, want)
	}

	b.ClearSelection()
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
}

func TestBuffer_Offsets(t *testing.T) {
	b := New("héllo\nwörld", Options{})

	cases := []struct {
		off  int
		want Pos
	}{
		{-3, Pos{}},
		{0, Pos{}},
		{5, Pos{Row: 0, Col: 5}},
		{6, Pos{Row: 1, Col: 0}},
		{8, Pos{Row: 1, Col: 2}},
		{99, Pos{Row: 1, Col: 5}},
	}
	for _, tc := range cases {
		if got := b.PosFromOffset(tc.off); got != tc.want {
			t.Fatalf("PosFromOffset(%d): got %v, want %v", tc.off, got, tc.want)
		}
	}
	if got := b.OffsetFromPos(Pos{Row: 1, Col: 2}); got != 8 {
		t.Fatalf("OffsetFromPos: got %d, want 8", got)
	}
	if got := b.Len(); got != 11 {
		t.Fatalf("Len: got %d, want 11", got)
	}
}

func TestBuffer_SetText_AtomicWithCursor(t *testing.T) {
	b := New("The quick", Options{})
	var got []Change
	cancel := b.OnChange(func(c Change) { got = append(got, c) })
	defer cancel()

	b.SetText("The quick brown fox", 19, ChangeSourceProgrammatic)

	if b.Text() != "The quick brown fox" {
		t.Fatalf("text=%q", b.Text())
	}
	if b.Offset() != 19 {
		t.Fatalf("offset=%d, want 19", b.Offset())
	}
	if len(got) != 1 {
		t.Fatalf("changes=%d, want 1", len(got))
	}
	if got[0].Source != ChangeSourceProgrammatic || !got[0].TextChanged() {
		t.Fatalf("unexpected change: %+v", got[0])
	}

	// No-op write does not notify.
	b.SetText("The quick brown fox", 19, ChangeSourceProgrammatic)
	if len(got) != 1 {
		t.Fatalf("no-op write notified listeners")
	}
}

func TestBuffer_OnChange_Cancel(t *testing.T) {
	b := New("", Options{})
	n := 0
	cancel := b.OnChange(func(Change) { n++ })
	b.InsertText("a")
	cancel()
	cancel()
	b.InsertText("b")
	if n != 1 {
		t.Fatalf("calls=%d, want 1", n)
	}
}

func TestBuffer_LastChange(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(Pos{Col: 2})
	b.InsertText("c")

	c, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected a change")
	}
	want := []AppliedEdit{{
		RangeBefore: Range{Start: Pos{Col: 2}, End: Pos{Col: 2}},
		RangeAfter:  Range{Start: Pos{Col: 2}, End: Pos{Col: 3}},
		InsertText:  "c",
	}}
	if !reflect.DeepEqual(c.AppliedEdits, want) {
		t.Fatalf("edits: got %+v, want %+v", c.AppliedEdits, want)
	}
	if c.Source != ChangeSourceLocal {
		t.Fatalf("source: got %v", c.Source)
	}
}
