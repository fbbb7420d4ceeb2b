package buffer

import "testing"

func TestBuffer_Move(t *testing.T) {
	b := New("one two\nthree", Options{})

	steps := []struct {
		m    Move
		want Pos
	}{
		{Move{Unit: MoveWord, Dir: DirRight}, Pos{Col: 3}},
		{Move{Unit: MoveWord, Dir: DirRight}, Pos{Col: 7}},
		{Move{Unit: MoveRune, Dir: DirRight}, Pos{Row: 1}},
		{Move{Unit: MoveLine, Dir: DirEnd}, Pos{Row: 1, Col: 5}},
		{Move{Unit: MoveLine, Dir: DirUp}, Pos{Col: 5}},
		{Move{Unit: MoveWord, Dir: DirLeft}, Pos{Col: 4}},
		{Move{Unit: MoveDoc, Dir: DirEnd}, Pos{Row: 1, Col: 5}},
		{Move{Unit: MoveDoc, Dir: DirHome}, Pos{}},
	}
	for i, s := range steps {
		b.Move(s.m)
		if got := b.Cursor(); got != s.want {
			t.Fatalf("step %d: got %v, want %v", i, got, s.want)
		}
	}
	if b.Move(Move{Unit: MoveRune, Dir: DirLeft}) {
		t.Fatalf("move past start should report no change")
	}
}

func TestBuffer_Move_ExtendSelection(t *testing.T) {
	b := New("hello", Options{})
	b.Move(Move{Unit: MoveRune, Dir: DirRight, Extend: true})
	b.Move(Move{Unit: MoveRune, Dir: DirRight, Extend: true})
	r, ok := b.Selection()
	if !ok || r != (Range{Start: Pos{}, End: Pos{Col: 2}}) {
		t.Fatalf("selection=%v ok=%v", r, ok)
	}
	b.Move(Move{Unit: MoveRune, Dir: DirRight})
	if _, ok := b.Selection(); ok {
		t.Fatalf("plain move should clear selection")
	}
}
