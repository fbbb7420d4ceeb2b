package suggest

import (
	"testing"

	"github.com/iw2rmb/autotab/settings"
	"github.com/iw2rmb/autotab/surface"
)

func TestAccept_PartialWordIsNotDuplicated(t *testing.T) {
	s := &Suggestion{Text: "ck brown fox", LastWord: "", Origin: at("The qui")}
	ed := s.Accept(at("The qui"), settings.MatchFirst)
	if ed.Text != "The quick brown fox" || ed.Cursor != 19 {
		t.Fatalf("Accept: got (%q, %d), want (%q, %d)", ed.Text, ed.Cursor, "The quick brown fox", 19)
	}
	if ed.Inserted != "ck brown fox" {
		t.Fatalf("Inserted: got %q", ed.Inserted)
	}
}

func TestAccept_AfterTypingPartOfSuggestion(t *testing.T) {
	s := &Suggestion{Text: "quick brown fox", LastWord: "The", Origin: at("The ")}
	ed := s.Accept(at("The quick br"), settings.MatchFirst)
	if ed.Text != "The quick brown fox" || ed.Cursor != 19 {
		t.Fatalf("Accept: got (%q, %d)", ed.Text, ed.Cursor)
	}
}

func TestAccept_TrailingSpaceBeforeExistingText(t *testing.T) {
	origin := surface.Snapshot{Text: "I like tea", Cursor: 7}
	s := &Suggestion{Text: "green", LastWord: "like", Origin: origin}
	ed := s.Accept(origin, settings.MatchFirst)
	if ed.Text != "I like green tea" || ed.Cursor != 13 {
		t.Fatalf("Accept: got (%q, %d), want (%q, %d)", ed.Text, ed.Cursor, "I like green tea", 13)
	}
}

func TestInsertion(t *testing.T) {
	tests := []struct {
		name       string
		snap       surface.Snapshot
		candidate  string
		glue       bool
		wantText   string
		wantCursor int
	}{
		{name: "leading space after word", snap: at("I like"), candidate: "green tea", wantText: "I like green tea", wantCursor: 16},
		{name: "no space after space", snap: at("I like "), candidate: " green", wantText: "I like green", wantCursor: 12},
		{name: "glue partial word", snap: at("The qui"), candidate: "ck", glue: true, wantText: "The quick", wantCursor: 9},
		{name: "skip typed prefix", snap: at("The Qui"), candidate: "quick fox", wantText: "The Quick fox", wantCursor: 13},
		{name: "trailing space", snap: surface.Snapshot{Text: "a c", Cursor: 2}, candidate: "b", wantText: "a b c", wantCursor: 4},
		{name: "existing space after cursor", snap: surface.Snapshot{Text: "a  c", Cursor: 2}, candidate: "b", wantText: "a b c", wantCursor: 3},
		{name: "empty field", snap: at(""), candidate: "Hello", wantText: "Hello", wantCursor: 5},
		{name: "blank candidate", snap: at("abc"), candidate: "  ", wantText: "abc", wantCursor: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := Insertion(tt.snap, tt.candidate, tt.glue)
			if ed.Text != tt.wantText || ed.Cursor != tt.wantCursor {
				t.Fatalf("Insertion: got (%q, %d), want (%q, %d)", ed.Text, ed.Cursor, tt.wantText, tt.wantCursor)
			}
		})
	}
}

func TestAcceptWord_KeepsContinuation(t *testing.T) {
	s := &Suggestion{ID: "s1", Text: "quick brown fox", LastWord: "The", Origin: at("The ")}

	ed, next := s.AcceptWord(at("The "), settings.MatchFirst)
	if ed.Text != "The quick" || ed.Cursor != 9 {
		t.Fatalf("first word: got (%q, %d)", ed.Text, ed.Cursor)
	}
	if next == nil {
		t.Fatalf("expected a continuation")
	}
	if m := next.Match(ed.Snapshot(), settings.MatchFirst); m.Remaining != " brown fox" {
		t.Fatalf("continuation remaining: got %q", m.Remaining)
	}

	ed, next = next.AcceptWord(ed.Snapshot(), settings.MatchFirst)
	if ed.Text != "The quick brown" || next == nil {
		t.Fatalf("second word: got %q, continuation %v", ed.Text, next != nil)
	}

	ed, next = next.AcceptWord(ed.Snapshot(), settings.MatchFirst)
	if ed.Text != "The quick brown fox" || ed.Cursor != 19 || next != nil {
		t.Fatalf("last word: got (%q, %d), continuation %v", ed.Text, ed.Cursor, next != nil)
	}
}

func TestAcceptAlternative(t *testing.T) {
	s := &Suggestion{Text: "go home", LastWord: "to", Alternatives: []string{"stay here", "leave now"}, Origin: at("I want to ")}

	ed, ok := s.AcceptAlternative(at("I want to "), 1, settings.MatchFirst)
	if !ok || ed.Text != "I want to leave now" {
		t.Fatalf("AcceptAlternative(1): got (%q, %v)", ed.Text, ok)
	}
	if _, ok := s.AcceptAlternative(at("I want to "), 2, settings.MatchFirst); ok {
		t.Fatalf("AcceptAlternative(2): want false for missing alternative")
	}
	if got := s.AlternativeRemaining(at("I want to st"), 0, settings.MatchFirst); got != "ay here" {
		t.Fatalf("AlternativeRemaining: got %q", got)
	}
	if got := s.AlternativeRemaining(at("I want to st"), 1, settings.MatchFirst); got != "" {
		t.Fatalf("AlternativeRemaining off-script: got %q", got)
	}
}

func TestAccept_DoesNotRepeatOriginWords(t *testing.T) {
	tests := []struct {
		origin, text, last, typed string
		want                      string
	}{
		{origin: "The ", text: "then they left", last: "The", typed: "The th", want: "The then they left"},
		{origin: "The ", text: "cat ate the fish", last: "The", typed: "The cat ate the ", want: "The cat ate the fish"},
		{origin: "I ", text: "initially thought so", last: "I", typed: "I i", want: "I initially thought so"},
	}
	for _, tt := range tests {
		s := &Suggestion{Text: tt.text, LastWord: tt.last, Origin: at(tt.origin)}
		ed := s.Accept(at(tt.typed), settings.MatchFirst)
		if ed.Text != tt.want || ed.Cursor != len([]rune(tt.want)) {
			t.Fatalf("Accept after %q: got (%q, %d), want (%q, %d)", tt.typed, ed.Text, ed.Cursor, tt.want, len([]rune(tt.want)))
		}
	}
}
