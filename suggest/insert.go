package suggest

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iw2rmb/autotab/internal/words"
	"github.com/iw2rmb/autotab/surface"
)

// Edit is the result of accepting text into a surface.
type Edit struct {
	Text   string
	Cursor int
	// Inserted is what was added at the cursor, spaces included.
	Inserted string
}

// Snapshot returns the surface after the edit.
func (e Edit) Snapshot() surface.Snapshot {
	return surface.Snapshot{Text: e.Text, Cursor: e.Cursor}
}

// Accept inserts what is left of the suggestion at the cursor of snap. While
// the user is on-script that is exactly the remaining text; otherwise the
// whole suggestion is inserted with word-boundary spacing.
func (s *Suggestion) Accept(snap surface.Snapshot, policy string) Edit {
	return acceptText(snap, s.Origin, s.Text, s.LastWord, policy)
}

// AcceptAlternative inserts the alternative at index i. ok is false when there
// is no such alternative.
func (s *Suggestion) AcceptAlternative(snap surface.Snapshot, i int, policy string) (Edit, bool) {
	if i < 0 || i >= len(s.Alternatives) || strings.TrimSpace(s.Alternatives[i]) == "" {
		return Edit{}, false
	}
	return acceptText(snap, s.Origin, s.Alternatives[i], s.LastWord, policy), true
}

// AlternativeRemaining returns what is left to type of alternative i, or ""
// when the typed text does not follow it.
func (s *Suggestion) AlternativeRemaining(snap surface.Snapshot, i int, policy string) string {
	if i < 0 || i >= len(s.Alternatives) {
		return ""
	}
	m := newScript(s.Origin, s.Alternatives[i], s.LastWord).match(ProgressOf(snap), policy)
	if !m.Live() {
		return ""
	}
	return strings.TrimSpace(m.Remaining)
}

// AcceptWord inserts the next word of the remaining text. When more words
// follow, it returns the suggestion that continues from the new cursor;
// otherwise next is nil and the edit equals Accept.
func (s *Suggestion) AcceptWord(snap surface.Snapshot, policy string) (ed Edit, next *Suggestion) {
	m := s.Match(snap, policy)
	if !m.Live() {
		return s.Accept(snap, policy), nil
	}
	seg, rest := nextWord(m.Remaining)
	if strings.TrimSpace(rest) == "" {
		return s.Accept(snap, policy), nil
	}

	p := ProgressOf(snap)
	if words.EndsWithSpace(p.Before) {
		seg = strings.TrimLeftFunc(seg, unicode.IsSpace)
	}
	ed = edit(p, seg)
	next = &Suggestion{
		ID:       s.ID,
		Text:     strings.TrimSpace(rest),
		LastWord: words.Trailing(ed.Snapshot().Before()),
		Origin:   ed.Snapshot(),
	}
	return ed, next
}

// nextWord splits text after its first word, keeping leading space on seg.
func nextWord(text string) (seg, rest string) {
	i := 0
	for i < len(text) {
		r, n := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += n
	}
	for i < len(text) {
		r, n := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += n
	}
	return text[:i], text[i:]
}

func acceptText(snap, origin surface.Snapshot, text, lastWord, policy string) Edit {
	p := ProgressOf(snap)
	if m := newScript(origin, text, lastWord).match(p, policy); m.Live() {
		return edit(p, spaced(p, m.Remaining))
	}
	return Insertion(snap, text, lastWord == "")
}

// Insertion inserts candidate at the cursor of snap. A partial word that the
// candidate's first word starts with is not typed twice. Otherwise a single
// space separates the candidate from the word before, unless glue is set and
// the cursor is mid-word.
func Insertion(snap surface.Snapshot, candidate string, glue bool) Edit {
	p := ProgressOf(snap)
	text := strings.TrimSpace(candidate)
	if text == "" {
		return Edit{Text: snap.Text, Cursor: utf8.RuneCountInString(p.Before)}
	}

	var ins string
	switch {
	case p.IsPartialWord:
		if suffix, ok := words.TrimPrefixFold(text, p.CurrentWord); ok {
			ins = suffix
		} else if glue {
			ins = text
		} else {
			ins = " " + text
		}
	default:
		ins = text
	}
	return edit(p, spaced(p, ins))
}

// spaced drops a leading space when one is already at the cursor and adds a
// trailing space when ins would run into text after the cursor.
func spaced(p Progress, ins string) string {
	if words.EndsWithSpace(p.Before) || p.Before == "" {
		ins = strings.TrimLeftFunc(ins, unicode.IsSpace)
	}
	if p.After != "" && !words.StartsWithSpace(p.After) && ins != "" && !words.EndsWithSpace(ins) {
		ins += " "
	}
	return ins
}

func edit(p Progress, ins string) Edit {
	return Edit{
		Text:     p.Before + ins + p.After,
		Cursor:   utf8.RuneCountInString(p.Before) + utf8.RuneCountInString(ins),
		Inserted: ins,
	}
}
