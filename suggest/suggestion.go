package suggest

import (
	"strings"
	"unicode"

	"github.com/iw2rmb/autotab/internal/words"
	"github.com/iw2rmb/autotab/settings"
	"github.com/iw2rmb/autotab/surface"
)

// Suggestion is the completion currently offered for a surface.
type Suggestion struct {
	ID string
	// Text is the continuation as returned by the provider, not merged with
	// the partial word typed before it.
	Text string
	// LastWord is the complete word Text continues from. Empty means Text
	// finishes the partial word at the cursor.
	LastWord     string
	Alternatives []string
	Confidence   float64
	// Origin is the surface when the request was made.
	Origin surface.Snapshot
}

// Words returns the words the user is expected to type after the origin
// cursor. When the continuation finishes a partial word, the first word is
// the whole word.
func (s *Suggestion) Words() []string {
	return newScript(s.Origin, s.Text, s.LastWord).words
}

// script is a continuation split into words, anchored at the origin cursor.
type script struct {
	words []string
	// head is the partial word at the origin that words[0] completes.
	head string
	// origin is the text before the origin cursor.
	origin string
}

func newScript(origin surface.Snapshot, text, lastWord string) script {
	sc := script{words: words.Split(text), origin: origin.Before()}
	partial := words.Trailing(sc.origin)
	if partial == "" || lastWord != "" || words.StartsWithSpace(text) || len(sc.words) == 0 {
		return sc
	}
	sc.head = partial
	if !words.HasPrefixFold(sc.words[0], partial) {
		sc.words = append([]string{partial + sc.words[0]}, sc.words[1:]...)
	}
	return sc
}

// start is the remaining text while nothing has been typed since the origin.
func (sc script) start() string {
	if len(sc.words) == 0 {
		return ""
	}
	if sc.head != "" {
		suffix, _ := words.TrimPrefixFold(sc.words[0], sc.head)
		if len(sc.words) > 1 {
			suffix += " " + words.Join(sc.words[1:])
		}
		return suffix
	}
	if words.Trailing(sc.origin) != "" {
		return " " + words.Join(sc.words)
	}
	return words.Join(sc.words)
}

// Progress describes where the user is relative to the words before the
// cursor. It is derived from a snapshot and never stored.
type Progress struct {
	Before string
	After  string
	// CurrentWord is the partial word ending at the cursor, empty after
	// whitespace.
	CurrentWord            string
	IsPartialWord          bool
	CursorHasTrailingSpace bool
	// LastTypedWord is the last complete or partial word before the cursor.
	LastTypedWord string
}

// ProgressOf derives Progress from snap.
func ProgressOf(snap surface.Snapshot) Progress {
	before := snap.Before()
	cur := words.Trailing(before)
	return Progress{
		Before:                 before,
		After:                  snap.After(),
		CurrentWord:            cur,
		IsPartialWord:          cur != "",
		CursorHasTrailingSpace: words.EndsWithSpace(before),
		LastTypedWord:          words.Last(before),
	}
}

// Match is the result of comparing a snapshot with a suggestion's script.
type Match struct {
	// OnScript is true while the typed text still follows the script.
	OnScript bool
	// Index of the matched script word, -1 when nothing was typed yet.
	Index int
	// Remaining is the part of the script still to be typed.
	Remaining string
}

// Exhausted reports an on-script match with nothing left to type.
func (m Match) Exhausted() bool {
	return m.OnScript && strings.TrimSpace(m.Remaining) == ""
}

// Live reports an on-script match with text left to show.
func (m Match) Live() bool {
	return m.OnScript && !m.Exhausted()
}

// Match reports whether snap still follows the suggestion.
func (s *Suggestion) Match(snap surface.Snapshot, policy string) Match {
	return newScript(s.Origin, s.Text, s.LastWord).match(ProgressOf(snap), policy)
}

func (sc script) match(p Progress, policy string) Match {
	switch {
	case p.Before == sc.origin:
		return Match{OnScript: true, Index: -1, Remaining: sc.start()}
	case p.Before == "":
		return Match{OnScript: true, Index: -1, Remaining: words.Join(sc.words)}
	case sc.head == "" && p.CursorHasTrailingSpace &&
		strings.TrimRightFunc(p.Before, unicode.IsSpace) == strings.TrimRightFunc(sc.origin, unicode.IsSpace):
		// Only the separating space was typed.
		return Match{OnScript: true, Index: -1, Remaining: words.Join(sc.words)}
	}
	ws := sc.words
	switch {
	case p.IsPartialWord:
		i := pickPrefix(ws, p.CurrentWord, policy)
		if i < 0 {
			return Match{Index: -1}
		}
		suffix, _ := words.TrimPrefixFold(ws[i], p.CurrentWord)
		if rest := ws[i+1:]; len(rest) > 0 {
			suffix += " " + words.Join(rest)
		}
		return Match{OnScript: true, Index: i, Remaining: suffix}

	case p.CursorHasTrailingSpace:
		for i, w := range ws {
			if !words.EqualFold(w, p.LastTypedWord) {
				continue
			}
			if i == len(ws)-1 {
				return Match{Index: -1}
			}
			return Match{OnScript: true, Index: i, Remaining: words.Join(ws[i+1:])}
		}
	}
	return Match{Index: -1}
}

// pickPrefix returns the index of the script word starting with prefix. With
// MatchLongest the longest such word wins; ties go to the earliest.
func pickPrefix(ws []string, prefix, policy string) int {
	best := -1
	for i, w := range ws {
		if !words.HasPrefixFold(w, prefix) {
			continue
		}
		if policy != settings.MatchLongest {
			return i
		}
		if best < 0 || len([]rune(w)) > len([]rune(ws[best])) {
			best = i
		}
	}
	return best
}
