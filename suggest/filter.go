package suggest

import (
	"strings"

	"github.com/iw2rmb/autotab/internal/words"
)

// MaxAlternatives is the number of alternatives kept per suggestion.
const MaxAlternatives = 3

// FilterAlternatives trims raw and drops empty entries, copies of primary in
// any case, entries equal to lastWord in any case and repeats. At most
// MaxAlternatives survive, in their original order.
func FilterAlternatives(primary, lastWord string, raw []string) []string {
	primary = strings.TrimSpace(primary)
	lastWord = strings.TrimSpace(lastWord)

	out := make([]string, 0, MaxAlternatives)
	for _, a := range raw {
		a = strings.TrimSpace(a)
		switch {
		case a == "":
			continue
		case words.EqualFold(a, primary):
			continue
		case lastWord != "" && words.EqualFold(a, lastWord):
			continue
		case containsFold(out, a):
			continue
		}
		out = append(out, a)
		if len(out) == MaxAlternatives {
			break
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if words.EqualFold(v, s) {
			return true
		}
	}
	return false
}
