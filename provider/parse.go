package provider

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Parse extracts a Result from a model reply. Code fences and text around
// the JSON object are ignored. A reply that is not a JSON object becomes a
// bare completion with confidence 1.
func Parse(raw string) Result {
	body := stripFences(strings.TrimSpace(raw))
	if i, j := strings.IndexByte(body, '{'), strings.LastIndexByte(body, '}'); i >= 0 && j > i {
		body = body[i : j+1]
	}
	if !gjson.Valid(body) || !gjson.Parse(body).IsObject() {
		return Result{Completion: strings.TrimSpace(raw), Alternatives: []string{}, Confidence: 1}
	}

	doc := gjson.Parse(body)
	res := Result{
		Completion:   doc.Get("completion").String(),
		LastWord:     doc.Get("lastWord").String(),
		Alternatives: []string{},
		Confidence:   1,
	}
	if c := doc.Get("confidence"); c.Exists() && c.Type == gjson.Number {
		res.Confidence = min(max(c.Float(), 0), 1)
	}
	doc.Get("alternatives").ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			res.Alternatives = append(res.Alternatives, v.String())
		}
		return true
	})
	return res
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
