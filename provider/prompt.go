package provider

import (
	"fmt"
	"strings"

	"github.com/tidwall/sjson"
)

const systemPrompt = `You are an autocomplete assistant. Predict the next words that naturally continue the user's input.

Respond ONLY with a JSON object matching this schema:
%s

Rules:
1. The completion continues naturally from the user's last word.
2. Keep completions concise and natural (2-5 words).
3. Always provide exactly 3 alternatives.
4. Confidence is between 0 and 1.
5. Use the input field's label, placeholder and name to stay relevant.
6. Use nearby text and the page description to understand the expected input.
7. Return ONLY the JSON object, no other text.
8. lastWord: when the completion finishes a partially typed word ("giv" becoming "give"), return "" so no space is inserted before it.
9. lastWord: when the completion starts a new word after a complete word ("some" leading into "ideas"), return that complete word so a space is inserted.`

// Schema returns the JSON schema of the expected response.
func Schema() string {
	s := `{"type":"object"}`
	set := func(path string, v any) { s, _ = sjson.Set(s, path, v) }

	set("properties.completion.type", "string")
	set("properties.completion.description", "The primary completion that continues the user's input")
	set("properties.lastWord.type", "string")
	set("properties.lastWord.description", "The last complete word the completion continues from, or an empty string when it completes a partial word")
	set("properties.alternatives.type", "array")
	set("properties.alternatives.items.type", "string")
	set("properties.alternatives.description", "Alternative completions")
	set("properties.confidence.type", "number")
	set("properties.confidence.description", "Confidence between 0 and 1")
	set("required", []string{"completion", "lastWord", "alternatives", "confidence"})
	return s
}

// SystemPrompt returns the system instructions sent with every request.
func SystemPrompt() string {
	return fmt.Sprintf(systemPrompt, Schema())
}

// UserPrompt renders the request as the user message.
func UserPrompt(req Request) string {
	ctx := `{}`
	ctx, _ = sjson.Set(ctx, "page.title", req.Context.Title)
	ctx, _ = sjson.Set(ctx, "page.description", req.Context.Description)
	ctx, _ = sjson.Set(ctx, "page.nearby_text", req.Context.NearbyText)
	ctx, _ = sjson.Set(ctx, "input.label", req.Context.InputLabel)
	ctx, _ = sjson.Set(ctx, "input.placeholder", req.Context.InputPlaceholder)
	ctx, _ = sjson.Set(ctx, "input.name", req.Context.InputName)
	ctx, _ = sjson.Set(ctx, "input.type", req.Context.InputType)

	var b strings.Builder
	fmt.Fprintf(&b, "Page context:\n%s\n\n", ctx)
	fmt.Fprintf(&b, "The user is typing (| is the cursor): %q\n", req.Before()+"|"+req.After())
	fmt.Fprintf(&b, "Current text: %q\n", req.Text)
	fmt.Fprintf(&b, "Last word being typed: %q\n", req.LastWord())
	fmt.Fprintf(&b, "Is partial word: %t\n\n", req.IsPartialWord())
	b.WriteString("Provide completion suggestions that naturally continue from the current text.")
	return b.String()
}
