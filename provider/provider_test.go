package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/iw2rmb/autotab/pagectx"
)

func TestRequest_Words(t *testing.T) {
	r := Request{Text: "The qu brown", Cursor: 6}
	if r.Before() != "The qu" || r.After() != " brown" {
		t.Fatalf("split: %q | %q", r.Before(), r.After())
	}
	if r.LastWord() != "qu" || !r.IsPartialWord() {
		t.Fatalf("last word: %q partial=%v", r.LastWord(), r.IsPartialWord())
	}

	r = Request{Text: "The quick ", Cursor: 99}
	if r.LastWord() != "" || r.IsPartialWord() {
		t.Fatalf("after space: %q partial=%v", r.LastWord(), r.IsPartialWord())
	}
}

func TestSchema_IsValidJSON(t *testing.T) {
	s := Schema()
	if !gjson.Valid(s) {
		t.Fatalf("schema is not valid JSON: %s", s)
	}
	if got := gjson.Get(s, "required.#").Int(); got != 4 {
		t.Fatalf("required: got %d, want 4", got)
	}
	if got := gjson.Get(s, "properties.alternatives.items.type").String(); got != "string" {
		t.Fatalf("alternatives items: got %q", got)
	}
}

func TestPrompts(t *testing.T) {
	if !strings.Contains(SystemPrompt(), `"lastWord"`) {
		t.Fatalf("system prompt must embed the schema")
	}
	u := UserPrompt(Request{
		Text:    "Dear Sam, thank",
		Cursor:  15,
		Context: pagectx.Snapshot{Title: "Compose", InputLabel: "Body"},
	})
	for _, want := range []string{`"Dear Sam, thank|"`, `"title":"Compose"`, `"label":"Body"`, `Last word being typed: "thank"`, "Is partial word: true"} {
		if !strings.Contains(u, want) {
			t.Fatalf("user prompt missing %q:\n%s", want, u)
		}
	}
}

func TestErrorClassification(t *testing.T) {
	ce := &ConfigError{Backend: BackendOpenAI, Err: ErrMissingAPIKey}
	wrapped := errors.Join(errors.New("ctx"), ce)
	if !IsConfigError(wrapped) || IsRequestError(wrapped) {
		t.Fatalf("config error misclassified")
	}
	if !errors.Is(wrapped, ErrMissingAPIKey) {
		t.Fatalf("missing key not reachable through Unwrap")
	}

	re := &RequestError{Backend: BackendGemini, StatusCode: 500, Err: errors.New("boom")}
	if !IsRequestError(re) || IsConfigError(re) {
		t.Fatalf("request error misclassified")
	}
	if !strings.Contains(re.Error(), "status 500") {
		t.Fatalf("status missing: %q", re.Error())
	}
}

func TestNew_SelectsBackend(t *testing.T) {
	cases := map[string]any{
		"":               &OpenAI{},
		BackendOpenAI:    &OpenAI{},
		BackendAnthropic: &Anthropic{},
		BackendGemini:    &Gemini{},
	}
	for name, want := range cases {
		p, err := New(Config{Backend: name})
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if gotT, wantT := typeName(p), typeName(want); gotT != wantT {
			t.Fatalf("New(%q): got %s, want %s", name, gotT, wantT)
		}
	}
	if _, err := New(Config{Backend: "ollama"}); !IsConfigError(err) {
		t.Fatalf("unknown backend: got %v", err)
	}
}

func TestBackends_MissingKey(t *testing.T) {
	for _, name := range []string{BackendOpenAI, BackendAnthropic, BackendGemini} {
		p, _ := New(Config{Backend: name})
		_, err := p.Complete(context.Background(), Request{Text: "x", Cursor: 1})
		if !errors.Is(err, ErrMissingAPIKey) || !IsConfigError(err) {
			t.Fatalf("%s: got %v, want missing key config error", name, err)
		}
	}
}

func TestDynamic_RebuildsOnChange(t *testing.T) {
	cfg := Config{Backend: BackendOpenAI}
	d := NewDynamic(func() Config { return cfg })

	p1, _ := d.backend()
	p2, _ := d.backend()
	if p1 != p2 {
		t.Fatalf("unchanged config should reuse the backend")
	}
	cfg.Backend = BackendAnthropic
	p3, _ := d.backend()
	if _, ok := p3.(*Anthropic); !ok {
		t.Fatalf("backend not rebuilt: %T", p3)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *OpenAI:
		return "openai"
	case *Anthropic:
		return "anthropic"
	case *Gemini:
		return "gemini"
	}
	return "other"
}
