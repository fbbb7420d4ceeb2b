package provider

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestOpenAI_Complete(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant",
			"content":"{\"completion\":\"brown fox\",\"lastWord\":\"quick\",\"alternatives\":[\"red fox\"],\"confidence\":0.9}"}}]}`)
	}))
	defer srv.Close()

	p := NewOpenAI(Config{Backend: BackendOpenAI, APIKey: "k", BaseURL: srv.URL + "/v1/", Model: "test-model", HTTPClient: srv.Client()})
	res, err := p.Complete(context.Background(), Request{Text: "The quick", Cursor: 9, Temperature: 0.3})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Completion != "brown fox" || res.LastWord != "quick" || res.Confidence != 0.9 {
		t.Fatalf("result: %+v", res)
	}
	if got := gjson.Get(body, "model").String(); got != "test-model" {
		t.Fatalf("model: got %q", got)
	}
	if got := gjson.Get(body, "temperature").Float(); got != 0.3 {
		t.Fatalf("temperature: got %v", got)
	}
	if got := gjson.Get(body, "messages.#").Int(); got != 2 {
		t.Fatalf("messages: got %d", got)
	}
}

func TestOpenAI_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	p := NewOpenAI(Config{APIKey: "bad", BaseURL: srv.URL + "/v1/", HTTPClient: srv.Client()})
	_, err := p.Complete(context.Background(), Request{Text: "x", Cursor: 1})
	if !IsConfigError(err) || !IsRequestError(err) {
		t.Fatalf("401 should be a config error wrapping a request error: %v", err)
	}
}

func TestAnthropic_Complete(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			http.NotFound(w, r)
			return
		}
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"m1","type":"message","role":"assistant","model":"claude",
			"content":[{"type":"text","text":"{\"completion\":\"ideas\",\"lastWord\":\"some\",\"alternatives\":[],\"confidence\":0.5}"}],
			"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":1}}`)
	}))
	defer srv.Close()

	p := NewAnthropic(Config{Backend: BackendAnthropic, APIKey: "k", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	res, err := p.Complete(context.Background(), Request{Text: "some", Cursor: 4, Temperature: 1.5})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Completion != "ideas" || res.LastWord != "some" {
		t.Fatalf("result: %+v", res)
	}
	if got := gjson.Get(body, "temperature").Float(); got != 1 {
		t.Fatalf("temperature should be capped at 1: got %v", got)
	}
	if got := gjson.Get(body, "max_tokens").Int(); got != defaultMaxTokens {
		t.Fatalf("max_tokens: got %d", got)
	}
}

func TestBackends_WithoutLogger(t *testing.T) {
	cfg := Config{APIKey: "k"}
	if p := NewOpenAI(cfg); p.log == nil {
		t.Fatalf("NewOpenAI: nil logger")
	}
	if p := NewAnthropic(cfg); p.log == nil {
		t.Fatalf("NewAnthropic: nil logger")
	}
	if p := NewGemini(cfg); p.log == nil {
		t.Fatalf("NewGemini: nil logger")
	}
}
