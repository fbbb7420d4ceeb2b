// Package provider requests completions from a language model.
//
// A Provider turns the text around the cursor plus page context into a
// Result. Backends exist for OpenAI-compatible chat APIs, Anthropic and
// Gemini; tests and demos use Func.
package provider

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/iw2rmb/autotab/internal/words"
	"github.com/iw2rmb/autotab/pagectx"
)

// ErrMissingAPIKey is reported when a backend has no API key configured.
var ErrMissingAPIKey = errors.New("API key not configured")

// Request is one completion request.
type Request struct {
	Text        string
	Cursor      int
	Context     pagectx.Snapshot
	Temperature float64
}

// Before returns the text before the cursor.
func (r Request) Before() string {
	c := min(max(r.Cursor, 0), utf8.RuneCountInString(r.Text))
	return string([]rune(r.Text)[:c])
}

// After returns the text after the cursor.
func (r Request) After() string {
	c := min(max(r.Cursor, 0), utf8.RuneCountInString(r.Text))
	return string([]rune(r.Text)[c:])
}

// LastWord returns the run of non-space characters ending at the cursor.
func (r Request) LastWord() string {
	return words.Trailing(r.Before())
}

// IsPartialWord reports whether the cursor sits inside or right after a word.
func (r Request) IsPartialWord() bool { return r.LastWord() != "" }

// Result is a parsed completion.
type Result struct {
	Completion   string   `json:"completion"`
	LastWord     string   `json:"lastWord"`
	Alternatives []string `json:"alternatives"`
	Confidence   float64  `json:"confidence"`
}

// Provider produces completions. Implementations must honor ctx
// cancellation.
type Provider interface {
	Complete(ctx context.Context, req Request) (Result, error)
}

// Func adapts a function to Provider.
type Func func(ctx context.Context, req Request) (Result, error)

func (f Func) Complete(ctx context.Context, req Request) (Result, error) { return f(ctx, req) }

// Checker is implemented by providers that can verify their credentials.
type Checker interface {
	Check(ctx context.Context) error
}

// ConfigError reports a provider that cannot run with the current settings.
// It persists until the settings change.
type ConfigError struct {
	Backend string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: configuration: %v", e.Backend, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RequestError reports a failed call: transport errors and non-success
// responses.
type RequestError struct {
	Backend    string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: request failed (status %d): %v", e.Backend, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: request failed: %v", e.Backend, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsRequestError reports whether err is or wraps a *RequestError.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
