package provider

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/iw2rmb/autotab/internal/logx"
)

// Backend names.
const (
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
	BackendGemini    = "gemini"
)

// DefaultModels maps each backend to the model used when none is configured.
var DefaultModels = map[string]string{
	BackendOpenAI:    "gpt-4o-mini",
	BackendAnthropic: "claude-3-5-haiku-latest",
	BackendGemini:    "gemini-1.5-flash",
}

const defaultMaxTokens = 256

// Config selects and configures a backend.
type Config struct {
	Backend   string
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	UserAgent string

	// HTTPClient defaults to a pooled go-cleanhttp client.
	HTTPClient *http.Client
	Logger     *log.Logger
}

func (c Config) model() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModels[c.Backend]
}

func (c Config) maxTokens() int64 {
	if c.MaxTokens > 0 {
		return int64(c.MaxTokens)
	}
	return defaultMaxTokens
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = 60 * time.Second
	return hc
}

// New builds the backend named by cfg.Backend. An empty name selects OpenAI.
// A missing API key is not an error here; the backend reports it as a
// *ConfigError on every call.
func New(cfg Config) (Provider, error) {
	cfg.Logger = logx.OrDiscard(cfg.Logger)
	switch cfg.Backend {
	case "", BackendOpenAI:
		cfg.Backend = BackendOpenAI
		return NewOpenAI(cfg), nil
	case BackendAnthropic:
		return NewAnthropic(cfg), nil
	case BackendGemini:
		return NewGemini(cfg), nil
	default:
		return nil, &ConfigError{Backend: cfg.Backend, Err: fmt.Errorf("unknown provider %q", cfg.Backend)}
	}
}

// Dynamic rebuilds its backend whenever the Config returned by load changes,
// so settings edits apply to the next request.
type Dynamic struct {
	load func() Config

	mu  sync.Mutex
	cur Config
	p   Provider
	err error
	set bool
}

func NewDynamic(load func() Config) *Dynamic {
	return &Dynamic{load: load}
}

func (d *Dynamic) backend() (Provider, error) {
	cfg := d.load()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.set && cfg == d.cur {
		return d.p, d.err
	}
	if c, ok := d.p.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	d.cur, d.set = cfg, true
	d.p, d.err = New(cfg)
	return d.p, d.err
}

func (d *Dynamic) Complete(ctx context.Context, req Request) (Result, error) {
	p, err := d.backend()
	if err != nil {
		return Result{}, err
	}
	return p.Complete(ctx, req)
}

// Check verifies the current backend's credentials when it supports that.
func (d *Dynamic) Check(ctx context.Context) error {
	p, err := d.backend()
	if err != nil {
		return err
	}
	if c, ok := p.(Checker); ok {
		return c.Check(ctx)
	}
	return nil
}
