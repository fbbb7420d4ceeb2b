package provider

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/iw2rmb/autotab/internal/logx"
)

// Gemini calls the Google Gemini API. The client is created on first use.
type Gemini struct {
	cfg Config
	log *log.Logger

	mu     sync.Mutex
	client *genai.Client
}

func NewGemini(cfg Config) *Gemini {
	return &Gemini{cfg: cfg, log: logx.OrDiscard(cfg.Logger).WithPrefix("gemini")}
}

func (p *Gemini) conn(ctx context.Context) (*genai.Client, error) {
	if p.cfg.APIKey == "" {
		return nil, &ConfigError{Backend: BackendGemini, Err: ErrMissingAPIKey}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	opts := []option.ClientOption{option.WithAPIKey(p.cfg.APIKey)}
	if p.cfg.UserAgent != "" {
		opts = append(opts, option.WithUserAgent(p.cfg.UserAgent))
	}
	c, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, &ConfigError{Backend: BackendGemini, Err: err}
	}
	p.client = c
	return c, nil
}

func (p *Gemini) Complete(ctx context.Context, req Request) (Result, error) {
	c, err := p.conn(ctx)
	if err != nil {
		return Result{}, err
	}
	m := c.GenerativeModel(p.cfg.model())
	m.SetTemperature(float32(req.Temperature))
	m.SetMaxOutputTokens(int32(p.cfg.maxTokens()))
	m.ResponseMIMEType = "application/json"
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(SystemPrompt())}}

	resp, err := m.GenerateContent(ctx, genai.Text(UserPrompt(req)))
	if err != nil {
		return Result{}, &RequestError{Backend: BackendGemini, Err: err}
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		break
	}
	if sb.Len() == 0 {
		return Result{}, &RequestError{Backend: BackendGemini, Err: errors.New("no text in response")}
	}
	p.log.Debug("raw response", "backend", BackendGemini, "body", sb.String())
	return Parse(sb.String()), nil
}

func (p *Gemini) Check(ctx context.Context) error {
	c, err := p.conn(ctx)
	if err != nil {
		return err
	}
	if _, err := c.ListModels(ctx).Next(); err != nil && !errors.Is(err, iterator.Done) {
		return &RequestError{Backend: BackendGemini, Err: err}
	}
	return nil
}

// Close releases the underlying client.
func (p *Gemini) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}
