package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/log"

	"github.com/iw2rmb/autotab/internal/logx"
)

// Anthropic calls the Anthropic messages API.
type Anthropic struct {
	client anthropic.Client
	cfg    Config
	log    *log.Logger
}

func NewAnthropic(cfg Config) *Anthropic {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(cfg.httpClient()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, option.WithHeader("User-Agent", cfg.UserAgent))
	}
	return &Anthropic{client: anthropic.NewClient(opts...), cfg: cfg, log: logx.OrDiscard(cfg.Logger).WithPrefix("anthropic")}
}

func (p *Anthropic) Complete(ctx context.Context, req Request) (Result, error) {
	if p.cfg.APIKey == "" {
		return Result{}, &ConfigError{Backend: BackendAnthropic, Err: ErrMissingAPIKey}
	}
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.cfg.model()),
		MaxTokens:   p.cfg.maxTokens(),
		System:      []anthropic.TextBlockParam{{Text: SystemPrompt()}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(UserPrompt(req)))},
		Temperature: anthropic.Float(min(req.Temperature, 1)),
	})
	if err != nil {
		return Result{}, anthropicError(err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return Result{}, &RequestError{Backend: BackendAnthropic, Err: errors.New("no text in response")}
	}
	p.log.Debug("raw response", "backend", BackendAnthropic, "body", sb.String())
	return Parse(sb.String()), nil
}

func (p *Anthropic) Check(ctx context.Context) error {
	if p.cfg.APIKey == "" {
		return &ConfigError{Backend: BackendAnthropic, Err: ErrMissingAPIKey}
	}
	if _, err := p.client.Models.List(ctx, anthropic.ModelListParams{}); err != nil {
		return anthropicError(err)
	}
	return nil
}

func anthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		re := &RequestError{Backend: BackendAnthropic, StatusCode: apiErr.StatusCode, Err: err}
		if isAuthStatus(apiErr.StatusCode) {
			return &ConfigError{Backend: BackendAnthropic, Err: re}
		}
		return re
	}
	return &RequestError{Backend: BackendAnthropic, Err: err}
}
