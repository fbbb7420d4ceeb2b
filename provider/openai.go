package provider

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/iw2rmb/autotab/internal/logx"
)

// OpenAI calls the chat completions API of OpenAI or a compatible server.
type OpenAI struct {
	client openai.Client
	cfg    Config
	log    *log.Logger
}

func NewOpenAI(cfg Config) *OpenAI {
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
	return &OpenAI{client: openai.NewClient(opts...), cfg: cfg, log: logx.OrDiscard(cfg.Logger).WithPrefix("openai")}
}

func (p *OpenAI) Complete(ctx context.Context, req Request) (Result, error) {
	if p.cfg.APIKey == "" && p.cfg.BaseURL == "" {
		return Result{}, &ConfigError{Backend: BackendOpenAI, Err: ErrMissingAPIKey}
	}
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.cfg.model()),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt()),
			openai.UserMessage(UserPrompt(req)),
		},
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		return Result{}, openAIError(err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, &RequestError{Backend: BackendOpenAI, Err: errors.New("no choices in response")}
	}
	raw := resp.Choices[0].Message.Content
	p.log.Debug("raw response", "backend", BackendOpenAI, "body", raw)
	return Parse(raw), nil
}

// Check lists models, which fails fast on a bad key.
func (p *OpenAI) Check(ctx context.Context) error {
	if p.cfg.APIKey == "" && p.cfg.BaseURL == "" {
		return &ConfigError{Backend: BackendOpenAI, Err: ErrMissingAPIKey}
	}
	if _, err := p.client.Models.List(ctx); err != nil {
		return openAIError(err)
	}
	return nil
}

func openAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		re := &RequestError{Backend: BackendOpenAI, StatusCode: apiErr.StatusCode, Err: err}
		if isAuthStatus(apiErr.StatusCode) {
			return &ConfigError{Backend: BackendOpenAI, Err: re}
		}
		return re
	}
	return &RequestError{Backend: BackendOpenAI, Err: err}
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
