package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// AnthropicProvider implements Provider using the Anthropic SDK.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewAnthropicProvider(cfg AnthropicConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ErrConfig{Provider: "anthropic", Reason: "API key is required"}
	}

	client := anthropic.NewClient(anthropicOptions(cfg)...)
	return &AnthropicProvider{
		client: &client,
		model:  resolveModel(cfg.Model, anthropicModels),
	}, nil
}

// anthropicOptions disables the SDK's built-in retries: a failed generation
// is reported to the caller, who decides whether to try again.
func anthropicOptions(cfg AnthropicConfig) []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return opts
}

// maxAnthropicTemperature is the upper bound the Messages API accepts;
// ai.temperature allows up to 2 for the other providers.
const maxAnthropicTemperature = 1.0

func anthropicTemperature(t float64) float64 {
	return min(max(t, 0), maxAnthropicTemperature)
}

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Temperature: anthropic.Float(anthropicTemperature(req.Temperature)),
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, mapAnthropicError(ctx, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return nil, &ErrInvalidResponse{Err: errors.New("no text content in Anthropic response")}
	}

	return &Response{Text: text, Model: string(msg.Model)}, nil
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) ModelID() string { return p.model }

func mapAnthropicError(ctx context.Context, err error) error {
	if ctxErr := contextError(ctx, err); ctxErr != nil {
		return ctxErr
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &ErrServiceResponse{
			Status:  apiErr.StatusCode,
			Message: anthropicErrorMessage(apiErr.RawJSON(), apiErr.StatusCode),
			Err:     err,
		}
	}
	return &ErrProviderUnavailable{Err: err}
}

// anthropicErrorMessage reads error.message from an error body.
func anthropicErrorMessage(raw string, status int) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return http.StatusText(status)
}
