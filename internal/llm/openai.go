package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/heartmarshall/engage-agent/internal/config"
)

// openAIProvider talks to any OpenAI-compatible chat-completions endpoint.
type openAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
}

func newOpenAIProvider(cfg config.LLMConfig) *openAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.APIBase != "" {
		opts = append(opts, option.WithBaseURL(cfg.APIBase))
	}

	return &openAIProvider{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

func (p *openAIProvider) complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(p.temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) || ctx.Err() != nil {
			return "", fmt.Errorf("chat completions: %w", err)
		}
		// The request went through but the envelope did not decode.
		return "", fmt.Errorf("%w: %v", errBadResponse, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", errBadResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
