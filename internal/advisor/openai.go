package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"

	"finpro/internal/core"
)

const requestTimeout = 60 * time.Second

// OpenAIAdvisor calls an OpenAI-compatible chat-completion endpoint.
type OpenAIAdvisor struct {
	client *openai.Client
	model  string
}

// NewOpenAIAdvisor builds an advisor against the given endpoint. baseURL may
// be empty for the default OpenAI API, or point at any compatible server.
func NewOpenAIAdvisor(apiKey, baseURL, model string) (*OpenAIAdvisor, error) {
	if apiKey == "" {
		return nil, errors.New("missing API key")
	}
	if model == "" {
		return nil, errors.New("missing model name")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIAdvisor{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Analyze sends the transaction slice to the model and returns its text.
func (a *OpenAIAdvisor) Analyze(ctx context.Context, txs []core.Transaction) (string, error) {
	prompt, err := BuildPrompt(txs)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "Advice request failed",
			"component", "advisor",
			"model", a.model,
			"transactions", len(txs),
			"error", err)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion")
	}

	slog.InfoContext(ctx, "Advice generated",
		"component", "advisor",
		"model", a.model,
		"transactions", len(txs))
	return resp.Choices[0].Message.Content, nil
}
