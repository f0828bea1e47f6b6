package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// LLMInsightClient asks an OpenAI-compatible chat model for an insight.
type LLMInsightClient struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

// NewOpenAIInsightClient builds a client for apiKey. baseURL may be empty.
func NewOpenAIInsightClient(apiKey, model, baseURL string) (*LLMInsightClient, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return NewLLMInsightClient(llm), nil
}

// NewLLMInsightClient wraps any langchaingo model.
func NewLLMInsightClient(model llms.Model) *LLMInsightClient {
	return &LLMInsightClient{model: model, temperature: 0.7, maxTokens: 160}
}

func (c *LLMInsightClient) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userText),
	}

	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", fmt.Errorf("completion has no choices")
	}
	return resp.Choices[0].Content, nil
}
