package chat

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"pdfviewer/internal/config"
	"pdfviewer/internal/model"
)

// Completer abstracts the chat completion backend so the proxy can be tested
// against a fake.
type Completer interface {
	// Complete sends the assembled message list and returns the text of the
	// top completion.
	Complete(ctx context.Context, messages []model.ChatMessage) (string, error)
}

// openAICompleter implements Completer with the OpenAI chat completion API.
type openAICompleter struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewOpenAICompleter builds a Completer from config. The caller is expected
// to have checked that an API key is present.
func NewOpenAICompleter(cfg config.OpenAIConfig) Completer {
	return &openAICompleter{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

func (c *openAICompleter) Complete(ctx context.Context, messages []model.ChatMessage) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		msgs[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: msgs,
	}
	if c.maxTokens > 0 {
		req.MaxTokens = c.maxTokens
	}
	if c.temperature > 0 {
		req.Temperature = float32(c.temperature)
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
