package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// openaiBackend talks to any OpenAI-compatible chat completions API.
type openaiBackend struct {
	client *openai.Client
}

// NewOpenAIClient creates an LLMClient for an OpenAI-compatible endpoint.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	clientConfig.HTTPClient = newHTTPClient()
	return newClient(cfg, &openaiBackend{client: openai.NewClientWithConfig(clientConfig)}, observer)
}

func (b *openaiBackend) complete(ctx context.Context, c completion) (string, string, error) {
	var messages []openai.ChatCompletionMessage
	if c.system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: c.system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: c.user,
	})

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: float32(c.temperature),
	})
	if err != nil {
		return "", "", err
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("%w: no choices in response", ErrInvalidOutput)
	}
	return resp.Choices[0].Message.Content, resp.Model, nil
}

func (b *openaiBackend) available(ctx context.Context) bool {
	_, err := b.client.ListModels(ctx)
	return err == nil
}
