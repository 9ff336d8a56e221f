package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAITripExtractor talks to any OpenAI compatible chat completion endpoint.
type OpenAITripExtractor struct {
	client  chatCompleter
	model   string
	timeout time.Duration
}

func NewOpenAITripExtractor(apiKey, model, baseURL string, timeout time.Duration) (*OpenAITripExtractor, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required when using OpenAI provider")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAITripExtractor{
		client:  openai.NewClientWithConfig(config),
		model:   model,
		timeout: timeout,
	}, nil
}

func (o *OpenAITripExtractor) ExtractTrip(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: TripExtractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: tripUserMessage(message)},
		},
		Temperature: 0.1,
		MaxTokens:   512,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", ErrTripExtractionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrTripExtractionFailed)
	}
	return resp.Choices[0].Message.Content, nil
}
