package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiTripExtractor uses the Gemini free tier with JSON-only output.
type GeminiTripExtractor struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiTripExtractor(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiTripExtractor, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required when using Gemini provider")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTripExtractor{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

func (g *GeminiTripExtractor) ExtractTrip(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	m := g.client.GenerativeModel(g.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetMaxOutputTokens(512)
	m.SystemInstruction = genai.NewUserContent(genai.Text(TripExtractionSystemPrompt))

	resp, err := m.GenerateContent(ctx, genai.Text(tripUserMessage(message)))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrTripExtractionFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: gemini returned no content", ErrTripExtractionFailed)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (g *GeminiTripExtractor) Close() error {
	return g.client.Close()
}
