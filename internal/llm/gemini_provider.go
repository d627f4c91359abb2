package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const providerNameGemini = "gemini"

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider describes tunes using Google's Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: defaultGeminiModel}, nil
}

func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Describe asks the model for a short description of a tune given its
// raw ABC text.
func (p *GeminiProvider) Describe(ctx context.Context, abcText string) (string, error) {
	transaction := sentry.StartTransaction(ctx, "gemini.describe")
	defer transaction.Finish()
	transaction.SetTag("provider", "gemini")

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: descriptionSystemPrompt}},
		},
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: abcText}}},
	}

	apiStart := time.Now()
	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	duration := time.Since(apiStart)

	if err != nil {
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return "", fmt.Errorf("gemini request failed after %v: %w", duration, err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		transaction.SetTag("success", "false")
		return "", fmt.Errorf("gemini response contained no text")
	}

	transaction.SetTag("success", "true")
	return result.Candidates[0].Content.Parts[0].Text, nil
}
