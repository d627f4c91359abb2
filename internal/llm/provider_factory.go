package llm

import (
	"context"
	"fmt"
)

// NewConfiguredProvider picks a Provider from whichever API key is
// configured, preferring OpenAI and falling back to Gemini. It returns
// nil, nil when neither is configured, so callers can treat
// description as an optional feature.
func NewConfiguredProvider(ctx context.Context, openaiAPIKey, geminiAPIKey string) (Provider, error) {
	if openaiAPIKey != "" {
		return NewOpenAIProvider(openaiAPIKey), nil
	}

	if geminiAPIKey != "" {
		provider, err := NewGeminiProvider(ctx, geminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("configuring gemini provider: %w", err)
		}
		return provider, nil
	}

	return nil, nil
}
