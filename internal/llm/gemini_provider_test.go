package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeminiProviderName(t *testing.T) {
	provider := &GeminiProvider{client: nil, model: defaultGeminiModel}
	assert.Equal(t, "gemini", provider.Name())
	assert.Equal(t, defaultGeminiModel, provider.model)
}
