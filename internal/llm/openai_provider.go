package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/afandian/folktunefinder-go/internal/observability"
	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

const providerNameOpenAI = "openai"

const defaultOpenAIModel = "gpt-5-mini"

// OpenAIProvider describes tunes using OpenAI's Responses API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: &client, model: defaultOpenAIModel}
}

func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Describe asks the model for a short description of a tune given its
// raw ABC text.
func (p *OpenAIProvider) Describe(ctx context.Context, abcText string) (string, error) {
	transaction := sentry.StartTransaction(ctx, "openai.describe")
	defer transaction.Finish()
	transaction.SetTag("provider", "openai")

	inputItems := responses.ResponseInputParam{
		responses.ResponseInputItemParamOfMessage(abcText, responses.EasyInputMessageRoleUser),
	}

	params := responses.ResponseNewParams{
		Model: p.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: inputItems,
		},
		Instructions: openai.String(descriptionSystemPrompt),
		Reasoning: shared.ReasoningParam{
			Effort: responses.ReasoningEffortLow,
		},
	}

	apiStart := time.Now()
	resp, err := p.client.Responses.New(ctx, params)
	duration := time.Since(apiStart)

	if err != nil {
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return "", fmt.Errorf("openai request failed after %v: %w", duration, err)
	}

	transaction.SetTag("success", "true")

	if lf := observability.GetClient(); lf.IsEnabled() {
		trace := lf.StartTrace(ctx, "tune.describe", map[string]interface{}{"provider": providerNameOpenAI})
		gen := trace.Generation("openai.responses", map[string]interface{}{"duration_ms": duration.Milliseconds()})
		gen.LogDescription(p.model, abcText, resp, nil)
		gen.Finish()
		trace.Finish()
	}

	return resp.OutputText(), nil
}
