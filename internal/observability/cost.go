package observability

import (
	"strconv"

	"github.com/openai/openai-go/responses"
)

// ModelPricing contains pricing information per 1K tokens.
type ModelPricing struct {
	InputPricePer1K  float64
	OutputPricePer1K float64
}

// PricingTable contains pricing for gpt-5-mini, the model Describe()
// uses, and gpt-5. CalculateOpenAICost prices any other model as
// gpt-5-mini.
var PricingTable = map[string]ModelPricing{
	"gpt-5-mini": {
		InputPricePer1K:  0.0005,
		OutputPricePer1K: 0.0015,
	},
	"gpt-5": {
		InputPricePer1K:  0.001,
		OutputPricePer1K: 0.003,
	},
}

// CalculateOpenAICost calculates the cost in USD for an OpenAI Responses
// API call.
func CalculateOpenAICost(model string, usage responses.ResponseUsage) float64 {
	pricing, exists := PricingTable[model]
	if !exists {
		pricing = PricingTable["gpt-5-mini"]
	}

	inputCost := (float64(usage.InputTokens) / 1000.0) * pricing.InputPricePer1K
	outputCost := (float64(usage.OutputTokens) / 1000.0) * pricing.OutputPricePer1K

	reasoningCost := 0.0
	if usage.OutputTokensDetails.ReasoningTokens > 0 {
		reasoningCost = (float64(usage.OutputTokensDetails.ReasoningTokens) / 1000.0) * pricing.InputPricePer1K
	}

	return inputCost + outputCost + reasoningCost
}

// FormatCost formats a cost value as a USD string.
func FormatCost(cost float64) string {
	return "$" + strconv.FormatFloat(cost, 'f', 6, 64)
}
