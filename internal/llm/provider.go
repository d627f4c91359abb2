// Package llm provides a single, narrow LLM collaborator for the
// tune-describer feature: given a tune's raw ABC text, produce a short
// prose description of it. This trims the teacher's much larger
// agent/streaming/MCP-oriented Provider surface down to the one call
// this domain needs.
package llm

import "context"

// Provider describes a tune from its raw ABC text.
type Provider interface {
	Describe(ctx context.Context, abcText string) (string, error)
	Name() string
}

const descriptionSystemPrompt = `You are a folk music archivist. Given a tune transcribed in ABC notation, ` +
	`write a short, plain-English description (2-3 sentences) covering its key, metre, and any distinctive ` +
	`melodic or rhythmic character you can infer from the notation. Do not repeat the ABC text back.`
