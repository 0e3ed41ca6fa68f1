package core

import "context"

// EmbeddingProvider maps a batch of strings to fixed-dimension vectors.
// Output order matches input order 1:1; an empty batch yields nil, nil.
type EmbeddingProvider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// LLMProvider is the generative-text capability used for summaries.
type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
	// GenerateVision prompts the model with an image (raw bytes plus format,
	// e.g. "jpeg") instead of text input.
	GenerateVision(ctx context.Context, prompt string, imageFormat string, image []byte) (string, error)
}
