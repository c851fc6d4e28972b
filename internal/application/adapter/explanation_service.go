// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// GeneratedExplanation represents raw LLM output and the model that
// produced it.
type GeneratedExplanation struct {
	Text  string
	Model string
}

// ExplanationService defines the interface for LLM-backed explanation text
// generation. Prompt construction stays in the application layer so the
// audit hash covers exactly what was (or would have been) sent.
type ExplanationService interface {
	// Generate produces explanation text for a fully built prompt.
	Generate(ctx context.Context, prompt string) (*GeneratedExplanation, error)

	// IsAvailable checks if the service is configured with credentials.
	IsAvailable() bool
}
