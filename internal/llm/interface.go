package llm

import "context"

// Provider defines the contract for interacting with AI models.
// This interface allows for swapping different backends (Ollama, Gemini, etc.)
// without touching the planning modules.
type Provider interface {
	// Generate sends a single prompt and returns the generated text verbatim.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// Embed computes a dense vector representation for one text.
	Embed(ctx context.Context, model, text string) ([]float32, error)

	// ListModels returns the model identifiers available at the endpoint.
	ListModels(ctx context.Context) ([]string, error)

	// HealthCheck returns nil if the inference endpoint is reachable.
	HealthCheck(ctx context.Context) error
}
