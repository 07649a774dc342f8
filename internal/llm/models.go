package llm

import "errors"

// ErrEndpointUnavailable is returned when the inference endpoint cannot be reached.
var ErrEndpointUnavailable = errors.New("inference endpoint unavailable")

// ErrModelNotFound is returned when the requested model is not present at the endpoint.
var ErrModelNotFound = errors.New("model not found")

// ErrEmptyResponse is returned when the endpoint answers with no generated text.
var ErrEmptyResponse = errors.New("empty response from model")

// GenerateRequest is the input for a single non-streaming generation.
type GenerateRequest struct {
	// Model overrides the provider default when non-empty.
	Model string

	// Prompt is the full text instruction sent to the model.
	Prompt string

	// Temperature of 0 means "use the provider default".
	Temperature float64

	// MaxTokens caps the response length; 0 means no cap.
	MaxTokens int
}
