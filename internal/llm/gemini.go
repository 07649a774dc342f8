package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	defaultGeminiModel      = "gemini-2.0-flash"
	defaultGeminiEmbedModel = "text-embedding-004"
)

// GeminiProvider implements Provider using Google's Gemini models.
// It exists as an alternative to the local Ollama endpoint for machines that
// cannot run a model locally.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Generate sends the prompt to Gemini and returns the joined candidate text.
func (p *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	name := req.Model
	if name == "" {
		name = defaultGeminiModel
	}

	model := p.client.GenerativeModel(name)
	if req.Temperature != 0 {
		model.SetTemperature(float32(req.Temperature))
	}
	if req.MaxTokens != 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w (model %s)", ErrEmptyResponse, name)
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(responseText.String()) == "" {
		return "", fmt.Errorf("%w (model %s)", ErrEmptyResponse, name)
	}
	return responseText.String(), nil
}

// Embed computes one embedding using Gemini's embedding model.
func (p *GeminiProvider) Embed(ctx context.Context, model, text string) ([]float32, error) {
	if model == "" {
		model = defaultGeminiEmbedModel
	}
	em := p.client.EmbeddingModel(model)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding error: %w", err)
	}
	if res.Embedding == nil {
		return nil, fmt.Errorf("%w (model %s)", ErrEmptyResponse, model)
	}
	return res.Embedding.Values, nil
}

// ListModels returns the model names visible to the API key.
func (p *GeminiProvider) ListModels(ctx context.Context) ([]string, error) {
	var names []string
	it := p.client.ListModels(ctx)
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gemini list models: %w", err)
		}
		names = append(names, m.Name)
	}
	return names, nil
}

// HealthCheck verifies the API is reachable by listing models.
func (p *GeminiProvider) HealthCheck(ctx context.Context) error {
	_, err := p.ListModels(ctx)
	return err
}
