package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaProvider implements Provider against a locally running Ollama instance.
// Endpoints used:
//   - POST /api/generate   — non-streaming text generation
//   - POST /api/embeddings — single text embedding
//   - GET  /api/tags       — health check and model listing
type OllamaProvider struct {
	baseURL    string
	model      string
	embedModel string
	httpClient *http.Client
}

// NewOllamaProvider creates a provider for the Ollama API at baseURL.
// model and embedModel are the defaults used when a request does not name one.
func NewOllamaProvider(baseURL, model, embedModel string, timeout time.Duration) *OllamaProvider {
	return &OllamaProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response   string `json:"response"`
	Done       bool   `json:"done"`
	DoneReason string `json:"done_reason"`
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Generate performs a non-streaming completion via POST /api/generate.
// The model text is returned verbatim; a blank completion is ErrEmptyResponse.
func (p *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:   model,
		Prompt:  req.Prompt,
		Stream:  false,
		Options: buildOptions(req),
	})
	if err != nil {
		return "", err
	}

	respBody, err := p.doPost(ctx, "/api/generate", model, body)
	if err != nil {
		return "", err
	}
	defer respBody.Close()

	var genResp ollamaGenerateResponse
	if decodeErr := json.NewDecoder(respBody).Decode(&genResp); decodeErr != nil {
		return "", fmt.Errorf("decode generate response: %w", decodeErr)
	}
	if strings.TrimSpace(genResp.Response) == "" {
		return "", fmt.Errorf("%w (model %s)", ErrEmptyResponse, model)
	}
	return genResp.Response, nil
}

// buildOptions converts GenerateRequest tuning fields into the Ollama options map.
func buildOptions(req GenerateRequest) map[string]any {
	opts := map[string]any{}
	if req.Temperature != 0 {
		opts["temperature"] = req.Temperature
	}
	if req.MaxTokens != 0 {
		opts["num_predict"] = req.MaxTokens
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

// Embed computes one embedding via POST /api/embeddings.
func (p *OllamaProvider) Embed(ctx context.Context, model, text string) ([]float32, error) {
	if model == "" {
		model = p.embedModel
	}

	body, err := json.Marshal(ollamaEmbedRequest{Model: model, Prompt: text})
	if err != nil {
		return nil, err
	}

	respBody, err := p.doPost(ctx, "/api/embeddings", model, body)
	if err != nil {
		return nil, err
	}
	defer respBody.Close()

	var embResp ollamaEmbedResponse
	if decodeErr := json.NewDecoder(respBody).Decode(&embResp); decodeErr != nil {
		return nil, fmt.Errorf("decode embed response: %w", decodeErr)
	}
	return embResp.Embedding, nil
}

// ListModels returns the names of locally pulled models via GET /api/tags.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	respBody, err := p.doGet(ctx, "/api/tags")
	if err != nil {
		return nil, err
	}
	defer respBody.Close()

	var tags ollamaTagsResponse
	if decodeErr := json.NewDecoder(respBody).Decode(&tags); decodeErr != nil {
		return nil, fmt.Errorf("decode tags response: %w", decodeErr)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// HealthCheck calls GET /api/tags — returns nil if Ollama is reachable.
func (p *OllamaProvider) HealthCheck(ctx context.Context) error {
	respBody, err := p.doGet(ctx, "/api/tags")
	if err != nil {
		return err
	}
	respBody.Close()
	return nil
}

// doPost sends JSON to baseURL+path and classifies transport and status failures.
// Caller closes the returned body.
func (p *OllamaProvider) doPost(ctx context.Context, path, model string, body []byte) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama post %s: build request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEndpointUnavailable, p.baseURL, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		detail := readErrorDetail(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %q: %s", ErrModelNotFound, model, detail)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := readErrorDetail(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("ollama post %s: status %d: %s", path, resp.StatusCode, detail)
	}
	return resp.Body, nil
}

func (p *OllamaProvider) doGet(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("ollama get %s: build request: %w", path, err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEndpointUnavailable, p.baseURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("ollama get %s: status %d", path, resp.StatusCode)
	}
	return resp.Body, nil
}

// readErrorDetail pulls the "error" field out of an Ollama error body, if any.
func readErrorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no detail"
	}
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(raw))
}
