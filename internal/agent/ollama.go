package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// defaultOllamaBaseURL is the default local Ollama server.
const defaultOllamaBaseURL = "http://127.0.0.1:11434"

// OllamaProvider implements Provider against Ollama's /api/generate endpoint.
type OllamaProvider struct {
	BaseURL string
	Client  HTTPDoer
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}

// NewOllamaProvider constructs an Ollama provider; an empty baseURL uses the local default.
func NewOllamaProvider(baseURL string, client HTTPDoer) *OllamaProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOllamaBaseURL
	}
	baseURL = strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/api")
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaProvider{BaseURL: baseURL, Client: client}
}

// Name returns the provider identifier.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Generate sends a non-streaming generate request and returns the completion text.
func (p *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if strings.TrimSpace(req.Model) == "" {
		return "", fmt.Errorf("model is required")
	}
	payload, err := json.Marshal(ollamaGenerateRequest{
		Model:   req.Model,
		Prompt:  req.Prompt,
		Stream:  false,
		Options: ollamaOptions{Temperature: req.Temperature},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return "", requestError(ctx, p.Name(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &TransportError{Provider: p.Name(), Kind: TransportStatus, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var decoded ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if ctx.Err() != nil {
			return "", requestError(ctx, p.Name(), err)
		}
		return "", &TransportError{Provider: p.Name(), Kind: TransportDecode, Err: err}
	}
	if decoded.Error != "" {
		return "", &TransportError{Provider: p.Name(), Kind: TransportStatus, StatusCode: resp.StatusCode, Body: decoded.Error}
	}
	return decoded.Response, nil
}
