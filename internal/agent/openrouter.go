package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// defaultOpenRouterBaseURL is the default OpenRouter API base URL.
const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider implements Provider for the OpenRouter chat completions API.
type OpenRouterProvider struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
}

type openRouterRequest struct {
	Model       string              `json:"model"`
	Stream      bool                `json:"stream"`
	Temperature float64             `json:"temperature"`
	Messages    []openRouterMessage `json:"messages"`
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterResponse struct {
	Choices []struct {
		Message openRouterMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewOpenRouterProvider constructs an OpenRouter provider with explicit settings.
func NewOpenRouterProvider(apiKey, baseURL string, client HTTPDoer) (*OpenRouterProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenRouterProvider{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}, nil
}

// Name returns the provider identifier.
func (p *OpenRouterProvider) Name() string {
	return "openrouter"
}

// Generate sends the prompt as a single user message and returns the first choice.
func (p *OpenRouterProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if strings.TrimSpace(req.Model) == "" {
		return "", fmt.Errorf("model is required")
	}
	payload, err := json.Marshal(openRouterRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		Messages:    []openRouterMessage{{Role: "user", Content: req.Prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := p.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
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

	var decoded openRouterResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if ctx.Err() != nil {
			return "", requestError(ctx, p.Name(), err)
		}
		return "", &TransportError{Provider: p.Name(), Kind: TransportDecode, Err: err}
	}
	if decoded.Error != nil {
		return "", &TransportError{Provider: p.Name(), Kind: TransportStatus, StatusCode: resp.StatusCode, Body: decoded.Error.Message}
	}
	if len(decoded.Choices) == 0 {
		return "", &TransportError{Provider: p.Name(), Kind: TransportDecode, Err: fmt.Errorf("response has no choices")}
	}
	return decoded.Choices[0].Message.Content, nil
}

// ProviderConfig selects and configures a generation backend.
type ProviderConfig struct {
	Name    string
	BaseURL string
}

// ProviderFromEnv builds a provider, reading credentials from the environment.
func ProviderFromEnv(cfg ProviderConfig, client HTTPDoer) (Provider, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = strings.TrimSpace(os.Getenv("TOOLBENCH_PROVIDER"))
	}
	switch name {
	case "", "ollama":
		return NewOllamaProvider(cfg.BaseURL, client), nil
	case "openrouter":
		apiKey := strings.TrimSpace(os.Getenv("TOOLBENCH_API_KEY"))
		if apiKey == "" {
			apiKey = strings.TrimSpace(os.Getenv("LLM_API_KEY"))
		}
		if apiKey == "" {
			return nil, fmt.Errorf("TOOLBENCH_API_KEY or LLM_API_KEY is required for openrouter")
		}
		provider, err := NewOpenRouterProvider(apiKey, cfg.BaseURL, client)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", name)
	}
}
