package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOllamaGenerateSendsNonStreamingRequest(t *testing.T) {
	var got ollamaGenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/generate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"model":"qwen2.5:7b","response":"{\"choice\":\"clarify\",\"question\":\"which?\"}","done":true}`)
	}))
	t.Cleanup(server.Close)

	provider := NewOllamaProvider(server.URL, server.Client())
	text, err := provider.Generate(context.Background(), GenerateRequest{Model: "qwen2.5:7b", Prompt: "route this", Temperature: 0.1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != `{"choice":"clarify","question":"which?"}` {
		t.Fatalf("unexpected completion %q", text)
	}
	if got.Stream || got.Model != "qwen2.5:7b" || got.Prompt != "route this" || got.Options.Temperature != 0.1 {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestOllamaGenerateStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"model not found"}`)
	}))
	t.Cleanup(server.Close)

	provider := NewOllamaProvider(server.URL, server.Client())
	_, err := provider.Generate(context.Background(), GenerateRequest{Model: "missing", Prompt: "hi"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != `ollama error: 404 {"error":"model not found"}` {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestOllamaGenerateUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	provider := NewOllamaProvider(url, nil)
	_, err := provider.Generate(context.Background(), GenerateRequest{Model: "m", Prompt: "hi"})
	var transportErr *TransportError
	if !errors.As(err, &transportErr) || transportErr.Kind != TransportUnreachable {
		t.Fatalf("expected unreachable error, got %v", err)
	}
}

func TestOllamaGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	provider := NewOllamaProvider(server.URL, server.Client())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := provider.Generate(ctx, GenerateRequest{Model: "m", Prompt: "hi"})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestNewOllamaProviderNormalizesBaseURL(t *testing.T) {
	provider := NewOllamaProvider("http://localhost:11434/api/", nil)
	if provider.BaseURL != "http://localhost:11434" {
		t.Fatalf("unexpected base url %q", provider.BaseURL)
	}
}
