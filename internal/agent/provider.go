package agent

import "context"

// GenerateRequest is a single non-streaming completion request.
type GenerateRequest struct {
	Model       string
	Prompt      string
	Temperature float64
}

// Provider turns a prompt into a completion string for a model.
// Failures to reach the backend or non-success statuses are returned as
// *TransportError.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
