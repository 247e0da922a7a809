package config

import (
	"fmt"
	"strings"

	"toolbench/internal/spec"
)

var supportedProviders = map[string]struct{}{
	"ollama":     {},
	"openrouter": {},
}

// validateBackend checks provider selection and call settings.
func validateBackend(backend spec.BackendConfig, add issueAdder) {
	if _, ok := supportedProviders[backend.Provider]; !ok {
		add("backend.provider", fmt.Sprintf("unsupported provider %q", backend.Provider))
	}
	if backend.Temperature < 0 || backend.Temperature > 2 {
		add("backend.temperature", "must be between 0 and 2")
	}
	if backend.TimeoutSeconds < 0 {
		add("backend.timeout_seconds", "must be >= 0")
	}
	if backend.RequestsPerSecond < 0 {
		add("backend.requests_per_second", "must be >= 0")
	}
}

// validateModels checks the model list and the default model.
func validateModels(cfg *spec.Config, add issueAdder) {
	seen := map[string]struct{}{}
	if len(cfg.Models) == 0 {
		add("models", "at least one model is required")
	}
	for i, model := range cfg.Models {
		if model == "" {
			add(fmt.Sprintf("models[%d]", i), "is required")
			continue
		}
		if _, exists := seen[model]; exists {
			add("models", fmt.Sprintf("duplicate model %q", model))
			continue
		}
		seen[model] = struct{}{}
	}
	if strings.TrimSpace(cfg.DefaultModel) == "" {
		if len(cfg.Models) > 1 {
			add("default_model", "is required when more than one model is listed")
		}
		return
	}
	if _, ok := seen[cfg.DefaultModel]; !ok {
		add("default_model", fmt.Sprintf("unknown model %q", cfg.DefaultModel))
	}
}
