package config

import (
	"strings"

	"toolbench/internal/spec"
)

// Defaults applied by Normalize.
const (
	DefaultProvider       = "ollama"
	DefaultTimeoutSeconds = 120
)

// Normalize fills in defaults that do not need validation context.
func Normalize(cfg *spec.Config) {
	cfg.Backend.Provider = strings.ToLower(strings.TrimSpace(cfg.Backend.Provider))
	if cfg.Backend.Provider == "" {
		cfg.Backend.Provider = DefaultProvider
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = DefaultTimeoutSeconds
	}
	for i := range cfg.Models {
		cfg.Models[i] = strings.TrimSpace(cfg.Models[i])
	}
	cfg.DefaultModel = strings.TrimSpace(cfg.DefaultModel)
	if cfg.DefaultModel == "" && len(cfg.Models) == 1 {
		cfg.DefaultModel = cfg.Models[0]
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	for i := range cfg.Tools {
		cfg.Tools[i].Name = strings.TrimSpace(cfg.Tools[i].Name)
	}
}
