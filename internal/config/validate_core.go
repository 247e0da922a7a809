package config

import (
	"fmt"

	"toolbench/internal/spec"
)

// ConfigVersion is the only config schema version this build reads.
const ConfigVersion = 1

// Validate checks a normalized config and the files it references.
// Relative paths resolve against baseDir, the repo root.
func Validate(cfg *spec.Config, baseDir string) error {
	if baseDir == "" {
		baseDir = "."
	}
	issues := &issueCollector{}
	add := issues.add

	switch cfg.Version {
	case ConfigVersion:
	case 0:
		add("version", "is required")
	default:
		add("version", fmt.Sprintf("unsupported version %d (expected %d)", cfg.Version, ConfigVersion))
	}

	validateBackend(cfg.Backend, add)
	validateModels(cfg, add)
	validateFiles(cfg, baseDir, add)
	validateTools(cfg.Tools, baseDir, add)

	return issues.result()
}
