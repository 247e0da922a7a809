package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrEmptyConfig is returned for a config file with no YAML document.
var ErrEmptyConfig = errors.New("config file is empty")

// ParseConfig decodes exactly one YAML document. Unknown keys are errors so
// that a misspelled field never silently falls back to its default.
func ParseConfig(data []byte) (Config, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg Config
	switch err := decoder.Decode(&cfg); {
	case errors.Is(err, io.EOF):
		return Config{}, ErrEmptyConfig
	case err != nil:
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	var extra yaml.Node
	switch err := decoder.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("parse config: %w", err)
	default:
		return Config{}, fmt.Errorf("parse config: found a second YAML document at line %d; only one is allowed", extra.Line)
	}
}
