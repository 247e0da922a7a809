package spec

// Config is the toolbench project configuration.
type Config struct {
	Version      int           `yaml:"version"`
	Backend      BackendConfig `yaml:"backend"`
	Models       []string      `yaml:"models"`
	DefaultModel string        `yaml:"default_model"`
	Prompts      PromptsConfig `yaml:"prompts"`
	Corpus       string        `yaml:"corpus"`
	OutputDir    string        `yaml:"output_dir"`
	DuckDB       string        `yaml:"duckdb"`
	Tools        []ToolConfig  `yaml:"tools"`
}

// BackendConfig selects the generation backend and its call settings.
type BackendConfig struct {
	Provider          string  `yaml:"provider"`
	BaseURL           string  `yaml:"base_url"`
	Temperature       float64 `yaml:"temperature"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// PromptsConfig points at the router and executor prompt templates.
type PromptsConfig struct {
	Router   string `yaml:"router"`
	Executor string `yaml:"executor"`
}

// ToolConfig registers a tool and its argument schema file.
type ToolConfig struct {
	Name   string `yaml:"name"`
	Schema string `yaml:"schema"`
}
