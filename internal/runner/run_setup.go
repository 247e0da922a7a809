package runner

import (
	"fmt"
	"os"
	"time"

	"toolbench/internal/agent"
	"toolbench/internal/bench"
	"toolbench/internal/config"
	"toolbench/internal/eval"
	"toolbench/internal/prompt"
	"toolbench/internal/spec"
)

// Suite is everything a run needs that is loaded from disk before the first call.
type Suite struct {
	Prompts  prompt.Templates
	Registry *eval.SchemaRegistry
	Cases    []bench.Case
	// Inputs lists every file the suite was loaded from.
	Inputs []string
}

// LoadSuite loads prompts, tool schemas, and the corpus. Any failure is fatal to the run.
func LoadSuite(cfg spec.Config, repoRoot string) (Suite, error) {
	routerPath := config.ResolvePath(repoRoot, cfg.Prompts.Router)
	executorPath := config.ResolvePath(repoRoot, cfg.Prompts.Executor)
	corpusPath := config.ResolvePath(repoRoot, cfg.Corpus)
	templates, err := prompt.Load(routerPath, executorPath)
	if err != nil {
		return Suite{}, err
	}
	registry, err := loadRegistry(cfg.Tools, repoRoot)
	if err != nil {
		return Suite{}, err
	}
	cases, err := bench.LoadCases(corpusPath, registry)
	if err != nil {
		return Suite{}, err
	}
	inputs := []string{routerPath, executorPath, corpusPath}
	for _, tool := range cfg.Tools {
		inputs = append(inputs, config.ResolvePath(repoRoot, tool.Schema))
	}
	return Suite{Prompts: templates, Registry: registry, Cases: cases, Inputs: inputs}, nil
}

func loadRegistry(tools []spec.ToolConfig, repoRoot string) (*eval.SchemaRegistry, error) {
	if len(tools) == 0 {
		return eval.DefaultSchemaRegistry()
	}
	schemas := make([]eval.ToolSchema, 0, len(tools))
	for _, tool := range tools {
		data, err := os.ReadFile(config.ResolvePath(repoRoot, tool.Schema))
		if err != nil {
			return nil, fmt.Errorf("read schema for %s: %w", tool.Name, err)
		}
		schemas = append(schemas, eval.ToolSchema{Name: eval.ToolID(tool.Name), Document: data})
	}
	registry, err := eval.NewSchemaRegistry(schemas)
	if err != nil {
		return nil, fmt.Errorf("compile tool schemas: %w", err)
	}
	return registry, nil
}

// defaultProviderFactory builds providers from config and the environment.
func defaultProviderFactory(backend spec.BackendConfig) (agent.Provider, error) {
	return agent.ProviderFromEnv(agent.ProviderConfig{
		Name:    backend.Provider,
		BaseURL: backend.BaseURL,
	}, nil)
}

// newHarness wires a harness for the suite and backend.
func newHarness(cfg spec.Config, suite Suite, params RunParams) (*Harness, error) {
	factory := params.Deps.ProviderFactory
	if factory == nil {
		factory = defaultProviderFactory
	}
	provider, err := factory(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	timeout := DefaultCallTimeout
	if cfg.Backend.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Backend.TimeoutSeconds) * time.Second
	}
	return &Harness{
		Provider:    provider,
		Prompts:     suite.Prompts,
		Registry:    suite.Registry,
		Temperature: cfg.Backend.Temperature,
		Timeout:     timeout,
		Limiter:     agent.NewLimiter(cfg.Backend.RequestsPerSecond),
		Now:         params.Deps.Now,
		Observer:    params.Observer,
	}, nil
}
