// Package prompt loads the router and executor templates and assembles the
// text sent to the model for each stage.
package prompt

import (
	"fmt"
	"os"
	"strings"
)

// Templates holds the base text for each stage.
type Templates struct {
	Router   string
	Executor string
}

// Load reads both templates from disk. Template text is used as-is.
func Load(routerPath, executorPath string) (Templates, error) {
	router, err := readTemplate("router", routerPath)
	if err != nil {
		return Templates{}, err
	}
	executor, err := readTemplate("executor", executorPath)
	if err != nil {
		return Templates{}, err
	}
	return Templates{Router: router, Executor: executor}, nil
}

func readTemplate(stage, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s prompt: %w", stage, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%s prompt %s is empty", stage, path)
	}
	return string(data), nil
}

// RouterPrompt builds the routing prompt for a query.
func (t Templates) RouterPrompt(query string) string {
	return t.Router + "\n\nUser query: " + query
}

// ExecutorPrompt builds the argument-filling prompt for a chosen tool.
// prettySchema is the tool's argument schema, already indented.
func (t Templates) ExecutorPrompt(query, tool, prettySchema string) string {
	return strings.Join([]string{
		t.Executor,
		"Tool: " + tool,
		"Args JSON schema:\n" + prettySchema,
		"User query: " + query,
	}, "\n\n")
}
