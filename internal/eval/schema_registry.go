package eval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ToolSchema pairs a tool name with its argument JSON Schema document.
type ToolSchema struct {
	Name     ToolID
	Document []byte
}

// SchemaRegistry maps every real tool to its compiled argument schema.
// Schemas are compiled once in NewSchemaRegistry and never change afterwards.
type SchemaRegistry struct {
	order   []ToolID
	entries map[ToolID]registeredSchema
}

type registeredSchema struct {
	pretty   string
	compiled *jsonschema.Schema
}

var toolNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// NewSchemaRegistry validates and compiles the given tool schemas.
func NewSchemaRegistry(schemas []ToolSchema) (*SchemaRegistry, error) {
	if len(schemas) == 0 {
		return nil, fmt.Errorf("at least one tool schema is required")
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	registry := &SchemaRegistry{
		order:   make([]ToolID, 0, len(schemas)),
		entries: make(map[ToolID]registeredSchema, len(schemas)),
	}
	urls := make(map[ToolID]string, len(schemas))
	pretty := make(map[ToolID]string, len(schemas))
	for _, schema := range schemas {
		name := schema.Name
		if !toolNamePattern.MatchString(string(name)) {
			return nil, fmt.Errorf("invalid tool name %q", name)
		}
		if name.IsSentinel() {
			return nil, fmt.Errorf("tool name %q is reserved", name)
		}
		if _, exists := urls[name]; exists {
			return nil, fmt.Errorf("duplicate tool %q", name)
		}
		if err := checkArgSchemaShape(schema.Document); err != nil {
			return nil, fmt.Errorf("tool %s: %w", name, err)
		}
		var indented bytes.Buffer
		if err := json.Indent(&indented, bytes.TrimSpace(schema.Document), "", "  "); err != nil {
			return nil, fmt.Errorf("tool %s: format schema: %w", name, err)
		}
		url := "mem://toolbench/schemas/" + string(name) + ".json"
		if err := compiler.AddResource(url, bytes.NewReader(schema.Document)); err != nil {
			return nil, fmt.Errorf("tool %s: add schema: %w", name, err)
		}
		urls[name] = url
		pretty[name] = indented.String()
		registry.order = append(registry.order, name)
	}
	for _, name := range registry.order {
		compiled, err := compiler.Compile(urls[name])
		if err != nil {
			return nil, fmt.Errorf("tool %s: compile schema: %w", name, err)
		}
		registry.entries[name] = registeredSchema{pretty: pretty[name], compiled: compiled}
	}
	return registry, nil
}

// checkArgSchemaShape enforces the object-with-no-extra-fields policy.
func checkArgSchemaShape(document []byte) error {
	parsed, err := ParseJSON(document)
	if err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}
	if parsed.Kind != JSONObject {
		return fmt.Errorf("schema must be a JSON object")
	}
	if schemaType, _ := parsed.StringField("type"); schemaType != "object" {
		return fmt.Errorf(`schema "type" must be "object"`)
	}
	additional, ok := parsed.Field("additionalProperties")
	if !ok || additional.Kind != JSONBool || additional.Bool {
		return fmt.Errorf(`schema must set "additionalProperties": false`)
	}
	return nil
}

// HasTool reports whether tool is a registered real tool.
func (r *SchemaRegistry) HasTool(tool ToolID) bool {
	_, ok := r.entries[tool]
	return ok
}

// IsKnown reports whether id is a registered tool or a control sentinel.
func (r *SchemaRegistry) IsKnown(id ToolID) bool {
	return id.IsSentinel() || r.HasTool(id)
}

// Tools returns the registered tool names in registration order.
func (r *SchemaRegistry) Tools() []ToolID {
	return append([]ToolID(nil), r.order...)
}

// PrettySchema returns the tool's schema indented for prompts.
func (r *SchemaRegistry) PrettySchema(tool ToolID) (string, error) {
	entry, ok := r.entries[tool]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownTool, tool)
	}
	return entry.pretty, nil
}

// Validate checks args against the tool's schema. Unknown fields, missing
// required fields and wrong value types are all rejected.
func (r *SchemaRegistry) Validate(tool ToolID, args JSONValue) error {
	entry, ok := r.entries[tool]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownTool, tool)
	}
	return entry.compiled.Validate(args.ToInterface())
}
