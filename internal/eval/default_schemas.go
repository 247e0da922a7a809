package eval

const itemLookupSchema = `{
  "type": "object",
  "properties": {
    "query": { "type": "string" },
    "limit": { "type": ["integer", "null"] }
  },
  "required": ["query"],
  "additionalProperties": false
}`

const perkLookupSchema = `{
  "type": "object",
  "properties": {
    "perkName": { "type": "string" }
  },
  "required": ["perkName"],
  "additionalProperties": false
}`

const activityLookupSchema = `{
  "type": "object",
  "properties": {
    "activityName": { "type": "string" }
  },
  "required": ["activityName"],
  "additionalProperties": false
}`

// DefaultToolSchemas returns the built-in lookup tools used when a config
// does not declare its own.
func DefaultToolSchemas() []ToolSchema {
	return []ToolSchema{
		{Name: "item_lookup", Document: []byte(itemLookupSchema)},
		{Name: "perk_lookup", Document: []byte(perkLookupSchema)},
		{Name: "activity_lookup", Document: []byte(activityLookupSchema)},
	}
}

// DefaultSchemaRegistry compiles DefaultToolSchemas.
func DefaultSchemaRegistry() (*SchemaRegistry, error) {
	return NewSchemaRegistry(DefaultToolSchemas())
}
