package eval

import "fmt"

// ToolCall is an executor outcome whose arguments passed schema validation.
type ToolCall struct {
	Tool ToolID
	Args map[string]JSONValue
}

// ArgValidator checks tool arguments against the tool's schema.
type ArgValidator interface {
	Validate(tool ToolID, args JSONValue) error
}

// DecodeToolCall interprets a raw completion as an invocation of tool.
func DecodeToolCall(raw string, tool ToolID, validator ArgValidator) (ToolCall, error) {
	parsed, err := ParseCompletion(raw)
	if err != nil {
		return ToolCall{}, protocolError(StageExecutor, "executor json parse failed: "+err.Error(), err)
	}
	if parsed.Kind != JSONObject {
		return ToolCall{}, protocolError(StageExecutor, "executor output not object", nil)
	}
	if got, ok := parsed.StringField("tool"); !ok || ToolID(got) != tool {
		return ToolCall{}, protocolError(StageExecutor, fmt.Sprintf("executor tool mismatch (expected %s)", tool), nil)
	}
	args, ok := parsed.Field("args")
	if !ok || args.Kind != JSONObject {
		return ToolCall{}, protocolError(StageExecutor, "executor missing args object", nil)
	}
	if validator != nil {
		if err := validator.Validate(tool, args); err != nil {
			return ToolCall{}, protocolError(StageExecutor, "args schema fail: "+err.Error(), err)
		}
	}
	return ToolCall{Tool: tool, Args: args.Object}, nil
}
