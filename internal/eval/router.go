package eval

import "fmt"

// Choice is the router's top-level decision.
type Choice string

const (
	ChoiceCallTool Choice = "call_tool"
	ChoiceClarify  Choice = "clarify"
	ChoiceNone     Choice = "none"
)

// RouterDecision is a validated router outcome. Values are only built by
// CallTool, Clarify, NoTool and DecodeRouterDecision, so a decision always
// carries exactly the data of its choice.
type RouterDecision struct {
	choice   Choice
	tool     ToolID
	question string
}

// CallTool builds a decision that hands the query to the executor.
func CallTool(tool ToolID) RouterDecision {
	return RouterDecision{choice: ChoiceCallTool, tool: tool}
}

// Clarify builds a decision that asks the user a question.
func Clarify(question string) RouterDecision {
	return RouterDecision{choice: ChoiceClarify, question: question}
}

// NoTool builds a decision that declines to call any tool.
func NoTool() RouterDecision {
	return RouterDecision{choice: ChoiceNone}
}

func (d RouterDecision) Choice() Choice   { return d.choice }
func (d RouterDecision) Tool() ToolID     { return d.tool }
func (d RouterDecision) Question() string { return d.question }

// ToolChecker reports whether a tool can be handed to the executor.
type ToolChecker interface {
	HasTool(tool ToolID) bool
}

// DecodeRouterDecision interprets a raw completion as a router decision.
// When tools is nil the selected tool name is accepted without a membership check.
func DecodeRouterDecision(raw string, tools ToolChecker) (RouterDecision, error) {
	parsed, err := ParseCompletion(raw)
	if err != nil {
		return RouterDecision{}, protocolError(StageRouter, "router json parse failed: "+err.Error(), err)
	}
	if parsed.Kind != JSONObject {
		return RouterDecision{}, protocolError(StageRouter, "router output not object", nil)
	}

	choice, _ := parsed.StringField("choice")
	switch Choice(choice) {
	case ChoiceCallTool:
		tool, ok := parsed.StringField("tool")
		if !ok {
			return RouterDecision{}, protocolError(StageRouter, "router call_tool missing tool string", nil)
		}
		if tools != nil && !tools.HasTool(ToolID(tool)) {
			return RouterDecision{}, protocolError(StageRouter, fmt.Sprintf("router unknown tool %q", tool), ErrUnknownTool)
		}
		return CallTool(ToolID(tool)), nil
	case ChoiceClarify:
		question, ok := parsed.StringField("question")
		if !ok {
			return RouterDecision{}, protocolError(StageRouter, "router clarify missing question string", nil)
		}
		return Clarify(question), nil
	case ChoiceNone:
		return NoTool(), nil
	default:
		return RouterDecision{}, protocolError(StageRouter, "router missing/invalid choice", nil)
	}
}
