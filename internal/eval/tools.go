package eval

// ToolID names a tool the router may select, or one of the control sentinels.
type ToolID string

const (
	// ToolNone is the sentinel for "no tool applies".
	ToolNone ToolID = "none"
	// ToolClarify is the sentinel for "ask a clarifying question".
	ToolClarify ToolID = "clarify"
)

// IsSentinel reports whether the id is a control sentinel rather than a tool.
func (id ToolID) IsSentinel() bool {
	return id == ToolNone || id == ToolClarify
}
