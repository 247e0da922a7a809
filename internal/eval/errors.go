package eval

import "errors"

// Stage names the protocol step that produced an outcome.
type Stage string

const (
	StageRouter   Stage = "router"
	StageExecutor Stage = "executor"
)

// ErrUnknownTool is returned when a tool has no registered schema.
var ErrUnknownTool = errors.New("unknown tool")

// ProtocolError reports model output that does not conform to the expected shape.
type ProtocolError struct {
	Stage  Stage
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	return e.Reason
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func protocolError(stage Stage, reason string, err error) *ProtocolError {
	return &ProtocolError{Stage: stage, Reason: reason, Err: err}
}
