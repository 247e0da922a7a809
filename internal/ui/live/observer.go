package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"toolbench/internal/runner"
)

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events  chan Event
	program *tea.Program
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop once queued events drain.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.events)
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string, model string, total int) {
	c.send(runStarted{runID: runID, model: model, total: total})
}

// OnCaseEvent forwards case status updates to the UI.
func (c *Controller) OnCaseEvent(event runner.CaseEvent) {
	c.send(caseUpdated{event: event})
}

// OnRunEnd forwards the model summary. The UI stays open until Close.
// Unlike case updates it is never dropped; it waits for buffer space unless
// the program has already exited.
func (c *Controller) OnRunEnd(results runner.Results) {
	c.deliver(runFinished{summary: results.Summary})
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}

// deliver enqueues an event, blocking until there is room or the UI exits.
func (c *Controller) deliver(event Event) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.events <- event:
	case <-c.done:
	}
}
