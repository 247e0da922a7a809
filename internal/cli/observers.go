package cli

import (
	"fmt"
	"io"

	"toolbench/internal/runner"
	"toolbench/internal/ui/live"
)

// progress is the observer chosen for a run plus its teardown.
type progress struct {
	Observer runner.RunObserver
	live     *live.Controller
}

// startLiveUI is a test seam for launching the live UI.
var startLiveUI = live.Start

// newProgress picks live, verbose, or silent progress reporting.
func newProgress(mode string, verbose, noColor bool, stdout, stderr io.Writer) (progress, error) {
	choice, err := chooseProgress(mode, verbose, stdout)
	if err != nil {
		return progress{}, err
	}
	if choice.warning != "" {
		fmt.Fprintln(stderr, choice.warning)
	}
	switch choice.mode {
	case progressLive:
		controller := startLiveUI(stdout, live.Options{NoColor: noColor})
		return progress{Observer: controller, live: controller}, nil
	case progressVerbose:
		return progress{Observer: runner.NewVerboseObserver(stdout, noColor)}, nil
	default:
		return progress{}, nil
	}
}

// Stop closes the live UI and waits for it to restore the terminal.
func (p progress) Stop() {
	if p.live == nil {
		return
	}
	p.live.Close()
	p.live.Wait()
}
