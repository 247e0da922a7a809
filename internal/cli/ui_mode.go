package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// progressMode is how a run reports per-case progress.
type progressMode int

const (
	progressQuiet progressMode = iota
	progressVerbose
	progressLive
)

// progressChoice is the resolved mode plus an optional notice for stderr.
type progressChoice struct {
	mode    progressMode
	warning string
}

// isTerminal and inCI are test seams.
var (
	isTerminal = writerIsTerminal
	inCI       = func() bool { return strings.TrimSpace(os.Getenv("CI")) != "" }
)

// chooseProgress resolves --ui and --verbose. Verbose lines always win over
// the live view; auto picks the live view only on an interactive terminal.
func chooseProgress(ui string, verbose bool, stdout io.Writer) (progressChoice, error) {
	ui = strings.ToLower(strings.TrimSpace(ui))
	if ui == "" {
		ui = "auto"
	}
	switch ui {
	case "auto", "live", "plain":
	default:
		return progressChoice{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", ui)
	}

	if verbose {
		choice := progressChoice{mode: progressVerbose}
		if ui == "live" {
			choice.warning = "Verbose output requested; ignoring --ui live."
		}
		return choice, nil
	}
	switch ui {
	case "plain":
		return progressChoice{mode: progressQuiet}, nil
	case "live":
		if isTerminal(stdout) {
			return progressChoice{mode: progressLive}, nil
		}
		return progressChoice{
			mode:    progressQuiet,
			warning: "Live UI requested but stdout is not a TTY; falling back to plain output.",
		}, nil
	default:
		if isTerminal(stdout) && !inCI() {
			return progressChoice{mode: progressLive}, nil
		}
		return progressChoice{mode: progressQuiet}, nil
	}
}

func writerIsTerminal(w io.Writer) bool {
	fder, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fder.Fd()))
}
