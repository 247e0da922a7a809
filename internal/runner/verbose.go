package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const verbosePrefix = "[verbose]"

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiGray  = "\x1b[90m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleTask
	styleMetrics
	styleError
)

func logVerbose(enabled bool, writer io.Writer, noColor bool, style verboseStyle, format string, args ...any) {
	if !enabled || writer == nil {
		return
	}
	palette := paletteFor(writer, noColor)
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(writer, "%s %s\n", palette.prefix(verbosePrefix), palette.apply(style, line))
}

// VerboseObserver writes per-case progress lines to a writer.
type VerboseObserver struct {
	Writer  io.Writer
	NoColor bool
	total   int
}

// NewVerboseObserver builds an observer that logs to writer.
func NewVerboseObserver(writer io.Writer, noColor bool) *VerboseObserver {
	return &VerboseObserver{Writer: writer, NoColor: noColor}
}

func (v *VerboseObserver) OnRunStart(runID string, model string, total int) {
	v.total = total
	logVerbose(true, v.Writer, v.NoColor, styleTask, "run %s model=%s cases=%d", runID, model, total)
}

func (v *VerboseObserver) OnCaseEvent(event CaseEvent) {
	if event.Type != CaseFinished || event.Result == nil {
		return
	}
	result := event.Result
	logVerbose(true, v.Writer, v.NoColor, styleTask, "case %d/%d query=%q", event.Index+1, v.total, result.Query)
	logVerbose(true, v.Writer, v.NoColor, styleDefault, "expected=%s got=%s status=%s", result.ExpectedTool, result.GotTool, result.Status)
	logVerbose(true, v.Writer, v.NoColor, styleDefault, "routerMs=%d execMs=%d", result.RouterMs, result.ExecMs)
	if result.Reason == "" {
		return
	}
	logVerbose(true, v.Writer, v.NoColor, styleError, "%s (%s)", result.Reason, result.FailureKind)
	raw := event.RouterRaw
	if result.Status == StatusExecutorFail {
		raw = event.ExecRaw
	}
	if strings.TrimSpace(raw) != "" {
		logVerbose(true, v.Writer, v.NoColor, styleDefault, "raw=%q", truncateRaw(raw))
	}
}

func (v *VerboseObserver) OnRunEnd(results Results) {
	summary := results.Summary
	logVerbose(true, v.Writer, v.NoColor, styleMetrics,
		"summary model=%s strict=%s accept=%s json=%s schema=%s clarify=%s router=%dms exec=%dms",
		summary.Model,
		FormatRate(summary.StrictToolAccuracyRate),
		FormatRate(summary.AcceptableAccuracyRate),
		FormatRate(summary.JSONValidityRate),
		FormatRate(summary.SchemaValidityRate),
		FormatRate(summary.ClarifyRate),
		summary.AvgRouterMs,
		summary.AvgExecMs,
	)
}

const verboseRawMaxBytes = 400

func truncateRaw(value string) string {
	if len(value) <= verboseRawMaxBytes {
		return value
	}
	return value[:verboseRawMaxBytes] + "... [truncated]"
}

type verbosePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: shouldUseStyling(writer)}
}

func shouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p verbosePalette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleTask:
		return ansiBold + ansiBlue + text + ansiReset
	case styleMetrics:
		return ansiBold + ansiGreen + text + ansiReset
	case styleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return text
	}
}
