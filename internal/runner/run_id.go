package runner

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

const (
	runIDLayout      = "20060102T150405Z"
	runIDSuffixBytes = 4
)

// NewRunID returns a run identifier that sorts by start time. Two runs
// started in the same second differ in their random suffix.
func NewRunID(started time.Time) (string, error) {
	return newRunID(started, rand.Reader)
}

func newRunID(started time.Time, r io.Reader) (string, error) {
	buf := make([]byte, runIDSuffixBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read run id suffix: %w", err)
	}
	return started.UTC().Format(runIDLayout) + "-" + hex.EncodeToString(buf), nil
}

// RunIDTime recovers the start time stamped into a run id.
func RunIDTime(runID string) (time.Time, bool) {
	if len(runID) < len(runIDLayout) {
		return time.Time{}, false
	}
	started, err := time.Parse(runIDLayout, runID[:len(runIDLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return started, true
}
