package runner

import (
	"bytes"
	"testing"
	"time"
)

// TestNewRunIDStampsStartTime verifies the id carries the UTC start time and suffix.
func TestNewRunIDStampsStartTime(t *testing.T) {
	started := time.Date(2026, 6, 7, 10, 9, 10, 0, time.FixedZone("CEST", 2*60*60))
	got, err := newRunID(started, bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "20260607T080910Z-deadbeef" {
		t.Fatalf("unexpected run id: %q", got)
	}
	stamp, ok := RunIDTime(got)
	if !ok || !stamp.Equal(started) {
		t.Fatalf("expected %v from run id, got %v (ok=%v)", started, stamp, ok)
	}
}

// TestNewRunIDShortRandom verifies a failing random source is reported.
func TestNewRunIDShortRandom(t *testing.T) {
	if _, err := newRunID(testStart, bytes.NewReader([]byte{0x01})); err == nil {
		t.Fatalf("expected error for short random source")
	}
}

// TestRunIDTimeRejectsForeignIDs verifies ids without a timestamp are not parsed.
func TestRunIDTimeRejectsForeignIDs(t *testing.T) {
	for _, id := range []string{"", "run-1", "not-a-timestamp-at-all"} {
		if _, ok := RunIDTime(id); ok {
			t.Fatalf("expected %q to be rejected", id)
		}
	}
}
