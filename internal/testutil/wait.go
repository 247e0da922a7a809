package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a test context when no timeout is given.
const DefaultTimeout = 5 * time.Second

// pollInterval is how often Eventually re-checks its condition.
const pollInterval = 10 * time.Millisecond

// Context returns a context cancelled at test cleanup. It expires after
// timeout, or one second before the test binary's own deadline if that is sooner.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	deadline := time.Now().Add(timeout)
	if testDeadline, ok := t.Deadline(); ok {
		if limit := testDeadline.Add(-time.Second); limit.After(time.Now()) && limit.Before(deadline) {
			deadline = limit
		}
	}
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	t.Cleanup(cancel)
	return ctx
}

// Eventually polls cond until it holds, failing the test with msg after timeout.
func Eventually(t testing.TB, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	ctx := Context(t, timeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for !cond() {
		select {
		case <-ctx.Done():
			t.Fatalf("condition not met within %s: %s", timeout, msg)
		case <-ticker.C:
		}
	}
}
