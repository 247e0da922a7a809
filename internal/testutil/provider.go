package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"toolbench/internal/agent"
)

// Reply is one scripted completion.
type Reply struct {
	Text    string
	Err     error
	Latency time.Duration
	// Hang blocks the call until its context ends, then fails it as a timeout.
	Hang bool
}

// ScriptedProvider replays replies in call order and records each request.
type ScriptedProvider struct {
	mu       sync.Mutex
	replies  []Reply
	clock    *FakeClock
	requests []agent.GenerateRequest
}

// NewScriptedProvider returns a provider that answers with replies in order.
// When clock is set, each call advances it by the reply latency.
func NewScriptedProvider(clock *FakeClock, replies ...Reply) *ScriptedProvider {
	return &ScriptedProvider{replies: replies, clock: clock}
}

// Name returns the provider identifier.
func (p *ScriptedProvider) Name() string {
	return "scripted"
}

// Generate returns the next scripted reply.
func (p *ScriptedProvider) Generate(ctx context.Context, req agent.GenerateRequest) (string, error) {
	reply, err := p.next(ctx, req)
	if err != nil {
		return "", err
	}
	if reply.Hang {
		<-ctx.Done()
		return "", &agent.TransportError{Provider: p.Name(), Kind: agent.TransportTimeout, Err: ctx.Err()}
	}
	if p.clock != nil {
		p.clock.Advance(reply.Latency)
	}
	return reply.Text, reply.Err
}

func (p *ScriptedProvider) next(ctx context.Context, req agent.GenerateRequest) (Reply, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	index := len(p.requests) - 1
	if index >= len(p.replies) {
		return Reply{}, fmt.Errorf("no scripted reply for call %d", index+1)
	}
	return p.replies[index], nil
}

// Requests returns a copy of every request received so far.
func (p *ScriptedProvider) Requests() []agent.GenerateRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]agent.GenerateRequest(nil), p.requests...)
}

// FakeClock is a manual clock shared by a harness and its scripted
// providers, so stage timings equal the scripted latencies.
type FakeClock struct {
	mu      sync.Mutex
	start   time.Time
	elapsed time.Duration
}

// NewFakeClock starts a clock at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{start: start}
}

// Now returns the start time plus all advances so far.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.start.Add(c.elapsed)
}

// Advance moves the clock forward by d and returns the new time.
func (c *FakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elapsed += d
	return c.start.Add(c.elapsed)
}
