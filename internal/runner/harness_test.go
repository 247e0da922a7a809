package runner

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"toolbench/internal/agent"
	"toolbench/internal/bench"
	"toolbench/internal/eval"
	"toolbench/internal/prompt"
	"toolbench/internal/testutil"
)

var testStart = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// newTestHarness wires a harness around scripted replies and a fake clock.
func newTestHarness(t *testing.T, replies ...testutil.Reply) (*Harness, *testutil.ScriptedProvider) {
	t.Helper()
	registry, err := eval.DefaultSchemaRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	clock := testutil.NewFakeClock(testStart)
	provider := testutil.NewScriptedProvider(clock, replies...)
	return &Harness{
		Provider:    provider,
		Prompts:     prompt.Templates{Router: "ROUTER", Executor: "EXECUTOR"},
		Registry:    registry,
		Temperature: 0.1,
		Timeout:     time.Second,
		Now:         clock.Now,
	}, provider
}

func reply(text string, latency time.Duration) testutil.Reply {
	return testutil.Reply{Text: text, Latency: latency}
}

// TestRunCaseToolCallOK verifies a routed and validated tool call.
func TestRunCaseToolCallOK(t *testing.T) {
	harness, provider := newTestHarness(t,
		reply(`{"choice":"call_tool","tool":"perk_lookup"}`, 40*time.Millisecond),
		reply(`Sure! {"tool":"perk_lookup","args":{"perkName":"Rampage"}}`, 25*time.Millisecond),
	)
	c := bench.Case{Query: "find the perk called Rampage", ExpectedTool: "perk_lookup"}

	result := harness.RunCase(testutil.Context(t, 0), "qwen2.5:7b", c)

	if result.Status != StatusToolCallOK || result.GotTool != "perk_lookup" {
		t.Fatalf("unexpected result %+v", result)
	}
	if !result.StrictHit() || !result.AcceptableHit() || !result.SchemaValid() {
		t.Fatalf("expected strict, acceptable and schema-valid hit: %+v", result)
	}
	if result.RouterMs != 40 || result.ExecMs != 25 {
		t.Fatalf("unexpected latencies router=%d exec=%d", result.RouterMs, result.ExecMs)
	}
	requests := provider.Requests()
	if len(requests) != 2 {
		t.Fatalf("expected two calls, got %d", len(requests))
	}
	if requests[0].Prompt != "ROUTER\n\nUser query: find the perk called Rampage" {
		t.Fatalf("unexpected router prompt %q", requests[0].Prompt)
	}
	if !strings.HasPrefix(requests[1].Prompt, "EXECUTOR\n\nTool: perk_lookup\n\nArgs JSON schema:\n{") {
		t.Fatalf("unexpected executor prompt %q", requests[1].Prompt)
	}
	if requests[0].Model != "qwen2.5:7b" || requests[0].Temperature != 0.1 {
		t.Fatalf("unexpected request %+v", requests[0])
	}
}

// TestRunCaseRouterMalformed verifies malformed router output never counts.
func TestRunCaseRouterMalformed(t *testing.T) {
	harness, provider := newTestHarness(t, reply("not json at all", 10*time.Millisecond))
	c := bench.Case{Query: "q", ExpectedTool: eval.ToolNone}

	result := harness.RunCase(testutil.Context(t, 0), "m", c)

	if result.Status != StatusRouterFail || result.GotTool != eval.ToolNone {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.JSONValid() || result.StrictHit() || result.AcceptableHit() {
		t.Fatalf("router failure must not count: %+v", result)
	}
	if !strings.HasPrefix(result.Reason, "router json parse failed: ") || result.FailureKind != FailureProtocol {
		t.Fatalf("unexpected failure %q (%s)", result.Reason, result.FailureKind)
	}
	if len(provider.Requests()) != 1 {
		t.Fatalf("executor must not run after router failure")
	}
}

// TestRunCaseClarify verifies clarify is acceptable but not strict.
func TestRunCaseClarify(t *testing.T) {
	harness, _ := newTestHarness(t, reply(`{"choice":"clarify","question":"Which item?"}`, 0))
	c := bench.Case{Query: "that thing", ExpectedTool: "item_lookup"}

	result := harness.RunCase(testutil.Context(t, 0), "m", c)

	if result.Status != StatusClarify || result.GotTool != eval.ToolClarify {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.StrictHit() || !result.AcceptableHit() || !result.JSONValid() {
		t.Fatalf("unexpected flags %+v", result)
	}
	if result.ExecMs != 0 {
		t.Fatalf("executor latency must be zero, got %d", result.ExecMs)
	}
}

// TestRunCaseNone verifies a no-tool decision.
func TestRunCaseNone(t *testing.T) {
	harness, _ := newTestHarness(t, reply(`{"choice":"none","tool":null,"question":null}`, 0))
	result := harness.RunCase(testutil.Context(t, 0), "m", bench.Case{Query: "weather", ExpectedTool: eval.ToolNone})
	if result.Status != StatusNone || result.GotTool != eval.ToolNone || !result.StrictHit() {
		t.Fatalf("unexpected result %+v", result)
	}
}

// TestRunCaseExecutorSchemaFailure verifies wrong-typed args keep the attempted tool.
func TestRunCaseExecutorSchemaFailure(t *testing.T) {
	harness, _ := newTestHarness(t,
		reply(`{"choice":"call_tool","tool":"item_lookup"}`, 0),
		reply(`{"tool":"item_lookup","args":{"limit":"five"}}`, 0),
	)
	c := bench.Case{Query: "five swords", ExpectedTool: "item_lookup"}

	result := harness.RunCase(testutil.Context(t, 0), "m", c)

	if result.Status != StatusExecutorFail || result.GotTool != "item_lookup" {
		t.Fatalf("unexpected result %+v", result)
	}
	if !result.JSONValid() || result.SchemaValid() || !result.StrictHit() {
		t.Fatalf("unexpected flags %+v", result)
	}
	if !strings.HasPrefix(result.Reason, "args schema fail: ") {
		t.Fatalf("unexpected reason %q", result.Reason)
	}
}

// TestRunCaseUnknownTool verifies unknown tools fail at the router.
func TestRunCaseUnknownTool(t *testing.T) {
	harness, provider := newTestHarness(t, reply(`{"choice":"call_tool","tool":"weather_lookup"}`, 0))

	result := harness.RunCase(testutil.Context(t, 0), "m", bench.Case{Query: "q", ExpectedTool: eval.ToolNone})

	if result.Status != StatusRouterFail || result.Reason != `router unknown tool "weather_lookup"` {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(provider.Requests()) != 1 {
		t.Fatalf("executor must not run for unknown tools")
	}
}

// TestRunCaseTransportFailures verifies generation errors degrade the case.
func TestRunCaseTransportFailures(t *testing.T) {
	unreachable := &agent.TransportError{Provider: "ollama", Kind: agent.TransportUnreachable, Err: errors.New("connection refused")}
	timedOut := &agent.TransportError{Provider: "ollama", Kind: agent.TransportTimeout, Err: context.DeadlineExceeded}

	harness, _ := newTestHarness(t, testutil.Reply{Err: unreachable})
	result := harness.RunCase(testutil.Context(t, 0), "m", bench.Case{Query: "q", ExpectedTool: eval.ToolNone})
	if result.Status != StatusRouterFail || result.FailureKind != FailureTransport {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Reason != "router generation failed: ollama request failed: connection refused" {
		t.Fatalf("unexpected reason %q", result.Reason)
	}

	harness, _ = newTestHarness(t,
		reply(`{"choice":"call_tool","tool":"item_lookup"}`, 0),
		testutil.Reply{Err: timedOut},
	)
	result = harness.RunCase(testutil.Context(t, 0), "m", bench.Case{Query: "q", ExpectedTool: "item_lookup"})
	if result.Status != StatusExecutorFail || result.FailureKind != FailureTimeout || result.GotTool != "item_lookup" {
		t.Fatalf("unexpected result %+v", result)
	}
	if !strings.HasPrefix(result.Reason, "executor generation failed: ") {
		t.Fatalf("unexpected reason %q", result.Reason)
	}
}

// TestRunCaseIdempotent verifies identical replies give identical results.
func TestRunCaseIdempotent(t *testing.T) {
	replies := []testutil.Reply{
		reply(`{"choice":"call_tool","tool":"item_lookup"}`, 5*time.Millisecond),
		reply(`{"tool":"item_lookup","args":{"query":"sword","limit":2}}`, 7*time.Millisecond),
	}
	c := bench.Case{Query: "two swords", ExpectedTool: "item_lookup"}
	first, _ := newTestHarness(t, replies...)
	second, _ := newTestHarness(t, replies...)

	a := first.RunCase(testutil.Context(t, 0), "m", c)
	b := second.RunCase(testutil.Context(t, 0), "m", c)
	if a != b {
		t.Fatalf("expected identical results\n a: %+v\n b: %+v", a, b)
	}
}

// TestGenerateAppliesCallTimeout verifies each call gets its own deadline.
func TestGenerateAppliesCallTimeout(t *testing.T) {
	harness, _ := newTestHarness(t, testutil.Reply{Hang: true})
	harness.Timeout = 20 * time.Millisecond

	result := harness.RunCase(testutil.Context(t, 0), "m", bench.Case{Query: "q", ExpectedTool: eval.ToolNone})
	if result.Status != StatusRouterFail || result.FailureKind != FailureTimeout {
		t.Fatalf("expected timeout failure, got %+v", result)
	}
}

// TestRunModelEmitsEventsAndSummary verifies ordered observer events.
func TestRunModelEmitsEventsAndSummary(t *testing.T) {
	harness, _ := newTestHarness(t,
		reply(`{"choice":"none"}`, 10*time.Millisecond),
		reply(`{"choice":"clarify","question":"which?"}`, 30*time.Millisecond),
	)
	observer := &recordingObserver{}
	harness.Observer = observer
	cases := []bench.Case{
		{Query: "weather", ExpectedTool: eval.ToolNone},
		{Query: "thing", ExpectedTool: "item_lookup"},
	}

	results, err := harness.RunModel(testutil.Context(t, 0), "run-1", "m", cases)
	if err != nil {
		t.Fatalf("run model: %v", err)
	}
	if results.RunID != "run-1" || results.Model != "m" || results.Provider != "scripted" {
		t.Fatalf("unexpected metadata %+v", results)
	}
	if results.Summary.Total != 2 || results.Summary.AvgRouterMs != 20 || results.Summary.ClarifyRate != 50 {
		t.Fatalf("unexpected summary %+v", results.Summary)
	}
	want := []string{"start:m:2", "started:0", "finished:0:none", "started:1", "finished:1:clarify", "end:m"}
	if strings.Join(observer.events, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected events %v", observer.events)
	}
}

// TestRunModelStopsOnCancel verifies cancellation aborts the run.
func TestRunModelStopsOnCancel(t *testing.T) {
	harness, _ := newTestHarness(t, reply(`{"choice":"none"}`, 0), reply(`{"choice":"none"}`, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := harness.RunModel(ctx, "run-1", "m", []bench.Case{{Query: "q", ExpectedTool: eval.ToolNone}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

type recordingObserver struct {
	events []string
}

func (r *recordingObserver) OnRunStart(_ string, model string, total int) {
	r.events = append(r.events, "start:"+model+":"+strconv.Itoa(total))
}

func (r *recordingObserver) OnCaseEvent(event CaseEvent) {
	entry := string(event.Type) + ":" + strconv.Itoa(event.Index)
	if event.Result != nil {
		entry += ":" + string(event.Result.Status)
	}
	r.events = append(r.events, entry)
}

func (r *recordingObserver) OnRunEnd(results Results) {
	r.events = append(r.events, "end:"+results.Model)
}

// TestRunModelExcludesThrottleFromLatency verifies limiter waits are not
// counted as router latency or charged to the per-call timeout.
func TestRunModelExcludesThrottleFromLatency(t *testing.T) {
	harness, _ := newTestHarness(t, reply(`{"choice":"none"}`, 0), reply(`{"choice":"none"}`, 0))
	harness.Now = nil
	harness.Timeout = 20 * time.Millisecond
	harness.Limiter = agent.NewLimiter(10)
	cases := []bench.Case{
		{Query: "weather?", ExpectedTool: eval.ToolNone},
		{Query: "hello", ExpectedTool: eval.ToolNone},
	}

	started := time.Now()
	results, err := harness.RunModel(testutil.Context(t, 0), "run-1", "m", cases)
	if err != nil {
		t.Fatalf("run model: %v", err)
	}
	if waited := time.Since(started); waited < 80*time.Millisecond {
		t.Fatalf("expected the limiter to space calls, run took %s", waited)
	}
	for i, result := range results.Results {
		if result.Status != StatusNone {
			t.Fatalf("case %d: expected a clean none route, got %+v", i, result)
		}
		if result.RouterMs > 15 {
			t.Fatalf("case %d: throttle wait counted as latency, routerMs=%d", i, result.RouterMs)
		}
	}
}
