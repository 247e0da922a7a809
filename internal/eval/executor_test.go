package eval

import (
	"errors"
	"strings"
	"testing"
)

func defaultRegistry(t *testing.T) *SchemaRegistry {
	t.Helper()
	registry, err := DefaultSchemaRegistry()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	return registry
}

// TestDecodeToolCallSuccess verifies a conforming invocation is accepted.
func TestDecodeToolCallSuccess(t *testing.T) {
	registry := defaultRegistry(t)
	call, err := DecodeToolCall("```json\n{\"tool\":\"perk_lookup\",\"args\":{\"perkName\":\"Rampage\"}}\n```", "perk_lookup", registry)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if call.Tool != "perk_lookup" || call.Args["perkName"].String != "Rampage" {
		t.Fatalf("unexpected call: %+v", call)
	}

	call, err = DecodeToolCall(`{"tool":"item_lookup","args":{"query":"sword","limit":5}}`, "item_lookup", registry)
	if err != nil {
		t.Fatalf("decode with limit: %v", err)
	}
	if call.Args["limit"].Number.String() != "5" {
		t.Fatalf("unexpected limit: %+v", call.Args["limit"])
	}

	if _, err := DecodeToolCall(`{"tool":"item_lookup","args":{"query":"sword","limit":null}}`, "item_lookup", registry); err != nil {
		t.Fatalf("null limit should be accepted: %v", err)
	}
}

// TestDecodeToolCallLadder verifies executor failure reasons in order.
func TestDecodeToolCallLadder(t *testing.T) {
	registry := defaultRegistry(t)
	cases := []struct {
		name   string
		raw    string
		reason string
	}{
		{name: "parse", raw: "I cannot do that", reason: "executor json parse failed: "},
		{name: "not object", raw: `"perk_lookup"`, reason: "executor output not object"},
		{name: "tool missing", raw: `{"args":{"perkName":"Rampage"}}`, reason: "executor tool mismatch (expected perk_lookup)"},
		{name: "tool mismatch", raw: `{"tool":"item_lookup","args":{"query":"x"}}`, reason: "executor tool mismatch (expected perk_lookup)"},
		{name: "args missing", raw: `{"tool":"perk_lookup"}`, reason: "executor missing args object"},
		{name: "args array", raw: `{"tool":"perk_lookup","args":["Rampage"]}`, reason: "executor missing args object"},
		{name: "required", raw: `{"tool":"perk_lookup","args":{}}`, reason: "args schema fail: "},
		{name: "extra field", raw: `{"tool":"perk_lookup","args":{"perkName":"Rampage","rank":2}}`, reason: "args schema fail: "},
		{name: "wrong type", raw: `{"tool":"perk_lookup","args":{"perkName":7}}`, reason: "args schema fail: "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeToolCall(tc.raw, "perk_lookup", registry)
			var protoErr *ProtocolError
			if !errors.As(err, &protoErr) {
				t.Fatalf("expected protocol error, got %v", err)
			}
			if protoErr.Stage != StageExecutor {
				t.Fatalf("stage = %s", protoErr.Stage)
			}
			if !strings.HasPrefix(protoErr.Reason, tc.reason) {
				t.Fatalf("reason = %q, want prefix %q", protoErr.Reason, tc.reason)
			}
		})
	}
}

// TestDecodeToolCallWrongLimitType covers a string where an integer is required.
func TestDecodeToolCallWrongLimitType(t *testing.T) {
	registry := defaultRegistry(t)
	_, err := DecodeToolCall(`{"tool":"item_lookup","args":{"limit":"five"}}`, "item_lookup", registry)
	if err == nil || !strings.HasPrefix(err.Error(), "args schema fail: ") {
		t.Fatalf("expected schema failure, got %v", err)
	}
	_, err = DecodeToolCall(`{"tool":"item_lookup","args":{"query":"x","limit":2.5}}`, "item_lookup", registry)
	if err == nil {
		t.Fatalf("expected fractional limit to fail")
	}
}
