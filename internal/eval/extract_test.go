package eval

import "testing"

// TestExtractFirstObject verifies span recovery from surrounding text.
func TestExtractFirstObject(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "bare", input: `{"a":1}`, want: `{"a":1}`, wantOK: true},
		{name: "prose", input: "Sure! Here you go: {\"choice\":\"none\"} hope it helps", want: `{"choice":"none"}`, wantOK: true},
		{name: "fenced", input: "```json\n{\"a\":{\"b\":2}}\n```", want: `{"a":{"b":2}}`, wantOK: true},
		{name: "first of two", input: `{"a":1} {"b":2}`, want: `{"a":1}`, wantOK: true},
		{name: "no brace", input: "not json at all", wantOK: false},
		{name: "unbalanced", input: `{"a":{"b":1}`, wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractFirstObject(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if got != tc.want {
				t.Fatalf("span = %q, want %q", got, tc.want)
			}
		})
	}
}

// TestParseCompletionFallsBackToWholeText verifies the trimmed-text fallback.
func TestParseCompletionFallsBackToWholeText(t *testing.T) {
	value, err := ParseCompletion("  [1, 2]  ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value.Kind != JSONArray || len(value.Array) != 2 {
		t.Fatalf("unexpected value: %+v", value)
	}

	if _, err := ParseCompletion(`{"a":{"b":1}`); err == nil {
		t.Fatalf("expected parse error for unbalanced object")
	}
}

// TestParseCompletionRejectsBrokenSpan verifies the extracted span is still parsed strictly.
func TestParseCompletionRejectsBrokenSpan(t *testing.T) {
	if _, err := ParseCompletion(`prefix {"a": } suffix`); err == nil {
		t.Fatalf("expected parse error")
	}
}

// TestParseJSONRejectsTrailingData verifies a single top-level value is required.
func TestParseJSONRejectsTrailingData(t *testing.T) {
	if _, err := ParseJSON([]byte(`{} {}`)); err == nil {
		t.Fatalf("expected trailing data error")
	}
	if _, err := ParseJSON([]byte(``)); err == nil {
		t.Fatalf("expected error for empty input")
	}
	value, err := ParseJSON([]byte(`{"n": 5, "s": "x", "b": true, "z": null, "a": [1]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value.Object["n"].Number.String() != "5" || value.Object["s"].String != "x" {
		t.Fatalf("unexpected object: %+v", value.Object)
	}
	if !value.Object["b"].Bool || value.Object["z"].Kind != JSONNull || len(value.Object["a"].Array) != 1 {
		t.Fatalf("unexpected object: %+v", value.Object)
	}
}
