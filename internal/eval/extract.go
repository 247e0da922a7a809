package eval

import "strings"

// ExtractFirstObject returns the first top-level balanced {...} span in text.
// Braces inside string literals are counted like any other brace; the span is
// not checked for validity here.
func ExtractFirstObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			return text[start : i+1], true
		}
	}
	return "", false
}

// ParseCompletion parses the first embedded object of a model completion,
// falling back to the trimmed whole text when no balanced object exists.
func ParseCompletion(text string) (JSONValue, error) {
	candidate, ok := ExtractFirstObject(text)
	if !ok {
		candidate = strings.TrimSpace(text)
	}
	return ParseJSON([]byte(candidate))
}
