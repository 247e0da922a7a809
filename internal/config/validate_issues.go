package config

import (
	"fmt"
	"strings"
)

// Issue is one problem with a config field. Field uses the YAML key path,
// for example "backend.provider" or "tools[1].schema".
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// ValidationError carries every issue found in one pass over a config.
type ValidationError struct {
	Issues []Issue
}

// Error renders one "field: message" line per issue.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, len(err.Issues))
	for i, issue := range err.Issues {
		lines[i] = issue.String()
	}
	return strings.Join(lines, "\n")
}

// HasField reports whether any issue concerns field or one of its children.
func (err *ValidationError) HasField(field string) bool {
	if err == nil {
		return false
	}
	for _, issue := range err.Issues {
		if issue.Field == field || strings.HasPrefix(issue.Field, field+".") || strings.HasPrefix(issue.Field, field+"[") {
			return true
		}
	}
	return false
}

type issueAdder func(field, message string)

// within prefixes every field reported through add, as in "tools[2]".
func within(add issueAdder, format string, args ...any) issueAdder {
	prefix := fmt.Sprintf(format, args...)
	return func(field, message string) {
		add(prefix+"."+field, message)
	}
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
