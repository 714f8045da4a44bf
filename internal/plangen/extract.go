package plangen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON locates a JSON object inside LLM output, tolerating a
// markdown code fence around it and prose before the first brace.
// Returns the raw object or an error when no balanced object is found.
func ExtractJSON(s string) (json.RawMessage, error) {
	s = strings.TrimSpace(s)

	// Unwrap a fenced code block first: ```json ... ``` or plain ```.
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			s = strings.TrimSpace(rest[:end])
		}
	}

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return nil, fmt.Errorf("no JSON object in response")
	}

	// Walk to the matching closing brace, skipping string contents.
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return json.RawMessage(s[start : i+1]), nil
			}
		}
	}

	return nil, fmt.Errorf("unbalanced JSON object in response")
}
