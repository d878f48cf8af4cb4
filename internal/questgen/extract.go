package questgen

import (
	"errors"
	"strings"
)

const (
	jsonStart = "[[JSON_START]]"
	jsonEnd   = "[[JSON_END]]"
)

var ErrNoJSON = errors.New("no JSON object in response")

// ExtractJSON finds the JSON payload in a model response. It tries, in order,
// the [[JSON_START]]/[[JSON_END]] markers, a fenced code block, and the first
// balanced {...} or [...] value.
func ExtractJSON(s string) (string, error) {
	if i := strings.Index(s, jsonStart); i >= 0 {
		rest := s[i+len(jsonStart):]
		if j := strings.Index(rest, jsonEnd); j >= 0 {
			return strings.TrimSpace(rest[:j]), nil
		}
	}

	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if j := strings.Index(rest, "```"); j >= 0 {
			if body := strings.TrimSpace(rest[:j]); body != "" {
				return body, nil
			}
		}
	}

	if v, ok := firstBalanced(s); ok {
		return v, nil
	}
	return "", ErrNoJSON
}

// firstBalanced returns the first {...} or [...] span whose brackets balance,
// ignoring brackets inside strings.
func firstBalanced(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	for start >= 0 {
		if end, ok := matchClose(s, start); ok {
			return s[start : end+1], true
		}
		next := strings.IndexAny(s[start+1:], "{[")
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func matchClose(s string, start int) (int, bool) {
	var stack []byte
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
