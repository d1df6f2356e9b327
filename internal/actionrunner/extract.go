package actionrunner

import "encoding/json"

// ExtractJSONObject scans stdout for the first top-level {...} object and
// decodes it. Actions are free to log arbitrary text before or after the
// JSON they emit, so this looks for a balanced, string-and-escape-aware
// brace span rather than requiring the whole stream to be JSON.
func ExtractJSONObject(stdout []byte) (json.RawMessage, bool) {
	start := -1
	for i, b := range stdout {
		if b == '{' {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, false
	}

	end := findBalancedEnd(stdout, start)
	if end == -1 {
		return nil, false
	}

	candidate := stdout[start : end+1]
	var probe interface{}
	if err := json.Unmarshal(candidate, &probe); err != nil {
		return nil, false
	}
	if _, ok := probe.(map[string]interface{}); !ok {
		return nil, false
	}
	return json.RawMessage(candidate), true
}

// findBalancedEnd returns the index of the closing brace matching the
// opening brace at start, or -1 if the braces never balance. Braces
// inside string literals are ignored, and escaped quotes within those
// strings don't end them early.
func findBalancedEnd(data []byte, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(data); i++ {
		b := data[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
