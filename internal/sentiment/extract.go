package sentiment

import "fmt"

// extractJSONObject returns the first top-level balanced {...} substring of
// text. Free-text LLM responses frequently wrap the requested JSON in prose,
// so a strict parse of the full response is attempted first and this scan is
// the fallback. Braces inside JSON string literals are skipped.
func extractJSONObject(text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return text[start : i+1], nil
				}
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	return "", fmt.Errorf("no balanced JSON object found")
}
