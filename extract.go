package solin

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Extract recovers the first balanced top-level JSON object from arbitrary
// generated text. The text may carry markdown fences, narration before the
// object and trailing noise after it; everything outside the object is
// discarded silently.
//
// The scan is a plain depth counter over braces, not a regular expression,
// so nested objects delimit correctly. It returns ErrNoObject when there is
// no opening brace or braces never balance, and ErrMalformedObject when the
// balanced span is not valid JSON. Malformed spans are reported, never
// retried: the caller decides what to do with "no object produced".
func Extract(text string) (map[string]any, error) {
	// Models occasionally emit decomposed or width-variant Unicode; fold it
	// to the canonical composed form before scanning.
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, fmt.Errorf("no opening brace in response: %w", ErrNoObject)
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				span := text[start : i+1]
				var obj map[string]any
				if err := json.Unmarshal([]byte(span), &obj); err != nil {
					return nil, fmt.Errorf("candidate span %q: %w", span, ErrMalformedObject)
				}
				return obj, nil
			}
		}
	}
	return nil, fmt.Errorf("unmatched braces in response: %w", ErrNoObject)
}
