package llm

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// Strategy names the way a JSON object was pulled out of a response.
type Strategy string

const (
	StrategyDirect Strategy = "direct"
	StrategyFenced Strategy = "fenced"
	StrategyBraces Strategy = "braces"
)

// Extraction is the JSON object found in a response and how it was found.
type Extraction struct {
	Strategy Strategy
	JSON     json.RawMessage
}

type extractor struct {
	strategy Strategy
	find     func(text string) (string, bool)
}

var extractors = []extractor{
	{StrategyDirect, func(text string) (string, bool) { return text, true }},
	{StrategyFenced, fencedBlock},
	{StrategyBraces, balancedObject},
}

// ExtractJSON tries each strategy in order and returns the first candidate
// that decodes as a JSON object. It returns ErrNoJSON when no strategy finds
// a candidate and *ErrParse when candidates exist but none decode.
func ExtractJSON(text string) (Extraction, error) {
	text = strings.TrimSpace(text)

	var lastErr *ErrParse
	found := false
	for _, ex := range extractors {
		candidate, ok := ex.find(text)
		if !ok {
			continue
		}
		candidate = strings.TrimSpace(candidate)
		if !strings.HasPrefix(candidate, "{") {
			// Direct parse of prose is not a JSON-looking candidate.
			continue
		}
		found = true

		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
			lastErr = &ErrParse{Strategy: ex.strategy, Err: err}
			continue
		}
		return Extraction{Strategy: ex.strategy, JSON: json.RawMessage(candidate)}, nil
	}

	if !found {
		return Extraction{}, ErrNoJSON
	}
	return Extraction{}, lastErr
}

var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?[ \\t]*\\r?\\n(.*?)\\r?\\n?```")

func fencedBlock(text string) (string, bool) {
	m := fencePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// balancedObject returns the first {...} substring whose braces balance,
// ignoring braces inside JSON strings.
func balancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
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
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	// Unbalanced: hand the tail to the parser so the failure is reported
	// as a parse error rather than a missing object.
	return text[start:], true
}

// RequiredFields reports which of the given top-level keys are absent from obj.
func RequiredFields(obj json.RawMessage, keys ...string) []string {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(obj, &m); err != nil {
		return keys
	}
	var missing []string
	for _, k := range keys {
		v, ok := m[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			missing = append(missing, k)
		}
	}
	return missing
}
