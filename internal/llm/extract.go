package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Models rarely return clean JSON even when asked to. The helpers in this file
// salvage the first JSON object or array from a raw completion: fenced code
// blocks are unwrapped, prose around the payload is discarded, and trailing
// commas are repaired before decoding.

var trailingCommaRe = regexp.MustCompile(`,\s*([\]}])`)

// StripFences removes markdown code fences around a payload (e.g. ```json ... ```).
func StripFences(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// DecodeObject extracts the first JSON object from text and unmarshals it into v.
func DecodeObject(text string, v any) error {
	payload, err := ExtractObject(text)
	if err != nil {
		return err
	}
	if uerr := json.Unmarshal([]byte(payload), v); uerr != nil {
		repaired := fixTrailingCommas(payload)
		if json.Unmarshal([]byte(repaired), v) == nil {
			return nil
		}
		return fmt.Errorf("invalid JSON object in response: %w", uerr)
	}
	return nil
}

// DecodeArray extracts the first JSON array from text and unmarshals it into v.
func DecodeArray(text string, v any) error {
	payload, err := ExtractArray(text)
	if err != nil {
		return err
	}
	if uerr := json.Unmarshal([]byte(payload), v); uerr != nil {
		repaired := fixTrailingCommas(payload)
		if json.Unmarshal([]byte(repaired), v) == nil {
			return nil
		}
		return fmt.Errorf("invalid JSON array in response: %w", uerr)
	}
	return nil
}

// ExtractObject returns the first balanced {...} region of text.
func ExtractObject(text string) (string, error) {
	text = StripFences(text)
	if payload := matchDelimited(text, '{', '}'); payload != "" {
		return payload, nil
	}
	return "", fmt.Errorf("no JSON object found in response")
}

// ExtractArray returns the first balanced [...] region of text.
func ExtractArray(text string) (string, error) {
	text = StripFences(text)
	if payload := matchDelimited(text, '[', ']'); payload != "" {
		return payload, nil
	}
	return "", fmt.Errorf("no JSON array found in response")
}

// matchDelimited scans for the first open delimiter and returns the region up to
// its balanced close, respecting string literals and escapes. Empty when unbalanced.
func matchDelimited(text string, open, close byte) string {
	start := strings.IndexByte(text, open)
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// fixTrailingCommas removes commas that directly precede a closing bracket.
func fixTrailingCommas(text string) string {
	return trailingCommaRe.ReplaceAllString(text, "$1")
}
