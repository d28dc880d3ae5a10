// Package llm - sanitize.go repairs near-valid JSON emitted by models.
package llm

import (
	"encoding/json"
	"strings"
)

// SanitizeError reports that a response could not be coerced into JSON.
// It carries the raw response so callers can log it for diagnostics.
type SanitizeError struct {
	Raw   string
	Cause error
}

func (e *SanitizeError) Error() string {
	if e.Cause != nil {
		return "could not sanitize model response into JSON: " + e.Cause.Error()
	}
	return "could not sanitize model response into JSON"
}

func (e *SanitizeError) Unwrap() error {
	return e.Cause
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Fences may also appear mid-prose ("Here is the result:\n```json\n{...}").
	// Only the text outside the outermost {...} span is cleaned, so fence
	// markers inside JSON string values survive.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		text = stripFences(text)
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(stripFences(text[:start]) + text[start:end+1] + stripFences(text[end+1:]))
}

func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	return strings.ReplaceAll(text, "```", "")
}

// ExtractJSONObject slices the outermost {...} span from text and strips
// ASCII control characters (0x00-0x1F, 0x7F-0x9F) from it. Returns ok=false
// when the text contains no such span.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	span := text[start : end+1]

	var sb strings.Builder
	sb.Grow(len(span))
	for _, r := range span {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String(), true
}

// SanitizeInto coerces a raw model response into JSON and unmarshals it into
// v. The repair path is: strip code fences, attempt a direct parse, then
// slice the outermost object span with control characters removed and parse
// again. Best effort only; a *SanitizeError is returned when both attempts
// fail or the text contains no object at all. Never panics.
func SanitizeInto(raw string, v any) error {
	text := CleanJSONBlock(raw)

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	span, ok := ExtractJSONObject(text)
	if !ok {
		return &SanitizeError{Raw: raw}
	}

	if err := json.Unmarshal([]byte(span), v); err != nil {
		return &SanitizeError{Raw: raw, Cause: err}
	}
	return nil
}

// Sanitize is SanitizeInto for callers that want a generic mapping. On
// failure it returns an empty non-nil map alongside the error, so results
// are safe to use either way.
func Sanitize(raw string) (map[string]any, error) {
	out := map[string]any{}
	if err := SanitizeInto(raw, &out); err != nil {
		return map[string]any{}, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
