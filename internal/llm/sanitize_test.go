package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock_JSONFence(t *testing.T) {
	input := "```json\n{\"key\": \"value\"}\n```"
	result := CleanJSONBlock(input)
	assert.Equal(t, `{"key": "value"}`, result)
}

func TestCleanJSONBlock_GenericFence(t *testing.T) {
	input := "```\n{\"key\": \"value\"}\n```"
	result := CleanJSONBlock(input)
	assert.Equal(t, `{"key": "value"}`, result)
}

func TestCleanJSONBlock_FenceWithLanguageIdentifier(t *testing.T) {
	input := "```javascript\n{\"key\": \"value\"}\n```"
	result := CleanJSONBlock(input)
	assert.Equal(t, `{"key": "value"}`, result)
}

func TestCleanJSONBlock_NoFence(t *testing.T) {
	input := `{"key": "value"}`
	result := CleanJSONBlock(input)
	assert.Equal(t, `{"key": "value"}`, result)
}

func TestCleanJSONBlock_FenceAfterProse(t *testing.T) {
	input := "Here is the result:\n```json\n{\"match_score\": 85}\n```"
	result := CleanJSONBlock(input)
	assert.NotContains(t, result, "```")
	assert.Contains(t, result, `{"match_score": 85}`)
}

func TestCleanJSONBlock_FenceInsideStringValuePreserved(t *testing.T) {
	// Fence markers inside a JSON string must not be stripped; only the
	// prose around the object gets cleaned.
	input := "Here is the result:\n{\"match_reasoning\": \"wrap code in ``` fences\", \"match_score\": 10}\nDone.\n```"
	result := CleanJSONBlock(input)
	assert.Contains(t, result, "wrap code in ``` fences")
	assert.NotContains(t, result, "Done.\n```")
}

func TestSanitize_FenceInsideStringValue(t *testing.T) {
	raw := "Here is the result:\n{\"match_reasoning\": \"wrap code in ``` fences\", \"match_score\": 10}"
	result, err := Sanitize(raw)
	require.NoError(t, err)
	assert.Equal(t, "wrap code in ``` fences", result["match_reasoning"])
	assert.Equal(t, float64(10), result["match_score"])
}

func TestSanitize_DirectParse(t *testing.T) {
	result, err := Sanitize(`{"match_score": 85}`)
	require.NoError(t, err)
	assert.Equal(t, float64(85), result["match_score"])
}

func TestSanitize_FencedWithProse(t *testing.T) {
	// Exact shape models produce: prose preamble plus a fenced object.
	raw := "Here is the result:\n```json\n{\"match_score\": 85}\n```"
	result, err := Sanitize(raw)
	require.NoError(t, err)
	assert.Equal(t, float64(85), result["match_score"])
}

func TestSanitize_ObjectEmbeddedInProse(t *testing.T) {
	raw := `The listing looks like this: {"job_title": "Software Engineer", "company": "Acme"} - hope that helps!`
	result, err := Sanitize(raw)
	require.NoError(t, err)
	assert.Equal(t, "Software Engineer", result["job_title"])
	assert.Equal(t, "Acme", result["company"])
}

func TestSanitize_ControlCharactersStripped(t *testing.T) {
	raw := "{\"job_title\": \"Engineer\x00\x1f\", \"company\": \"Acme\"}"
	result, err := Sanitize(raw)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", result["job_title"])
}

func TestSanitize_NoBraces(t *testing.T) {
	result, err := Sanitize("I could not find any job listings in the provided content.")
	require.Error(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)

	var sanErr *SanitizeError
	assert.ErrorAs(t, err, &sanErr)
	assert.Contains(t, sanErr.Raw, "could not find")
}

func TestSanitize_EmptyInput(t *testing.T) {
	result, err := Sanitize("")
	require.Error(t, err)
	assert.Empty(t, result)
}

func TestSanitize_UnbalancedBraces(t *testing.T) {
	// Last '}' before first '{' means no valid span.
	result, err := Sanitize("} nothing here {")
	require.Error(t, err)
	assert.Empty(t, result)
}

func TestSanitize_Irreparable(t *testing.T) {
	_, err := Sanitize(`{"job_title": engineer,,}`)
	require.Error(t, err)

	var sanErr *SanitizeError
	require.ErrorAs(t, err, &sanErr)
	assert.Error(t, sanErr.Cause)
}

func TestSanitizeInto_Struct(t *testing.T) {
	var out struct {
		MatchScore int `json:"match_score"`
	}
	err := SanitizeInto("```json\n{\"match_score\": 42}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, 42, out.MatchScore)
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`, true},
		{"surrounded by prose", `before {"a": 1} after`, `{"a": 1}`, true},
		{"nested object", `x {"a": {"b": 2}} y`, `{"a": {"b": 2}}`, true},
		{"no open brace", `"a": 1}`, "", false},
		{"no close brace", `{"a": 1`, "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
