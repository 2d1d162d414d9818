package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCheckPrompt(t *testing.T) {
	p := BuildCheckPrompt("Ayer fui a la playa.")

	assert.True(t, strings.HasSuffix(p, "Student text:\nAyer fui a la playa.\n"))
	assert.Contains(t, p, "SPAN 1200")
	assert.Contains(t, p, `"corrected_text", "explanations_md"`)
	assert.NotContains(t, p, "{text}")
}

func TestBuildCheckPrompt_TextWithPlaceholder(t *testing.T) {
	p := BuildCheckPrompt("literal {text} here")
	assert.Contains(t, p, "literal {text} here")
}

func TestParseCheckResponse(t *testing.T) {
	cr, err := ParseCheckResponse(json.RawMessage(`{"corrected_text":"Fui.","explanations_md":"- *fui*","extra":1}`))
	require.NoError(t, err)
	assert.Equal(t, "Fui.", cr.CorrectedText)
	assert.Equal(t, "- *fui*", cr.ExplanationsMD)

	cr, err = ParseCheckResponse(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Empty(t, cr.CorrectedText)

	_, err = ParseCheckResponse(json.RawMessage(`[1,2]`))
	assert.Error(t, err)
}

func TestValidateJSON(t *testing.T) {
	raw, err := ValidateJSON(`{"corrected_text":"x"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"corrected_text":"x"}`, string(raw))

	_, err = ValidateJSON("")
	assert.Error(t, err)

	_, err = ValidateJSON("Here is your correction: ...")
	assert.ErrorContains(t, err, "bad JSON")
}
