package types

import (
	"encoding/json"
	"fmt"
)

// --- CHECK COMPOSITION -------------------------------------------------------

// CheckRequest is the body of POST /api/check.
type CheckRequest struct {
	Text string `json:"text"`
}

// CheckResponse is what the model is asked to return. The HTTP endpoint relays the
// model's JSON as-is; this struct is only used where the fields have to be read
// (Telegram replies, CLI output, the submission journal).
type CheckResponse struct {
	CorrectedText  string `json:"corrected_text"`
	ExplanationsMD string `json:"explanations_md"`
}

// ParseCheckResponse reads the known fields out of raw model output. Unknown keys are
// ignored and missing ones stay empty.
func ParseCheckResponse(raw json.RawMessage) (CheckResponse, error) {
	var cr CheckResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return CheckResponse{}, fmt.Errorf("check response: %w", err)
	}
	return cr, nil
}

// ValidateJSON returns the content as a RawMessage if it is a single well-formed JSON value.
func ValidateJSON(content string) (json.RawMessage, error) {
	if content == "" {
		return nil, fmt.Errorf("empty output")
	}
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("bad JSON in model output: %s", truncate(content, 256))
	}
	return json.RawMessage(content), nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
