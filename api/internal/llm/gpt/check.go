package gpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"span-checker/api/internal/llm/types"
	"span-checker/api/internal/util"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat map[string]any `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (e *Engine) Check(ctx context.Context, in types.CheckRequest) (json.RawMessage, error) {
	if e.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is empty")
	}

	body := chatRequest{
		Model: e.GetModel(),
		Messages: []chatMessage{
			{Role: "user", Content: types.BuildCheckPrompt(in.Text)},
		},
		Temperature:    types.Temperature,
		ResponseFormat: map[string]any{"type": "json_object"},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("openai check: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai check: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai check: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai check %d: %s", resp.StatusCode, strings.TrimSpace(util.TruncateBytes(raw, 2048)))
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, fmt.Errorf("openai check: decode envelope: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("openai check: empty response; body=%s", util.TruncateBytes(raw, 1024))
	}

	out := util.StripCodeFences(cr.Choices[0].Message.Content)
	rm, err := types.ValidateJSON(out)
	if err != nil {
		return nil, fmt.Errorf("openai check: %w", err)
	}
	return rm, nil
}
