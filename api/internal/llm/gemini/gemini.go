package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"span-checker/api/internal/llm/types"
	"span-checker/api/internal/util"
)

const DefaultModel = "gemini-2.5-flash"

type Engine struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

func New(apiKey, model string, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Engine{
		APIKey:  strings.TrimSpace(apiKey),
		Model:   strings.TrimSpace(model),
		Timeout: timeout,
	}
}

func (e *Engine) Name() string { return "gemini" }

func (e *Engine) GetModel() string {
	if e.Model == "" {
		return DefaultModel
	}
	return e.Model
}

func (e *Engine) Check(ctx context.Context, in types.CheckRequest) (json.RawMessage, error) {
	if e.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	// the genai client carries its own transport; the deadline bounds the whole call
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return nil, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.GetModel())
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(types.Temperature),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(types.SystemInstruction)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(types.BuildCheckPrompt(in.Text)))
	if err != nil {
		return nil, fmt.Errorf("gemini check: %w", err)
	}

	out := util.StripCodeFences(extractText(resp))
	rm, err := types.ValidateJSON(out)
	if err != nil {
		return nil, fmt.Errorf("gemini check: %w", err)
	}
	return rm, nil
}

// extractText joins the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

func ptrFloat32(v float32) *float32 { return &v }
