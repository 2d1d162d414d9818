package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"span-checker/api/internal/llm/types"
)

type Engine interface {
	Name() string
	GetModel() string
	// Check sends the correction prompt and returns the model's JSON object untouched.
	Check(ctx context.Context, in types.CheckRequest) (json.RawMessage, error)
}

type Engines struct {
	OpenAI Engine
	Gemini Engine
	Ollama Engine
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	var eng Engine
	switch strings.ToLower(strings.TrimSpace(llmName)) {
	case "", "gpt", "openai":
		eng = e.OpenAI
	case "gemini":
		eng = e.Gemini
	case "ollama":
		eng = e.Ollama
	default:
		return nil, fmt.Errorf("unknown llm provider %q; use gpt | gemini | ollama", llmName)
	}
	if eng == nil {
		return nil, fmt.Errorf("llm provider %q is not configured", llmName)
	}
	return eng, nil
}
