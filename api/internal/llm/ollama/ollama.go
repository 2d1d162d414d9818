package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JexSrs/go-ollama"

	"span-checker/api/internal/llm/types"
	"span-checker/api/internal/util"
)

const (
	DefaultHost  = "http://localhost:11434"
	DefaultModel = "llama3.1:8b"
)

// Engine talks to a self-hosted Ollama server. The go-ollama client builds its
// requests without a context, so Check stops waiting when ctx is done and the
// HTTP client timeout bounds the abandoned call.
type Engine struct {
	Host   string
	Model  string
	client *ollama.Ollama
}

func New(host, model string, timeout time.Duration) (*Engine, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultHost
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	client := ollama.New(*u)
	client.Http = &http.Client{Timeout: timeout}
	return &Engine{
		Host:   host,
		Model:  model,
		client: client,
	}, nil
}

func (e *Engine) Name() string     { return "ollama" }
func (e *Engine) GetModel() string { return e.Model }

type generateResult struct {
	res *ollama.GenerateResponse
	err error
}

func (e *Engine) Check(ctx context.Context, in types.CheckRequest) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan generateResult, 1)
	go func() {
		res, err := e.client.Generate(
			e.client.Generate.WithModel(e.Model),
			e.client.Generate.WithSystem(types.SystemInstruction),
			e.client.Generate.WithPrompt(types.BuildCheckPrompt(in.Text)),
			e.client.Generate.WithTemperature(types.Temperature),
			e.client.Generate.WithFormat("json"),
		)
		done <- generateResult{res: res, err: err}
	}()

	var out generateResult
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("ollama check: %w", ctx.Err())
	case out = <-done:
	}
	if out.err != nil {
		return nil, fmt.Errorf("ollama check: %w", out.err)
	}
	if out.res == nil || !out.res.Done {
		return nil, fmt.Errorf("ollama check: generation did not finish")
	}

	rm, err := types.ValidateJSON(util.StripCodeFences(out.res.Response))
	if err != nil {
		return nil, fmt.Errorf("ollama check: %w", err)
	}
	return rm, nil
}
