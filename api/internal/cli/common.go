package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"span-checker/api/internal/checker"
	"span-checker/api/internal/config"
	"span-checker/api/internal/detector"
	"span-checker/api/internal/llm"
	"span-checker/api/internal/llm/gemini"
	"span-checker/api/internal/llm/gpt"
	"span-checker/api/internal/llm/ollama"
	"span-checker/api/internal/logging"
	"span-checker/api/internal/store"
)

func loadConfig(opts *rootOptions, logOutput string) (*config.Config, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat, logOutput)
	return cfg, nil
}

func buildEngines(cfg *config.Config) *llm.Engines {
	engines := &llm.Engines{
		OpenAI: gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.LLMTimeout),
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout),
	}
	if eng, err := ollama.New(cfg.OllamaHost, cfg.OllamaModel, cfg.LLMTimeout); err != nil {
		logrus.WithError(err).Warn("ollama engine disabled")
	} else {
		engines.Ollama = eng
	}
	return engines
}

// openJournal returns nil when no DATABASE_URL is configured.
func openJournal(ctx context.Context, cfg *config.Config) (*store.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	logrus.Infof("journal connected: %s", store.Summary(cfg.DatabaseURL))
	return db, nil
}

func requireJournal(ctx context.Context, cfg *config.Config) (*store.DB, error) {
	db, err := openJournal(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return db, nil
}

// buildService wires the selected engine with the optional journal. The returned
// DB may be nil and must be closed by the caller otherwise.
func buildService(ctx context.Context, cfg *config.Config) (*checker.Service, *store.DB, error) {
	eng, err := buildEngines(cfg).GetEngine(cfg.Provider)
	if err != nil {
		return nil, nil, err
	}
	db, err := openJournal(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := checker.New(eng, nil, detector.New())
	if db != nil {
		svc.Recorder = store.NewSubmissionRepo(db)
	}
	logrus.WithFields(logrus.Fields{
		"engine": eng.Name(),
		"model":  eng.GetModel(),
	}).Info("checker ready")
	return svc, db, nil
}
