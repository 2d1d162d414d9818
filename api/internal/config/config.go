package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port      string
	StaticDir string

	Provider      string
	LLMTimeout    time.Duration
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	OllamaHost    string
	OllamaModel   string

	DatabaseURL string

	TelegramBotToken string
	WebhookURL       string

	LogLevel  string
	LogFormat string
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("STATIC_DIR", "static")
	v.SetDefault("LLM_PROVIDER", "gpt")
	v.SetDefault("LLM_TIMEOUT", "10m")
	v.SetDefault("MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	v.SetDefault("OLLAMA_MODEL", "llama3.1:8b")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load reads envFile (if it exists) into the process environment and then resolves
// every setting from the environment, falling back to defaults. Variables that are
// already set are not overridden by the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	timeout := v.GetDuration("LLM_TIMEOUT")
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	return &Config{
		Port:      strings.TrimSpace(v.GetString("PORT")),
		StaticDir: v.GetString("STATIC_DIR"),

		Provider:      strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
		LLMTimeout:    timeout,
		OpenAIAPIKey:  v.GetString("OPENAI_API_KEY"),
		OpenAIModel:   v.GetString("MODEL"),
		OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
		GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		OllamaHost:    v.GetString("OLLAMA_HOST"),
		OllamaModel:   v.GetString("OLLAMA_MODEL"),

		DatabaseURL: strings.TrimSpace(v.GetString("DATABASE_URL")),

		TelegramBotToken: strings.TrimSpace(v.GetString("TELEGRAM_BOT_TOKEN")),
		WebhookURL:       strings.TrimSpace(v.GetString("TELEGRAM_WEBHOOK_URL")),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
	}, nil
}

// Model returns the model name of the configured provider.
func (c *Config) Model() string {
	switch c.Provider {
	case "gemini":
		return c.GeminiModel
	case "ollama":
		return c.OllamaModel
	default:
		return c.OpenAIModel
	}
}
