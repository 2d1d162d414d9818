package cli

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"span-checker/api/internal/checker"
	"span-checker/api/internal/config"
	"span-checker/api/internal/handle"
	"span-checker/api/internal/httpserver"
	"span-checker/api/internal/telegram"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web page and the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, "stdout")
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	svc, db, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	router := httpserver.NewRouter(handle.New(svc, cfg.StaticDir))
	if cfg.TelegramBotToken != "" {
		if err := startTelegram(ctx, cfg, svc, router); err != nil {
			return fmt.Errorf("failed to start telegram bot: %w", err)
		}
	}

	return httpserver.New("0.0.0.0:"+cfg.Port, router).Run(ctx)
}

// startTelegram registers a webhook route on router when TELEGRAM_WEBHOOK_URL is
// set and falls back to long polling otherwise.
func startTelegram(ctx context.Context, cfg *config.Config, svc *checker.Service, router *mux.Router) error {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return err
	}
	bot.Debug = false
	r := &telegram.Router{Bot: bot, Svc: svc}

	if cfg.WebhookURL != "" {
		path, err := telegram.RegisterWebhook(bot, cfg.WebhookURL)
		if err != nil {
			return err
		}
		router.Handle(path, telegram.WebhookHandler(ctx, bot, r)).Methods(http.MethodPost)
		logrus.WithField("bot", bot.Self.UserName).Info("telegram webhook registered")
		return nil
	}

	logrus.WithField("bot", bot.Self.UserName).Info("telegram polling started")
	go telegram.RunPolling(ctx, bot, r)
	return nil
}
