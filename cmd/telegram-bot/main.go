package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/codex-k8s/telegram-bot/internal/bot"
	"github.com/codex-k8s/telegram-bot/internal/config"
	httpapi "github.com/codex-k8s/telegram-bot/internal/http"
	"github.com/codex-k8s/telegram-bot/internal/i18n"
	"github.com/codex-k8s/telegram-bot/internal/log"
	"github.com/codex-k8s/telegram-bot/telegram"
	"github.com/codex-k8s/telegram-bot/telegram/connector"
	"github.com/codex-k8s/telegram-bot/telegram/types"
	"github.com/codex-k8s/telegram-bot/telegram/updates"
)

const webhookPath = "/telegram/webhook"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel, cfg.LogFormat).With("service", cfg.ServiceName)
	bundle, err := i18n.Load(cfg.Lang)
	if err != nil {
		logger.Error("failed to load i18n", "error", err)
		os.Exit(1)
	}
	messages, err := i18n.LoadAll()
	if err != nil {
		logger.Error("failed to load i18n", "error", err)
		os.Exit(1)
	}

	client, err := telegram.New(cfg.Token,
		telegram.WithBaseURL(cfg.APIURL),
		telegram.WithConnector(newConnector(cfg.Connector)),
		telegram.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to init telegram client", "error", err)
		os.Exit(1)
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	me, err := client.GetMe(baseCtx)
	if err != nil {
		logger.Error("failed to authorize bot", "error", err)
		os.Exit(1)
	}
	logger.Info("Telegram bot authorized", "username", me.Username, "id", int64(me.ID))

	source := newSource(cfg, client, logger)
	handler := bot.NewHandler(client, messages, bundle.Lang, types.ChatID(cfg.ChatID), logger)

	server := httpapi.New(cfg.HTTPAddr(), logger)
	if webhook := source.Handler(); webhook != nil {
		server.Handle(webhookPath, webhook)
	}

	if err := source.Start(baseCtx); err != nil {
		logger.Error("failed to start telegram updates", "error", err)
		os.Exit(1)
	}
	go handler.Run(baseCtx, source.Updates())
	server.SetReady(true)

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown requested", "signal", sig.String())
	case err := <-errCh:
		logger.Error("http server stopped", "error", err)
	}

	server.SetReady(false)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
	if err := source.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop telegram updates", "error", err)
	}
	cancel()
}

func newConnector(name string) connector.Connector {
	if name == config.ConnectorFastHTTP {
		return connector.NewFastHTTP(nil)
	}
	return connector.NewHTTP(nil)
}

func newSource(cfg config.Config, client *telegram.Bot, logger *slog.Logger) updates.Source {
	if cfg.WebhookEnabled() {
		return updates.NewWebhook(client, cfg.WebhookURL, cfg.WebhookSecret, cfg.UpdateTypes(), logger)
	}
	stream := updates.NewStream(client,
		updates.WithTimeout(cfg.PollTimeout),
		updates.WithErrorDelay(cfg.ErrorDelay),
		updates.WithLimit(cfg.PollLimit),
		updates.WithAllowedUpdates(cfg.UpdateTypes()...),
		updates.WithLogger(logger),
	)
	return updates.NewLongPolling(stream, logger)
}
