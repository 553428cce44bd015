// File: cmd/bot/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-birthday-app/internal/config"
	"telegram-birthday-app/internal/infra/backend"
	"telegram-birthday-app/internal/infra/logging"
	"telegram-birthday-app/internal/infra/metrics"
	"telegram-birthday-app/internal/infra/telegram"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Backend client ----
	client := backend.New(cfg.MiniApp.PublicURL, &http.Client{Timeout: 10 * time.Second}, logger)

	// ---- Telegram ----
	bot, err := telegram.NewBot(cfg.Bot, cfg.MiniApp, client, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram bot")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.StartPolling(ctx)
	}()

	// ---- Shutdown ----
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		bot.StopPolling()
		cancel()
		if err := <-errCh; err != nil {
			logger.Error().Err(err).Msg("polling failed")
		}
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("polling failed")
		}
	}
	logger.Info().Msg("bot stopped")
}
