// Package main is the entry point for the Diligent expense entry bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/kofiasante/diligent-bot/internal/airtable"
	"gitlab.com/kofiasante/diligent-bot/internal/bot"
	"gitlab.com/kofiasante/diligent-bot/internal/config"
	"gitlab.com/kofiasante/diligent-bot/internal/conversation"
	"gitlab.com/kofiasante/diligent-bot/internal/exchange"
	"gitlab.com/kofiasante/diligent-bot/internal/logger"
	"gitlab.com/kofiasante/diligent-bot/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("diligent-bot %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Setup(cfg.LogLevel, cfg.LogJSON)
	logger.InitHashSalt()

	shutdown, err := telemetry.Init(ctx, cfg.TracingEnabled, cfg.OTLPEndpoint)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to init tracing")
	}
	defer func() { _ = shutdown(context.Background()) }()

	rates := exchange.NewLastKnown(exchange.NewClient(cfg.ExchangeBaseURL, cfg.HTTPTimeout))
	store := airtable.NewClient(
		cfg.AirtableBaseURL,
		cfg.AirtableAPIKey,
		cfg.AirtableTable,
		cfg.AirtableBases,
		cfg.HTTPTimeout,
	)
	engine := conversation.NewEngine(rates, store)

	telegramBot, err := bot.New(cfg, engine)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create bot")
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		cancel()
	}()

	telegramBot.Start(ctx)
}
