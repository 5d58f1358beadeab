package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"Formulary/internal/calc"
	"Formulary/internal/config"
	"Formulary/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()
	if cfg.Bot.Token == "" {
		log.Fatal("TOKEN_BOT missing")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bot := NewBot(cfg.Bot.API, cfg.Bot.Token, calc.Default, log)
	log.Info("bot polling started")
	if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("bot stopped", zap.Error(err))
	}
	log.Info("bot stopped")
}
