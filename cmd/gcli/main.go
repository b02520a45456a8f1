package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/guesscode/guesscode-cli/internal/client/cli"
	"github.com/guesscode/guesscode-cli/internal/client/config"
	"github.com/guesscode/guesscode-cli/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		log.Error(context.Background(), "failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(context.Background())
}
