package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/istatata/bayan/internal/cli"
	"github.com/istatata/bayan/internal/config"
	"github.com/istatata/bayan/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.NewTextHandler(os.Stderr, nil))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
