package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/zerotask/zerotask/internal/buildinfo"
	"github.com/zerotask/zerotask/internal/client/cli"
	"github.com/zerotask/zerotask/internal/client/config"
	"github.com/zerotask/zerotask/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
