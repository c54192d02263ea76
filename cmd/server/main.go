package main

import (
	"context"
	"log"
	"os"

	"github.com/zerotask/zerotask/internal/buildinfo"
	"github.com/zerotask/zerotask/internal/server"
	"github.com/zerotask/zerotask/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
