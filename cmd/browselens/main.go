package main

import (
	"context"
	"os"

	"BrowseLens/internal/app"
	"BrowseLens/internal/cli"
	"BrowseLens/internal/config"
	"BrowseLens/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	factory := func() (*app.Application, error) {
		return app.New(cfg, logger)
	}

	root := cli.NewRootCmd(factory)
	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
