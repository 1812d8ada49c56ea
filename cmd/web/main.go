package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/Mees070/woningprijs-calculater/internal/app"
	"github.com/Mees070/woningprijs-calculater/internal/config"
	"github.com/Mees070/woningprijs-calculater/internal/infrastructure"
)

func main() {
	configFile := flag.String("config", "", "path to config file (default: config.yaml if present)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configFile != "" {
		cfg, err = config.LoadFrom(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		logger.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
