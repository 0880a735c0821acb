package main

import (
	"github.com/thclabs/growroom/internal/config"
	"github.com/thclabs/growroom/internal/logger"
)

// initLogger builds the logger from application config. Source file/line
// annotations are only paid for in dev.
func initLogger(cfg *config.Config) {
	logger.InitLogger(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: logger.DefaultServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
		AddSource:   cfg.Environment == "dev" || cfg.Environment == "development",
	})
}
