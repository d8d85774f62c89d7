package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/bootstrap"
	jbapp "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/app"
	jbconfig "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/config"
)

func main() {
	logger := bootstrap.NewLogger()
	slog.SetDefault(logger)

	finalLogger, err := bootstrap.RunBotEntrypoint(
		context.Background(),
		logger,
		jbconfig.LogFileName,
		jbconfig.LoadFromEnv,
		func(cfg *jbconfig.Config) jbconfig.LogConfig { return cfg.Log },
		jbapp.Initialize,
	)
	if err != nil {
		logger = finalLogger
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}
