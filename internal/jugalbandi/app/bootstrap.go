//go:build !wireinject

package app

import (
	"context"
	"log/slog"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/bootstrap"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/config"
)

// Initialize: Jugalbandi 봇 의존성을 초기화하고 ServerApp을 반환합니다.
func Initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*bootstrap.ServerApp, func(), error) {
	tracing, cleanupTelemetry, err := newTelemetryProvider(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	msgProvider, err := newMessageProvider()
	if err != nil {
		cleanupTelemetry()
		return nil, nil, err
	}

	recorder := newRecorder()

	client, err := newTelegramClient(cfg)
	if err != nil {
		cleanupTelemetry()
		return nil, nil, err
	}

	qa, err := newDispatcher(cfg, recorder, logger)
	if err != nil {
		cleanupTelemetry()
		return nil, nil, err
	}

	store, cleanupStore, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		cleanupTelemetry()
		return nil, nil, err
	}

	handler := newHandler(cfg, client, qa, store, msgProvider, recorder, logger)
	queue := newChatQueue(cfg, handler, logger)

	router := newRouter(cfg, recorder, store, queue, tracing, logger)
	httpServer := newHTTPServer(cfg, router)

	serverApp := newServerApp(cfg, logger, httpServer, client, handler, queue)

	cleanup := func() {
		cleanupStore()
		cleanupTelemetry()
	}

	return serverApp, cleanup, nil
}
