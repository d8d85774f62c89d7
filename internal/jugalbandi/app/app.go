// Package app: Jugalbandi 봇 의존성 조립.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/bootstrap"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/health"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/httpclient"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/httpserver"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/messageprovider"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/telemetry"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/assets"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/bot"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/config"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/dispatcher"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/httpapi"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/messages"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/metrics"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/session"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/telegram"
)

// Version: 빌드 시 -ldflags로 주입된다.
var Version = "dev"

// telemetryShutdownTimeout: 종료 시 남은 span flush 대기 상한
const telemetryShutdownTimeout = 5 * time.Second

func newTelemetryProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*telemetry.Provider, func(), error) {
	provider, err := telemetry.NewProvider(ctx, cfg.Telemetry)
	if err != nil {
		return nil, nil, fmt.Errorf("init telemetry failed: %w", err)
	}
	if provider.Enabled() {
		logger.Info("otel_tracing_enabled",
			"service", cfg.Telemetry.ServiceName,
			"endpoint", cfg.Telemetry.OTLPEndpoint,
			"sample_rate", cfg.Telemetry.SampleRate,
		)
	}
	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("otel_shutdown_failed", "err", err)
		}
	}
	return provider, cleanup, nil
}

func newMessageProvider() (*messageprovider.Provider, error) {
	provider, err := messageprovider.NewFromYAML(assets.BotMessagesYAML)
	if err != nil {
		return nil, fmt.Errorf("load bot messages failed: %w", err)
	}
	if err := provider.Require(messages.RequiredKeys()...); err != nil {
		return nil, fmt.Errorf("bot messages incomplete: %w", err)
	}
	return provider, nil
}

func newRecorder() *metrics.Recorder {
	return metrics.NewRecorder()
}

func newTelegramClient(cfg *config.Config) (*telegram.Client, error) {
	httpClient, err := httpclient.New(cfg.Telegram.HTTP)
	if err != nil {
		return nil, fmt.Errorf("create telegram http client failed: %w", err)
	}
	return telegram.NewClient(httpClient, cfg.Telegram.APIBaseURL, cfg.Telegram.BotToken), nil
}

func newDispatcher(cfg *config.Config, recorder *metrics.Recorder, logger *slog.Logger) (*dispatcher.Dispatcher, error) {
	httpClient, err := httpclient.New(cfg.Jugalbandi.HTTP)
	if err != nil {
		return nil, fmt.Errorf("create jugalbandi http client failed: %w", err)
	}
	return dispatcher.New(cfg.Jugalbandi, httpClient, recorder, logger)
}

func newSessionStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (session.Store, func(), error) {
	store, err := session.NewStore(ctx, cfg.Session, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create session store failed: %w", err)
	}
	return store, store.Close, nil
}

func newHandler(
	cfg *config.Config,
	client *telegram.Client,
	qa *dispatcher.Dispatcher,
	store session.Store,
	msgProvider *messageprovider.Provider,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) *bot.Handler {
	return bot.NewHandler(client, qa, store, msgProvider, cfg.Bot.DisplayName, recorder, logger)
}

func newChatQueue(cfg *config.Config, handler *bot.Handler, logger *slog.Logger) *bot.ChatQueue {
	return bot.NewChatQueue(cfg.Bot.WorkerConcurrency, handler.HandleUpdate, logger)
}

func newRouter(
	cfg *config.Config,
	recorder *metrics.Recorder,
	store session.Store,
	queue *bot.ChatQueue,
	tracing *telemetry.Provider,
	logger *slog.Logger,
) *gin.Engine {
	deps := httpapi.RouterDeps{
		Recorder:    recorder,
		ReadyChecks: []health.Check{{Name: "session_store", Run: store.Ping}},
		Logger:      logger,
	}
	if tracing.Enabled() {
		deps.TracingService = cfg.Telemetry.ServiceName
	}
	if cfg.Telegram.Mode == config.TelegramModeWebhook {
		deps.Webhook = queue.Submit
		deps.WebhookSecret = cfg.Telegram.WebhookSecret
	}
	return httpapi.NewRouter(deps)
}

func newHTTPServer(cfg *config.Config, router *gin.Engine) *http.Server {
	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	return httpserver.NewServer(addr, router, httpserver.ServerOptions{
		UseH2C:            true,
		ReadHeaderTimeout: cfg.ServerTuning.ReadHeaderTimeout,
		IdleTimeout:       cfg.ServerTuning.IdleTimeout,
		MaxHeaderBytes:    cfg.ServerTuning.MaxHeaderBytes,
	})
}

func newServerApp(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	client *telegram.Client,
	handler *bot.Handler,
	queue *bot.ChatQueue,
) *bootstrap.ServerApp {
	health.Init(Version)

	intake := &telegramIntake{
		cfg:      cfg.Telegram,
		client:   client,
		submit:   queue.Submit,
		logger:   logger,
		commands: handler.BotCommands(),
	}

	return bootstrap.NewServerApp(
		config.BotName,
		logger,
		server,
		cfg.ServerTuning.ShutdownTimeout,
		bootstrap.BackgroundTask{
			Name:        "chat_queue",
			ErrorLogKey: "chat_queue_error",
			Run:         queue.Run,
		},
		bootstrap.BackgroundTask{
			Name:        "telegram_intake",
			ErrorLogKey: "telegram_intake_error",
			Run:         intake.Run,
		},
	)
}
