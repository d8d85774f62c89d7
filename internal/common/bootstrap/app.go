package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// ServerApp: HTTP 서버와 백그라운드 작업(업데이트 수신 루프 등)을 함께 실행하는 애플리케이션 단위입니다.
type ServerApp struct {
	Bot             string
	Logger          *slog.Logger
	Server          *http.Server
	ShutdownTimeout time.Duration
	BackgroundTasks []BackgroundTask
}

// NewServerApp: ServerApp을 생성합니다.
func NewServerApp(
	bot string,
	logger *slog.Logger,
	server *http.Server,
	shutdownTimeout time.Duration,
	backgroundTasks ...BackgroundTask,
) *ServerApp {
	return &ServerApp{
		Bot:             bot,
		Logger:          logger,
		Server:          server,
		ShutdownTimeout: shutdownTimeout,
		BackgroundTasks: backgroundTasks,
	}
}

// Run: 종료 시그널 또는 작업 실패 전까지 서버와 백그라운드 작업을 실행합니다.
func (a *ServerApp) Run(ctx context.Context) error {
	if a == nil {
		return nil
	}
	return RunHTTPServer(
		ctx,
		a.Logger,
		a.Bot,
		a.Server,
		a.ShutdownTimeout,
		a.BackgroundTasks...,
	)
}
