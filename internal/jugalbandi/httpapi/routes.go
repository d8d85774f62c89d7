// Package httpapi: 헬스/메트릭/webhook HTTP 라우트.
package httpapi

import (
	"crypto/subtle"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/health"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/middleware"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/config"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/metrics"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/telegram"
)

const (
	// secretHeader: setWebhook secret_token이 실려 오는 헤더
	secretHeader       = "X-Telegram-Bot-Api-Secret-Token"
	maxWebhookBodySize = 1 << 20
)

// RouterDeps: 라우터 의존성. Webhook이 nil이면 webhook 경로를 등록하지 않는다 (polling 모드).
// TracingService가 비어 있으면 otelgin 미들웨어를 붙이지 않는다. TracerProvider가 nil이면 글로벌을 쓴다.
type RouterDeps struct {
	Recorder       *metrics.Recorder
	ReadyChecks    []health.Check
	Webhook        func(update telegram.Update)
	WebhookSecret  string
	TracingService string
	TracerProvider trace.TracerProvider
	Logger         *slog.Logger
}

// NewRouter: gin 엔진을 구성한다.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// 추적 미들웨어는 가장 앞에 둔다
	if deps.TracingService != "" {
		var opts []otelgin.Option
		if deps.TracerProvider != nil {
			opts = append(opts, otelgin.WithTracerProvider(deps.TracerProvider))
		}
		router.Use(otelgin.Middleware(deps.TracingService, opts...))
		logger.Info("otel_http_middleware_enabled", "service", deps.TracingService)
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, health.Get())
	})
	router.GET("/health/ready", func(c *gin.Context) {
		resp := health.Ready(c.Request.Context(), deps.ReadyChecks...)
		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, resp)
	})
	router.GET("/metrics", gzip.Gzip(gzip.DefaultCompression), gin.WrapH(deps.Recorder.Handler()))

	if deps.Webhook != nil {
		router.POST(config.WebhookPath, webhookHandler(deps.Webhook, deps.WebhookSecret, logger))
	}
	return router
}

// webhookHandler: 업데이트를 큐에 넘기고 바로 200을 돌려준다. 처리 결과는 응답에 싣지 않는다.
func webhookHandler(submit func(telegram.Update), secret string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret != "" {
			got := c.GetHeader(secretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				logger.Warn("webhook_secret_mismatch", "request_id", middleware.GetRequestID(c), "remote", c.ClientIP())
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodySize))
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		var update telegram.Update
		if err := json.Unmarshal(body, &update); err != nil {
			logger.Warn("webhook_decode_failed", "request_id", middleware.GetRequestID(c), "err", err)
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		submit(update)
		c.Status(http.StatusOK)
	}
}
