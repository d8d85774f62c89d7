package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	commonconfig "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/config"
)

// ServerConfig: 헬스/메트릭/webhook HTTP 서버 설정 alias
type ServerConfig = commonconfig.ServerConfig

// ServerTuningConfig: 서버 성능 튜닝 옵션 alias
type ServerTuningConfig = commonconfig.ServerTuningConfig

// LogConfig: 로그 출력 설정 alias
type LogConfig = commonconfig.LogConfig

// HTTPClientConfig: 외부 API 클라이언트 설정 alias
type HTTPClientConfig = commonconfig.HTTPClientConfig

// TelemetryConfig: OpenTelemetry 설정 alias
type TelemetryConfig = commonconfig.TelemetryConfig

// TelegramMode: 업데이트 수신 방식
type TelegramMode string

// TelegramMode 상수 목록.
const (
	TelegramModePolling TelegramMode = "polling"
	TelegramModeWebhook TelegramMode = "webhook"
)

// TelegramConfig: Telegram Bot API 연동 설정입니다.
type TelegramConfig struct {
	BotToken         string       `validate:"required"`
	APIBaseURL       string       `validate:"required,url"`
	Mode             TelegramMode `validate:"oneof=polling webhook"`
	PollTimeout      time.Duration
	WebhookURL       string `validate:"omitempty,url"`
	WebhookSecret    string
	RegisterCommands bool
	HTTP             HTTPClientConfig
}

// JugalbandiConfig: 원격 QA API 설정입니다. UUIDNumber는 모든 호출에 uuid_number로 실리는 계정 식별자입니다.
type JugalbandiConfig struct {
	BaseURL    string `validate:"required,url"`
	UUIDNumber string `validate:"required"`
	HTTP       HTTPClientConfig
}

// SessionConfig: 대화별 언어 세션 저장소 설정입니다. StoreURL이 비어 있으면 메모리 저장소를 씁니다.
type SessionConfig struct {
	StoreURL   string
	TTL        time.Duration
	MaxEntries int `validate:"gte=0"`
}

// BotConfig: 봇 동작 설정입니다.
type BotConfig struct {
	DisplayName       string `validate:"required"`
	WorkerConcurrency int    `validate:"gte=1"`
}

// Config: Jugalbandi 봇 전체 설정을 통합하는 구조체입니다.
type Config struct {
	Server       ServerConfig
	ServerTuning ServerTuningConfig
	Telegram     TelegramConfig
	Jugalbandi   JugalbandiConfig
	Session      SessionConfig
	Bot          BotConfig
	Log          LogConfig
	Telemetry    TelemetryConfig
}

// LoadFromEnv: 환경 변수에서 전체 설정을 읽고 검증합니다.
func LoadFromEnv() (*Config, error) {
	server, err := commonconfig.ReadServerConfigFromEnv(DefaultServerPort)
	if err != nil {
		return nil, fmt.Errorf("read server config failed: %w", err)
	}
	serverTuning, err := commonconfig.ReadServerTuningConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("read server tuning config failed: %w", err)
	}
	telegram, err := readTelegramConfig()
	if err != nil {
		return nil, err
	}
	jugalbandi, err := readJugalbandiConfig()
	if err != nil {
		return nil, err
	}
	session, err := readSessionConfig()
	if err != nil {
		return nil, err
	}
	bot, err := readBotConfig()
	if err != nil {
		return nil, err
	}
	log, err := commonconfig.ReadLogConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("read log config failed: %w", err)
	}
	telemetry, err := commonconfig.ReadTelemetryConfigFromEnv(DefaultServiceName)
	if err != nil {
		return nil, fmt.Errorf("read telemetry config failed: %w", err)
	}

	cfg := &Config{
		Server:       server,
		ServerTuning: serverTuning,
		Telegram:     telegram,
		Jugalbandi:   jugalbandi,
		Session:      session,
		Bot:          bot,
		Log:          log,
		Telemetry:    telemetry,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate: 구조체 태그 검증과 필드 간 제약을 확인합니다.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", describeValidationError(err))
	}
	if c.Telegram.Mode == TelegramModeWebhook && c.Telegram.WebhookURL == "" {
		return errors.New("invalid config: TELEGRAM_WEBHOOK_URL is required in webhook mode")
	}
	// long polling 요청이 클라이언트 타임아웃보다 먼저 끝나야 한다
	if c.Telegram.Mode == TelegramModePolling && c.Telegram.HTTP.Timeout > 0 && c.Telegram.HTTP.Timeout <= c.Telegram.PollTimeout {
		return fmt.Errorf(
			"invalid config: telegram http timeout %s must exceed poll timeout %s",
			c.Telegram.HTTP.Timeout, c.Telegram.PollTimeout,
		)
	}
	return nil
}

func describeValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	parts := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}

func readTelegramConfig() (TelegramConfig, error) {
	pollTimeout, err := commonconfig.DurationSecondsFromEnv("TELEGRAM_POLL_TIMEOUT_SECONDS", DefaultPollTimeoutSeconds)
	if err != nil {
		return TelegramConfig{}, fmt.Errorf("read TELEGRAM_POLL_TIMEOUT_SECONDS failed: %w", err)
	}
	registerCommands, err := commonconfig.BoolFromEnv("TELEGRAM_REGISTER_COMMANDS", true)
	if err != nil {
		return TelegramConfig{}, fmt.Errorf("read TELEGRAM_REGISTER_COMMANDS failed: %w", err)
	}
	httpCfg, err := commonconfig.ReadHTTPClientConfigFromEnv("TELEGRAM_HTTP_", DefaultTelegramHTTPTimeout)
	if err != nil {
		return TelegramConfig{}, fmt.Errorf("read telegram http config failed: %w", err)
	}

	return TelegramConfig{
		BotToken:         commonconfig.StringFromEnvFirstNonEmpty([]string{"TELEGRAM_BOT_TOKEN", "BOT_TOKEN"}, ""),
		APIBaseURL:       strings.TrimRight(commonconfig.StringFromEnv("TELEGRAM_API_BASE_URL", DefaultTelegramAPIBaseURL), "/"),
		Mode:             TelegramMode(strings.ToLower(commonconfig.StringFromEnv("TELEGRAM_MODE", string(TelegramModePolling)))),
		PollTimeout:      pollTimeout,
		WebhookURL:       commonconfig.StringFromEnv("TELEGRAM_WEBHOOK_URL", ""),
		WebhookSecret:    commonconfig.StringFromEnv("TELEGRAM_WEBHOOK_SECRET", ""),
		RegisterCommands: registerCommands,
		HTTP:             httpCfg,
	}, nil
}

func readJugalbandiConfig() (JugalbandiConfig, error) {
	httpCfg, err := commonconfig.ReadHTTPClientConfigFromEnv("JUGALBANDI_", 0)
	if err != nil {
		return JugalbandiConfig{}, fmt.Errorf("read jugalbandi http config failed: %w", err)
	}

	baseURL := commonconfig.StringFromEnv("JUGALBANDI_BASE_URL", DefaultJugalbandiBaseURL)
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return JugalbandiConfig{
		BaseURL:    baseURL,
		UUIDNumber: commonconfig.StringFromEnvFirstNonEmpty([]string{"JUGALBANDI_UUID_NUMBER", "UUID_NUMBER"}, ""),
		HTTP:       httpCfg,
	}, nil
}

func readSessionConfig() (SessionConfig, error) {
	ttl, err := commonconfig.DurationSecondsFromEnv("SESSION_TTL_SECONDS", 0)
	if err != nil {
		return SessionConfig{}, fmt.Errorf("read SESSION_TTL_SECONDS failed: %w", err)
	}
	maxEntries, err := commonconfig.IntFromEnv("SESSION_MAX_ENTRIES", 0)
	if err != nil {
		return SessionConfig{}, fmt.Errorf("read SESSION_MAX_ENTRIES failed: %w", err)
	}

	return SessionConfig{
		StoreURL:   commonconfig.StringFromEnv("SESSION_STORE_URL", ""),
		TTL:        ttl,
		MaxEntries: maxEntries,
	}, nil
}

func readBotConfig() (BotConfig, error) {
	concurrency, err := commonconfig.IntFromEnv("WORKER_CONCURRENCY", DefaultWorkerConcurrency)
	if err != nil {
		return BotConfig{}, fmt.Errorf("read WORKER_CONCURRENCY failed: %w", err)
	}

	return BotConfig{
		DisplayName:       commonconfig.StringFromEnv("BOT_DISPLAY_NAME", DefaultBotDisplayName),
		WorkerConcurrency: concurrency,
	}, nil
}
