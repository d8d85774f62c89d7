package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// ReadServerConfigFromEnv: HTTP 서버 호스트와 포트 설정을 환경 변수에서 읽어옵니다.
func ReadServerConfigFromEnv(defaultPort int) (ServerConfig, error) {
	serverPort, err := IntFromEnv("SERVER_PORT", defaultPort)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read SERVER_PORT failed: %w", err)
	}
	if serverPort <= 0 || serverPort > 65535 {
		return ServerConfig{}, fmt.Errorf("invalid SERVER_PORT: %d", serverPort)
	}

	return ServerConfig{
		Host: StringFromEnv("SERVER_HOST", "0.0.0.0"),
		Port: serverPort,
	}, nil
}

// ReadServerTuningConfigFromEnv: HTTP 서버 튜닝 설정(Timeouts, Limits)을 환경 변수에서 읽어옵니다.
func ReadServerTuningConfigFromEnv() (ServerTuningConfig, error) {
	readHeaderTimeout, err := DurationSecondsFromEnv("SERVER_READ_HEADER_TIMEOUT_SECONDS", 5)
	if err != nil {
		return ServerTuningConfig{}, fmt.Errorf("read SERVER_READ_HEADER_TIMEOUT_SECONDS failed: %w", err)
	}

	// 명시적으로 0을 주면 비활성화
	idleTimeout, err := DurationSecondsFromEnv("SERVER_IDLE_TIMEOUT_SECONDS", 90)
	if err != nil {
		return ServerTuningConfig{}, fmt.Errorf("read SERVER_IDLE_TIMEOUT_SECONDS failed: %w", err)
	}

	maxHeaderBytes, err := IntFromEnv("SERVER_MAX_HEADER_BYTES", 1<<20) // 1MiB
	if err != nil {
		return ServerTuningConfig{}, fmt.Errorf("read SERVER_MAX_HEADER_BYTES failed: %w", err)
	}
	if maxHeaderBytes < 0 {
		return ServerTuningConfig{}, fmt.Errorf("invalid SERVER_MAX_HEADER_BYTES: %d", maxHeaderBytes)
	}

	shutdownTimeout, err := DurationSecondsFromEnv("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10)
	if err != nil {
		return ServerTuningConfig{}, fmt.Errorf("read SERVER_SHUTDOWN_TIMEOUT_SECONDS failed: %w", err)
	}

	return ServerTuningConfig{
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
		ShutdownTimeout:   shutdownTimeout,
	}, nil
}

// ReadLogConfigFromEnv: 로그 레벨과 파일 출력 설정(디렉터리, 크기, 백업 수)을 환경 변수에서 읽어옵니다.
func ReadLogConfigFromEnv() (LogConfig, error) {
	level, err := parseLogLevel(StringFromEnv("LOG_LEVEL", "info"))
	if err != nil {
		return LogConfig{}, err
	}

	dir := StringFromEnv("LOG_DIR", "")
	if strings.TrimSpace(dir) == "" {
		return LogConfig{Level: level}, nil
	}

	maxSizeMB, err := IntFromEnv("LOG_FILE_MAX_SIZE_MB", 1)
	if err != nil {
		return LogConfig{}, fmt.Errorf("read LOG_FILE_MAX_SIZE_MB failed: %w", err)
	}
	if maxSizeMB <= 0 {
		return LogConfig{}, fmt.Errorf("invalid LOG_FILE_MAX_SIZE_MB: %d", maxSizeMB)
	}

	maxBackups, err := IntFromEnv("LOG_FILE_MAX_BACKUPS", 30)
	if err != nil {
		return LogConfig{}, fmt.Errorf("read LOG_FILE_MAX_BACKUPS failed: %w", err)
	}
	if maxBackups <= 0 {
		return LogConfig{}, fmt.Errorf("invalid LOG_FILE_MAX_BACKUPS: %d", maxBackups)
	}

	maxAgeDays, err := IntFromEnv("LOG_FILE_MAX_AGE_DAYS", 7)
	if err != nil {
		return LogConfig{}, fmt.Errorf("read LOG_FILE_MAX_AGE_DAYS failed: %w", err)
	}
	if maxAgeDays <= 0 {
		return LogConfig{}, fmt.Errorf("invalid LOG_FILE_MAX_AGE_DAYS: %d", maxAgeDays)
	}

	compress, err := BoolFromEnv("LOG_FILE_COMPRESS", true)
	if err != nil {
		return LogConfig{}, fmt.Errorf("read LOG_FILE_COMPRESS failed: %w", err)
	}

	return LogConfig{
		Level:      level,
		Dir:        dir,
		MaxSizeMB:  maxSizeMB,
		MaxBackups: maxBackups,
		MaxAgeDays: maxAgeDays,
		Compress:   compress,
	}, nil
}

// ReadHTTPClientConfigFromEnv: envPrefix로 시작하는 키에서 외부 API 클라이언트 설정을 읽어옵니다.
// ex) envPrefix="JUGALBANDI_" -> JUGALBANDI_TIMEOUT_SECONDS
func ReadHTTPClientConfigFromEnv(envPrefix string, defaultTimeoutSeconds int64) (HTTPClientConfig, error) {
	timeout, err := DurationSecondsFromEnv(envPrefix+"TIMEOUT_SECONDS", defaultTimeoutSeconds)
	if err != nil {
		return HTTPClientConfig{}, fmt.Errorf("read %sTIMEOUT_SECONDS failed: %w", envPrefix, err)
	}

	connectTimeout, err := DurationSecondsFromEnv(envPrefix+"CONNECT_TIMEOUT_SECONDS", 10)
	if err != nil {
		return HTTPClientConfig{}, fmt.Errorf("read %sCONNECT_TIMEOUT_SECONDS failed: %w", envPrefix, err)
	}

	http2Enabled, err := BoolFromEnv(envPrefix+"HTTP2_ENABLED", false)
	if err != nil {
		return HTTPClientConfig{}, fmt.Errorf("read %sHTTP2_ENABLED failed: %w", envPrefix, err)
	}

	return HTTPClientConfig{
		Timeout:        timeout,
		ConnectTimeout: connectTimeout,
		HTTP2Enabled:   http2Enabled,
	}, nil
}

// ReadTelemetryConfigFromEnv: OTEL_* 환경 변수에서 분산 추적 설정을 읽어옵니다. 기본값은 비활성화입니다.
func ReadTelemetryConfigFromEnv(defaultServiceName string) (TelemetryConfig, error) {
	enabled, err := BoolFromEnv("OTEL_ENABLED", false)
	if err != nil {
		return TelemetryConfig{}, fmt.Errorf("read OTEL_ENABLED failed: %w", err)
	}
	insecure, err := BoolFromEnv("OTEL_EXPORTER_OTLP_INSECURE", true)
	if err != nil {
		return TelemetryConfig{}, fmt.Errorf("read OTEL_EXPORTER_OTLP_INSECURE failed: %w", err)
	}
	sampleRate, err := FloatFromEnv("OTEL_SAMPLE_RATE", 1.0)
	if err != nil {
		return TelemetryConfig{}, fmt.Errorf("read OTEL_SAMPLE_RATE failed: %w", err)
	}
	if sampleRate < 0 || sampleRate > 1 {
		return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE=%v: must be within [0, 1]", sampleRate)
	}

	return TelemetryConfig{
		Enabled:        enabled,
		ServiceName:    StringFromEnv("OTEL_SERVICE_NAME", defaultServiceName),
		ServiceVersion: StringFromEnv("OTEL_SERVICE_VERSION", "1.0.0"),
		Environment:    StringFromEnv("OTEL_ENVIRONMENT", "production"),
		OTLPEndpoint:   StringFromEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4317"),
		OTLPInsecure:   insecure,
		SampleRate:     sampleRate,
	}, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL=%q: %w", raw, err)
	}
	return level, nil
}
