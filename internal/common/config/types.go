package config

import (
	"log/slog"
	"time"
)

// ServerConfig: HTTP 서버 주소/포트 설정입니다.
type ServerConfig struct {
	Host string // 서버 바인딩 호스트
	Port int    // 서버 리스닝 포트
}

// ServerTuningConfig: HTTP 서버 튜닝 설정(Timeouts, Limits)입니다.
type ServerTuningConfig struct {
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	ShutdownTimeout   time.Duration
}

// LogConfig: 로그 레벨 및 파일 로그 로테이션 설정입니다.
type LogConfig struct {
	Level slog.Level // 최소 로그 레벨

	Dir string // 로그 파일 디렉터리 (비어 있으면 stdout만 사용)

	MaxSizeMB  int  // 단일 파일 최대 크기 (MB)
	MaxBackups int  // 보관할 백업 파일 수
	MaxAgeDays int  // 백업 파일 보관 일수
	Compress   bool // 백업 파일 압축 여부
}

// HTTPClientConfig: 외부 HTTP API 호출용 클라이언트 설정입니다.
type HTTPClientConfig struct {
	Timeout        time.Duration // 요청 전체 타임아웃 (0이면 제한 없음)
	ConnectTimeout time.Duration // TCP 연결 타임아웃
	HTTP2Enabled   bool          // HTTP/2 전송 사용 여부
}

// TelemetryConfig: OpenTelemetry 분산 추적 설정입니다. Enabled가 false면 no-op으로 동작합니다.
type TelemetryConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string // gRPC OTLP 수집기 주소 (host:port)
	OTLPInsecure   bool
	SampleRate     float64 // 0.0 ~ 1.0
}
