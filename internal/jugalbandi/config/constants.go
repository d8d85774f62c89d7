package config

// 기본값 상수.
const (
	// BotName: 로그/헬스 응답에 쓰는 봇 식별자
	BotName = "jugalbandi"
	// DefaultServiceName: OTEL_SERVICE_NAME 기본값
	DefaultServiceName = "jugalbandi-bot"
	// LogFileName: 파일 로깅 시 봇 전용 로그 파일 이름
	LogFileName = "jugalbandi-bot.log"

	DefaultServerPort          = 40300
	DefaultTelegramAPIBaseURL  = "https://api.telegram.org"
	DefaultJugalbandiBaseURL   = "https://api.jugalbandi.ai/"
	DefaultBotDisplayName      = "Jugalbandi"
	DefaultPollTimeoutSeconds  = 30
	DefaultTelegramHTTPTimeout = 60
	DefaultWorkerConcurrency   = 8
)

// SessionKeyPrefix: Valkey 세션 키 접두사. 형식: jugalbandi:session:{conversation_id}
const SessionKeyPrefix = "jugalbandi:session"

// WebhookPath: Telegram webhook 수신 경로
const WebhookPath = "/telegram/webhook"
