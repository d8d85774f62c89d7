package messages

import "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/model"

// 메시지 키 상수.
const (
	// Welcome: /start 인사말 ({name}, {bot_name})
	Welcome = "welcome"

	// LanguagePrompt: 언어 선택 메뉴 관련 메시지 키
	LanguagePrompt  = "language.prompt"
	LanguageInvalid = "language.invalid"

	// ErrorGeneric: 모든 QA 실패에 대한 단일 사용자 안내
	ErrorGeneric          = "error.generic"
	ErrorAudioUnavailable = "error.audio_unavailable"

	// CommandStart: setMyCommands 설명
	CommandStart       = "commands.start"
	CommandSetLanguage = "commands.set_language"
)

const (
	languageButtonPrefix    = "language.button."
	languageConfirmedPrefix = "language.confirmed."
	queryWaitingPrefix      = "query.waiting."
)

// LanguageButton: 언어 선택 버튼 라벨 키
func LanguageButton(lang model.Language) string {
	return languageButtonPrefix + string(lang)
}

// LanguageConfirmed: 언어 선택 확인 메시지 키
func LanguageConfirmed(lang model.Language) string {
	return languageConfirmedPrefix + string(lang)
}

// QueryWaiting: 질의 처리 중 안내 메시지 키
func QueryWaiting(lang model.Language) string {
	return queryWaitingPrefix + string(lang)
}

// RequiredKeys: 시작 시 번들에 반드시 있어야 하는 키 목록
func RequiredKeys() []string {
	keys := []string{
		Welcome, LanguagePrompt, LanguageInvalid,
		ErrorGeneric, ErrorAudioUnavailable,
		CommandStart, CommandSetLanguage,
	}
	for _, lang := range model.SupportedLanguages {
		keys = append(keys, LanguageButton(lang), LanguageConfirmed(lang), QueryWaiting(lang))
	}
	return keys
}
