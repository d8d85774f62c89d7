package model

import (
	"strings"

	cerrors "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/errors"
)

// Language: 대화에서 선택된 질의 언어. 값은 QA API의 input_language 파라미터로 그대로 전달된다.
type Language string

// Language 상수 목록.
const (
	// LanguageUnset: 아직 언어를 고르지 않은 상태
	LanguageUnset   Language = ""
	LanguageEnglish Language = "English"
	LanguageHindi   Language = "Hindi"
	LanguageKannada Language = "Kannada"
)

// SupportedLanguages: 언어 선택 메뉴에 표시되는 순서
var SupportedLanguages = []Language{LanguageEnglish, LanguageHindi, LanguageKannada}

// ParseLanguage: 언어 이름을 닫힌 열거형과 정확히 비교해 Language로 변환한다.
func ParseLanguage(name string) (Language, bool) {
	for _, lang := range SupportedLanguages {
		if string(lang) == name {
			return lang, true
		}
	}
	return LanguageUnset, false
}

// IsSet: 지원 언어 중 하나가 선택되었는지 여부
func (l Language) IsSet() bool {
	_, ok := ParseLanguage(string(l))
	return ok
}

func (l Language) String() string {
	if l == LanguageUnset {
		return "unset"
	}
	return string(l)
}

// 콜백 페이로드 형식: lang_<LanguageName>
const (
	CallbackPrefix    = "lang"
	CallbackDelimiter = "_"
)

// LanguageCallbackData: 언어 선택 버튼에 실을 콜백 페이로드를 만든다.
func LanguageCallbackData(l Language) string {
	return CallbackPrefix + CallbackDelimiter + string(l)
}

// IsLanguageCallback: 언어 선택 콜백으로 라우팅할 페이로드인지 확인한다. (접두사만 검사)
func IsLanguageCallback(data string) bool {
	return strings.HasPrefix(data, CallbackPrefix+CallbackDelimiter)
}

// ParseLanguageCallback: 페이로드를 구분자로 나눈 뒤 접두사와 언어 이름을 각각 검증한다.
// 알 수 없는 값은 잘라내지 않고 MalformedInputError로 거부한다.
func ParseLanguageCallback(data string) (Language, error) {
	prefix, name, found := strings.Cut(data, CallbackDelimiter)
	if !found || prefix != CallbackPrefix {
		return LanguageUnset, cerrors.MalformedInputError{Input: data, Reason: "not a language callback"}
	}
	lang, ok := ParseLanguage(name)
	if !ok {
		return LanguageUnset, cerrors.MalformedInputError{Input: data, Reason: "unknown language"}
	}
	return lang, nil
}
