package bot

import (
	"errors"

	cerrors "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/errors"
	jberrors "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/errors"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/messages"
)

// ErrorMessageKey: 에러를 사용자 안내 메시지 키로 매핑한다.
// QA 호출 실패는 원인과 관계없이 모두 같은 안내로 모인다.
func ErrorMessageKey(err error) string {
	var (
		malformedInput cerrors.MalformedInputError
		audioFetch     jberrors.AudioFetchError
	)

	switch {
	case errors.As(err, &malformedInput):
		return messages.LanguageInvalid
	case errors.As(err, &audioFetch):
		return messages.ErrorAudioUnavailable
	default:
		return messages.ErrorGeneric
	}
}
