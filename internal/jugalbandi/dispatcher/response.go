package dispatcher

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"

	jberrors "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/errors"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/model"
)

// Failure 사유 (로그/테스트용, 사용자에게는 노출되지 않음)
const (
	ReasonTransport         = "transport error"
	ReasonUpstream          = "upstream error"
	ReasonMalformedResponse = "malformed response"
	ReasonInvalidRequest    = "invalid request"
)

const maxErrorSnippet = 200

// answerPayload: 정상 응답에서 꺼내 쓰는 필드
type answerPayload struct {
	Query          string `json:"query"`
	Answer         string `json:"answer"`
	SourceText     string `json:"source_text"`
	AudioOutputURL string `json:"audio_output_url"`
}

// normalizeResponse: HTTP 상태와 본문을 Success/Failure로 정규화한다.
// 필드 존재 여부는 raw map에서 먼저 판정하고, 값 추출은 mapstructure로 한다.
func normalizeResponse(endpoint string, statusCode int, body []byte) model.Outcome {
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return model.Failure{
			Reason: ReasonUpstream,
			Err:    jberrors.UpstreamError{Endpoint: endpoint, StatusCode: statusCode, Message: snippet(body)},
		}
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return model.Failure{
			Reason: ReasonMalformedResponse,
			Err:    jberrors.MalformedResponseError{Endpoint: endpoint, Reason: "body is not json", Err: err},
		}
	}
	raw, ok := decoded.(map[string]any)
	if !ok {
		return model.Failure{
			Reason: ReasonMalformedResponse,
			Err:    jberrors.MalformedResponseError{Endpoint: endpoint, Reason: fmt.Sprintf("body is %T, not an object", decoded)},
		}
	}

	// "error": false, "", null은 오류로 보지 않고 answer 검사로 넘어간다
	if message, hasError := errorField(raw); hasError {
		return model.Failure{
			Reason: ReasonUpstream,
			Err:    jberrors.UpstreamError{Endpoint: endpoint, StatusCode: statusCode, Message: message},
		}
	}

	if answer, present := raw["answer"]; !present || answer == nil {
		return model.Failure{
			Reason: jberrors.ReasonInvalidResponse,
			Err:    jberrors.MalformedResponseError{Endpoint: endpoint, Reason: "answer field missing"},
		}
	}

	var payload answerPayload
	if err := decode(raw, &payload); err != nil {
		return model.Failure{
			Reason: ReasonMalformedResponse,
			Err:    jberrors.MalformedResponseError{Endpoint: endpoint, Reason: "unexpected field type", Err: err},
		}
	}

	return model.Success{
		Answer:     payload.Answer,
		SourceText: payload.SourceText,
		AudioURL:   strings.TrimSpace(payload.AudioOutputURL),
	}
}

// errorField: error 키가 비어 있지 않은 값을 담고 있으면 그 내용을 반환한다.
func errorField(raw map[string]any) (string, bool) {
	value, ok := raw["error"]
	if !ok || value == nil {
		return "", false
	}
	switch typed := value.(type) {
	case string:
		if strings.TrimSpace(typed) == "" {
			return "", false
		}
		return typed, true
	case bool:
		return "error flag set", typed
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed), true
		}
		return string(encoded), true
	}
}

func decode(input map[string]any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxErrorSnippet {
		return text
	}
	cut := maxErrorSnippet
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
