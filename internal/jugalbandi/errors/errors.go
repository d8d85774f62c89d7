// Package errors: Jugalbandi QA API 호출 과정의 도메인 에러 타입을 정의한다.
// 사용자에게는 모두 같은 안내 메시지로 보이고, 운영 로그에서만 구분된다.
package errors

import (
	"errors"
	"fmt"
)

// ReasonInvalidResponse: answer 필드가 없는 응답에 대한 Failure 사유
const ReasonInvalidResponse = "invalid response"

// TransportError: 네트워크 실패, 요청 생성 실패, 컨텍스트 취소 등 응답을 받지 못한 경우
type TransportError struct {
	Endpoint string
	Err      error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("transport error endpoint=%s: %v", e.Endpoint, e.Err)
}

func (e TransportError) Unwrap() error { return e.Err }

// UpstreamError: non-2xx 응답 또는 JSON 본문이 명시적으로 error를 담은 경우
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream error endpoint=%s status=%d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("upstream error endpoint=%s status=%d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// MalformedResponseError: JSON이 아니거나 필수 필드가 빠진 응답
type MalformedResponseError struct {
	Endpoint string
	Reason   string
	Err      error
}

func (e MalformedResponseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed response endpoint=%s: %s", e.Endpoint, e.Reason)
	}
	return fmt.Sprintf("malformed response endpoint=%s: %s: %v", e.Endpoint, e.Reason, e.Err)
}

func (e MalformedResponseError) Unwrap() error { return e.Err }

// AudioFetchError: 답변 합성 음성 파일을 내려받지 못한 경우
type AudioFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e AudioFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio fetch failed url=%s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("audio fetch failed url=%s status=%d", e.URL, e.StatusCode)
}

func (e AudioFetchError) Unwrap() error { return e.Err }

// Kind: 로그/메트릭 라벨용 에러 분류를 반환한다.
func Kind(err error) string {
	var transportErr TransportError
	var upstreamErr UpstreamError
	var malformedErr MalformedResponseError
	var audioErr AudioFetchError

	switch {
	case err == nil:
		return "none"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &upstreamErr):
		return "upstream"
	case errors.As(err, &malformedErr):
		return "malformed"
	case errors.As(err, &audioErr):
		return "audio_fetch"
	default:
		return "unknown"
	}
}
