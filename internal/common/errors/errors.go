// Package errors: 봇 전체에서 공용으로 사용되는 인프라스트럭처 에러 타입들을 정의한다.
package errors

import (
	"errors"
	"fmt"
)

// RedisError: Redis/Valkey 작업을 수행하는 도중 발생한 에러
type RedisError struct {
	Operation string
	Err       error
}

func (e RedisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("redis error operation=%s", e.Operation)
	}
	return fmt.Sprintf("redis error operation=%s: %v", e.Operation, e.Err)
}

func (e RedisError) Unwrap() error { return e.Err }

// MalformedInputError: 사용자 입력(명령어, 콜백 데이터 등)의 형식이 잘못되었을 때 발생하는 에러
type MalformedInputError struct {
	Input  string
	Reason string
}

func (e MalformedInputError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("malformed input: %q", e.Input)
	}
	return fmt.Sprintf("malformed input %q: %s", e.Input, e.Reason)
}

// TelegramAPIError: Telegram Bot API가 실패 응답(non-2xx 또는 ok=false)을 돌려준 경우의 에러
type TelegramAPIError struct {
	Method      string
	StatusCode  int
	Description string
}

func (e TelegramAPIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("telegram %s failed: http %d", e.Method, e.StatusCode)
	}
	return fmt.Sprintf("telegram %s failed: http %d: %s", e.Method, e.StatusCode, e.Description)
}

// IsExpectedUserBehavior: 사용자의 잘못된 입력처럼 운영자 알림이 필요 없는 에러인지 확인한다.
func IsExpectedUserBehavior(err error) bool {
	var malformed MalformedInputError
	return errors.As(err, &malformed)
}
