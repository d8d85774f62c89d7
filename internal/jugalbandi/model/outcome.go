package model

// Outcome: 원격 QA 호출의 정규화된 결과. Success 또는 Failure 중 하나다.
type Outcome interface {
	isOutcome()
}

// Success: answer가 있는 정상 응답
type Success struct {
	Answer     string
	SourceText string
	AudioURL   string // 비어 있으면 음성 후속 전송 없음
}

// HasAudio: 후속으로 가져올 합성 음성이 있는지 여부
func (s Success) HasAudio() bool {
	return s.AudioURL != ""
}

// Failure: 전송 오류, 비정상 응답, 필수 필드 누락 등. Err에 원인 에러가 담긴다.
type Failure struct {
	Reason string
	Err    error
}

func (f Failure) Error() string {
	if f.Err == nil || f.Err.Error() == f.Reason {
		return f.Reason
	}
	return f.Reason + ": " + f.Err.Error()
}

func (f Failure) Unwrap() error { return f.Err }

func (Success) isOutcome() {}
func (Failure) isOutcome() {}
