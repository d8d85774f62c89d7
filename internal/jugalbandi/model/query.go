package model

import (
	"errors"
	"strings"
)

// QueryRequest: Query Dispatcher 입력. VoiceURL이 있으면 Text는 무시된다.
type QueryRequest struct {
	Text     string
	VoiceURL string
	Language Language
}

// HasVoice: 음성 참조가 있는지 여부
func (r QueryRequest) HasVoice() bool {
	return strings.TrimSpace(r.VoiceURL) != ""
}

// Validate: 언어가 선택되어 있고 텍스트나 음성 중 하나가 있어야 한다.
func (r QueryRequest) Validate() error {
	if !r.Language.IsSet() {
		return errors.New("query language is not set")
	}
	if !r.HasVoice() && strings.TrimSpace(r.Text) == "" {
		return errors.New("query has neither text nor voice")
	}
	return nil
}
