package model

import "time"

// Session: 대화별 상태. 현재는 선택 언어만 보관한다.
type Session struct {
	ConversationID string    `json:"conversation_id"`
	Language       Language  `json:"language"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Choice: 인라인 선택지 하나 (버튼 라벨과 콜백 페이로드)
type Choice struct {
	Label string
	Data  string
}
