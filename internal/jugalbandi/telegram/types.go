package telegram

import "strings"

// Update: getUpdates/webhook으로 받는 업데이트. 이 봇은 message와 callback_query만 다룬다.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// Message: 메시지 (필요한 필드만)
type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      *Chat  `json:"chat,omitempty"`
	From      *User  `json:"from,omitempty"`
	Text      string `json:"text,omitempty"`
	Caption   string `json:"caption,omitempty"`
	Voice     *Voice `json:"voice,omitempty"`
}

// Chat: 대화방. ID가 대화(conversation) 식별자가 된다.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// User: 발신자
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Voice: 음성 메시지 첨부
type Voice struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id,omitempty"`
	Duration     int    `json:"duration,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
}

// CallbackQuery: 인라인 버튼 클릭
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    *User    `json:"from,omitempty"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

// File: getFile 결과. FilePath로 다운로드 URL을 만든다.
type File struct {
	FileID   string `json:"file_id"`
	FileSize int64  `json:"file_size,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

// InlineKeyboardMarkup: 메시지에 붙는 인라인 키보드
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// InlineKeyboardButton: 콜백 데이터를 싣는 버튼
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// BotCommand: setMyCommands 항목
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// DisplayName: 인사말에 쓸 이름. 채팅 first_name을 우선하고, 없으면 발신자 정보로 대체한다.
func DisplayName(msg *Message) string {
	if msg == nil {
		return ""
	}
	if msg.Chat != nil {
		if name := strings.TrimSpace(msg.Chat.FirstName); name != "" {
			return name
		}
	}
	if msg.From != nil {
		if name := strings.TrimSpace(msg.From.FirstName); name != "" {
			return name
		}
		if username := strings.TrimSpace(msg.From.Username); username != "" {
			return "@" + username
		}
	}
	return "there"
}
