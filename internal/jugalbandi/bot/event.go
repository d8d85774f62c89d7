package bot

import (
	"strings"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/model"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/telegram"
)

// EventKind: 업데이트 분류
type EventKind int

// EventKind 상수 목록.
const (
	// EventIgnored: 처리하지 않는 업데이트 (사진, 스티커, 편집 등)
	EventIgnored EventKind = iota
	// EventStart: /start
	EventStart
	// EventSetLanguage: /set_language
	EventSetLanguage
	// EventLanguageCallback: lang_ 접두사를 가진 버튼 콜백
	EventLanguageCallback
	// EventTextQuery: 일반 텍스트 (등록되지 않은 슬래시 명령 포함)
	EventTextQuery
	// EventVoiceQuery: 음성 메시지. 캡션은 무시한다.
	EventVoiceQuery
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventSetLanguage:
		return "set_language"
	case EventLanguageCallback:
		return "language_callback"
	case EventTextQuery:
		return "text"
	case EventVoiceQuery:
		return "voice"
	default:
		return "ignored"
	}
}

// 등록된 명령어
const (
	CommandStart       = "start"
	CommandSetLanguage = "set_language"
)

// Event: 업데이트에서 처리에 필요한 값만 뽑아 둔 것
type Event struct {
	Kind         EventKind
	ChatID       int64
	UserName     string
	Text         string
	VoiceFileID  string
	CallbackID   string
	CallbackData string
}

// ParseEvent: 업데이트를 분류한다. 대상 채팅을 알 수 없으면 EventIgnored.
func ParseEvent(update telegram.Update) Event {
	if cb := update.CallbackQuery; cb != nil {
		chatID, ok := ChatIDOf(update)
		if !ok || !model.IsLanguageCallback(cb.Data) {
			return Event{Kind: EventIgnored, ChatID: chatID, CallbackID: cb.ID}
		}
		return Event{Kind: EventLanguageCallback, ChatID: chatID, CallbackID: cb.ID, CallbackData: cb.Data}
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return Event{Kind: EventIgnored}
	}
	event := Event{ChatID: msg.Chat.ID, UserName: telegram.DisplayName(msg)}

	if msg.Voice != nil && strings.TrimSpace(msg.Voice.FileID) != "" {
		event.Kind = EventVoiceQuery
		event.VoiceFileID = msg.Voice.FileID
		return event
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		event.Kind = EventIgnored
		return event
	}

	switch commandName(text) {
	case CommandStart:
		event.Kind = EventStart
	case CommandSetLanguage:
		event.Kind = EventSetLanguage
	default:
		event.Kind = EventTextQuery
		event.Text = text
	}
	return event
}

// commandName: "/start@JugalbandiBot args" → "start". 슬래시로 시작하지 않으면 빈 문자열.
func commandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	token := strings.Fields(text)[0]
	token = strings.TrimPrefix(token, "/")
	if name, _, found := strings.Cut(token, "@"); found {
		token = name
	}
	return strings.ToLower(token)
}

// ChatIDOf: 업데이트가 속한 채팅 ID. 콜백은 원본 메시지의 채팅, 없으면 발신자(개인 채팅) ID를 쓴다.
func ChatIDOf(update telegram.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return update.CallbackQuery.From.ID, true
	default:
		return 0, false
	}
}
