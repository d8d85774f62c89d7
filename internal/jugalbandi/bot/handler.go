// Package bot: Telegram 업데이트를 해석해 언어 선택과 질의 중계를 수행한다.
package bot

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	cerrors "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/errors"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/messageprovider"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/messages"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/metrics"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/model"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/telegram"
)

// Messenger: 채팅 전송 포트
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendTextWithChoices(ctx context.Context, chatID int64, text string, choices []model.Choice) error
	SendVoice(ctx context.Context, chatID int64, audio []byte) error
	AnswerCallback(ctx context.Context, callbackID string) error
	VoiceFileURL(ctx context.Context, fileID string) (string, error)
}

// QueryDispatcher: QA API 포트
type QueryDispatcher interface {
	Dispatch(ctx context.Context, req model.QueryRequest) model.Outcome
	FetchAudio(ctx context.Context, audioURL string) ([]byte, error)
}

// SessionStore: 대화별 선택 언어 저장소 포트
type SessionStore interface {
	Get(ctx context.Context, conversationID string) (model.Language, error)
	Set(ctx context.Context, conversationID string, lang model.Language) error
}

// Handler: 업데이트 하나를 동기적으로 처리한다. 채팅 간 직렬화는 ChatQueue가 맡는다.
type Handler struct {
	messenger   Messenger
	dispatcher  QueryDispatcher
	sessions    SessionStore
	msgProvider *messageprovider.Provider
	botName     string
	recorder    *metrics.Recorder
	logger      *slog.Logger
}

// NewHandler 는 Handler를 생성한다. recorder는 nil이어도 된다.
func NewHandler(
	messenger Messenger,
	dispatcher QueryDispatcher,
	sessions SessionStore,
	msgProvider *messageprovider.Provider,
	botName string,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		messenger:   messenger,
		dispatcher:  dispatcher,
		sessions:    sessions,
		msgProvider: msgProvider,
		botName:     botName,
		recorder:    recorder,
		logger:      logger,
	}
}

// HandleUpdate: 업데이트를 분류해 해당 흐름으로 보낸다.
func (h *Handler) HandleUpdate(ctx context.Context, update telegram.Update) {
	event := ParseEvent(update)
	h.recorder.ObserveUpdate(event.Kind.String())

	switch event.Kind {
	case EventStart:
		h.handleStart(ctx, event)
	case EventSetLanguage:
		h.sendLanguageMenu(ctx, event.ChatID)
	case EventLanguageCallback:
		h.handleLanguageCallback(ctx, event)
	case EventTextQuery, EventVoiceQuery:
		h.handleQuery(ctx, event)
	default:
		if event.CallbackID != "" {
			h.answerCallback(ctx, event.CallbackID)
		}
		h.logger.Debug("update_ignored", "update_id", update.UpdateID)
	}
}

func (h *Handler) handleStart(ctx context.Context, event Event) {
	welcome := h.msgProvider.Get(messages.Welcome,
		messageprovider.P("name", event.UserName),
		messageprovider.P("bot_name", h.botName),
	)
	h.send(ctx, event.ChatID, welcome)
	h.sendLanguageMenu(ctx, event.ChatID)
}

// LanguageChoices: 언어 선택 메뉴 버튼 (지원 언어 순서, 한 줄에 하나)
func (h *Handler) LanguageChoices() []model.Choice {
	choices := make([]model.Choice, 0, len(model.SupportedLanguages))
	for _, lang := range model.SupportedLanguages {
		choices = append(choices, model.Choice{
			Label: h.msgProvider.Get(messages.LanguageButton(lang)),
			Data:  model.LanguageCallbackData(lang),
		})
	}
	return choices
}

func (h *Handler) sendLanguageMenu(ctx context.Context, chatID int64) {
	err := h.messenger.SendTextWithChoices(ctx, chatID, h.msgProvider.Get(messages.LanguagePrompt), h.LanguageChoices())
	if err != nil {
		h.logger.Warn("send_failed", "chat_id", chatID, "kind", "language_menu", "err", err)
	}
}

func (h *Handler) handleLanguageCallback(ctx context.Context, event Event) {
	h.answerCallback(ctx, event.CallbackID)

	lang, err := model.ParseLanguageCallback(event.CallbackData)
	if err != nil {
		if cerrors.IsExpectedUserBehavior(err) {
			h.logger.Info("language_callback_rejected", "chat_id", event.ChatID, "err", err)
		} else {
			h.logger.Warn("language_callback_failed", "chat_id", event.ChatID, "err", err)
		}
		h.send(ctx, event.ChatID, h.msgProvider.Get(ErrorMessageKey(err)))
		h.sendLanguageMenu(ctx, event.ChatID)
		return
	}

	if err := h.sessions.Set(ctx, conversationID(event.ChatID), lang); err != nil {
		h.logger.Error("session_set_failed", "chat_id", event.ChatID, "language", lang.String(), "err", err)
		h.send(ctx, event.ChatID, h.msgProvider.Get(messages.ErrorGeneric))
		return
	}

	h.logger.Info("language_selected", "chat_id", event.ChatID, "language", lang.String())
	h.send(ctx, event.ChatID, h.msgProvider.Get(messages.LanguageConfirmed(lang)))
}

func (h *Handler) handleQuery(ctx context.Context, event Event) {
	lang := h.currentLanguage(ctx, event.ChatID)
	if !lang.IsSet() {
		// 언어 선택 전 질의는 보관하지 않는다
		h.logger.Info("query_dropped_no_language", "chat_id", event.ChatID, "kind", event.Kind.String())
		h.sendLanguageMenu(ctx, event.ChatID)
		return
	}

	req := model.QueryRequest{Language: lang}
	if event.Kind == EventVoiceQuery {
		voiceURL, err := h.messenger.VoiceFileURL(ctx, event.VoiceFileID)
		if err != nil {
			h.logger.Warn("voice_file_resolve_failed", "chat_id", event.ChatID, "err", err)
			h.send(ctx, event.ChatID, h.msgProvider.Get(messages.ErrorGeneric))
			return
		}
		req.VoiceURL = voiceURL
	} else {
		req.Text = norm.NFC.String(event.Text)
	}

	h.send(ctx, event.ChatID, h.msgProvider.Get(messages.QueryWaiting(lang)))

	outcome := h.dispatcher.Dispatch(ctx, req)
	switch result := outcome.(type) {
	case model.Success:
		h.deliverAnswer(ctx, event.ChatID, result)
	case model.Failure:
		h.logger.Info("query_failed", "chat_id", event.ChatID, "reason", result.Reason)
		h.send(ctx, event.ChatID, h.msgProvider.Get(ErrorMessageKey(result.Err)))
	}
}

// currentLanguage: 저장소 오류는 미선택으로 취급한다. 사용자는 메뉴를 다시 받는다.
func (h *Handler) currentLanguage(ctx context.Context, chatID int64) model.Language {
	lang, err := h.sessions.Get(ctx, conversationID(chatID))
	if err != nil {
		h.logger.Warn("session_get_failed", "chat_id", chatID, "err", err)
		return model.LanguageUnset
	}
	return lang
}

func (h *Handler) deliverAnswer(ctx context.Context, chatID int64, success model.Success) {
	blank := strings.TrimSpace(success.Answer) == ""
	switch {
	case blank && !success.HasAudio():
		// 전달할 내용이 없으면 대기 메시지로 끝나지 않게 일반 오류를 보낸다
		h.logger.Warn("empty_answer", "chat_id", chatID, "audio", false)
		h.send(ctx, chatID, h.msgProvider.Get(messages.ErrorGeneric))
		return
	case blank:
		h.logger.Warn("empty_answer", "chat_id", chatID, "audio", true)
	default:
		h.send(ctx, chatID, success.Answer)
	}

	if !success.HasAudio() {
		return
	}

	audio, err := h.dispatcher.FetchAudio(ctx, success.AudioURL)
	if err != nil {
		h.recorder.ObserveAudio("fetch_failed")
		h.logger.Warn("answer_audio_fetch_failed", "chat_id", chatID, "err", err)
		h.send(ctx, chatID, h.msgProvider.Get(ErrorMessageKey(err)))
		return
	}
	if err := h.messenger.SendVoice(ctx, chatID, audio); err != nil {
		h.recorder.ObserveAudio("send_failed")
		h.logger.Warn("send_failed", "chat_id", chatID, "kind", "voice", "err", err)
		return
	}
	h.recorder.ObserveAudio("sent")
}

func (h *Handler) answerCallback(ctx context.Context, callbackID string) {
	if callbackID == "" {
		return
	}
	if err := h.messenger.AnswerCallback(ctx, callbackID); err != nil {
		h.logger.Debug("answer_callback_failed", "callback_id", callbackID, "err", err)
	}
}

func (h *Handler) send(ctx context.Context, chatID int64, text string) {
	if err := h.messenger.SendText(ctx, chatID, text); err != nil {
		h.logger.Warn("send_failed", "chat_id", chatID, "kind", "text", "err", err)
	}
}

// BotCommands: setMyCommands로 등록할 명령어 목록
func (h *Handler) BotCommands() []telegram.BotCommand {
	return []telegram.BotCommand{
		{Command: CommandStart, Description: h.msgProvider.Get(messages.CommandStart)},
		{Command: CommandSetLanguage, Description: h.msgProvider.Get(messages.CommandSetLanguage)},
	}
}

func conversationID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
