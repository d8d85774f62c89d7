// Package telegram: Telegram Bot API HTTP 클라이언트와 long polling 루프.
package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	cerrors "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/errors"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/model"
)

const (
	// maxMessageRunes: sendMessage 텍스트 한도
	maxMessageRunes = 4096
	voiceFileName   = "answer.ogg"
	maxAPIBody      = 8 << 20
)

// Client: Bot API 클라이언트. 토큰은 에러 메시지에 노출하지 않는다.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient: baseURL 예시 https://api.telegram.org
func NewClient(httpClient *http.Client, baseURL, token string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

type apiResponse[T any] struct {
	OK          bool   `json:"ok"`
	Result      T      `json:"result"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// call: JSON 본문으로 메서드를 호출하고 result를 T로 디코딩한다.
func call[T any](ctx context.Context, c *Client, method string, payload any) (T, error) {
	var zero T
	body, err := json.Marshal(payload)
	if err != nil {
		return zero, fmt.Errorf("telegram %s: marshal request: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), bytes.NewReader(body))
	if err != nil {
		return zero, fmt.Errorf("telegram %s: build request: %w", method, c.redact(err))
	}
	req.Header.Set("Content-Type", "application/json")
	return do[T](c, method, req)
}

func do[T any](c *Client, method string, req *http.Request) (T, error) {
	var zero T
	resp, err := c.http.Do(req)
	if err != nil {
		return zero, fmt.Errorf("telegram %s: %w", method, c.redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIBody))
	if err != nil {
		return zero, fmt.Errorf("telegram %s: read response: %w", method, c.redact(err))
	}

	var out apiResponse[T]
	decodeErr := json.Unmarshal(raw, &out)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		description := out.Description
		if decodeErr != nil || description == "" {
			description = strings.TrimSpace(string(raw))
		}
		return zero, cerrors.TelegramAPIError{Method: method, StatusCode: resp.StatusCode, Description: description}
	}
	if decodeErr != nil {
		return zero, fmt.Errorf("telegram %s: decode response: %w", method, decodeErr)
	}
	if !out.OK {
		return zero, cerrors.TelegramAPIError{Method: method, StatusCode: resp.StatusCode, Description: out.Description}
	}
	return out.Result, nil
}

// redact: *url.Error 메시지에 포함된 봇 토큰을 가린다.
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if c.token == "" || !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{
		Op:  urlErr.Op,
		URL: strings.ReplaceAll(urlErr.URL, c.token, "<token>"),
		Err: urlErr.Err,
	}
}

// GetUpdates: long polling으로 업데이트를 가져오고 다음 offset을 돌려준다.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, int64, error) {
	secs := int(timeout.Seconds())
	if secs < 0 {
		secs = 0
	}
	payload := map[string]any{
		"timeout":         secs,
		"allowed_updates": []string{"message", "callback_query"},
	}
	if offset > 0 {
		payload["offset"] = offset
	}

	updates, err := call[[]Update](ctx, c, "getUpdates", payload)
	if err != nil {
		return nil, offset, err
	}

	next := offset
	for _, u := range updates {
		if u.UpdateID >= next {
			next = u.UpdateID + 1
		}
	}
	return updates, next, nil
}

type sendMessageRequest struct {
	ChatID      int64                 `json:"chat_id"`
	Text        string                `json:"text"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// SendText: 텍스트를 보낸다. 한도를 넘는 텍스트는 순서대로 나눠 보낸다.
func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageRunes) {
		if _, err := call[json.RawMessage](ctx, c, "sendMessage", sendMessageRequest{ChatID: chatID, Text: chunk}); err != nil {
			return err
		}
	}
	return nil
}

// SendTextWithChoices: 선택지마다 한 줄짜리 인라인 버튼을 붙여 보낸다.
func (c *Client) SendTextWithChoices(ctx context.Context, chatID int64, text string, choices []model.Choice) error {
	keyboard := &InlineKeyboardMarkup{InlineKeyboard: make([][]InlineKeyboardButton, 0, len(choices))}
	for _, choice := range choices {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, []InlineKeyboardButton{
			{Text: choice.Label, CallbackData: choice.Data},
		})
	}
	_, err := call[json.RawMessage](ctx, c, "sendMessage", sendMessageRequest{ChatID: chatID, Text: text, ReplyMarkup: keyboard})
	return err
}

// AnswerCallback: 버튼 로딩 표시를 끝낸다.
func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	_, err := call[bool](ctx, c, "answerCallbackQuery", map[string]string{"callback_query_id": callbackID})
	return err
}

// GetFile: 파일 메타데이터 조회
func (c *Client) GetFile(ctx context.Context, fileID string) (File, error) {
	return call[File](ctx, c, "getFile", map[string]string{"file_id": fileID})
}

// FileURL: getFile의 file_path로 다운로드 URL을 만든다.
func (c *Client) FileURL(filePath string) string {
	return fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, strings.TrimLeft(filePath, "/"))
}

// VoiceFileURL: 음성 파일 ID를 QA API가 내려받을 수 있는 URL로 바꾼다.
func (c *Client) VoiceFileURL(ctx context.Context, fileID string) (string, error) {
	file, err := c.GetFile(ctx, fileID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(file.FilePath) == "" {
		return "", cerrors.TelegramAPIError{Method: "getFile", StatusCode: http.StatusOK, Description: "file_path missing"}
	}
	return c.FileURL(file.FilePath), nil
}

// SendVoice: 음성 바이트를 multipart로 업로드한다.
func (c *Client) SendVoice(ctx context.Context, chatID int64, audio []byte) error {
	if len(audio) == 0 {
		return errors.New("telegram sendVoice: empty audio")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := writeVoiceForm(mw, chatID, audio)
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendVoice"), pr)
	if err != nil {
		_ = pr.Close()
		return fmt.Errorf("telegram sendVoice: build request: %w", c.redact(err))
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	_, err = do[json.RawMessage](c, "sendVoice", req)
	_ = pr.Close()
	return err
}

func writeVoiceForm(mw *multipart.Writer, chatID int64, audio []byte) error {
	if err := mw.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("voice", voiceFileName)
	if err != nil {
		return err
	}
	_, err = part.Write(audio)
	return err
}

// SetMyCommands: 명령어 메뉴 등록
func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	_, err := call[bool](ctx, c, "setMyCommands", map[string]any{"commands": commands})
	return err
}

// SetWebhook: webhook 모드 등록. secret이 있으면 X-Telegram-Bot-Api-Secret-Token 헤더로 돌아온다.
func (c *Client) SetWebhook(ctx context.Context, webhookURL, secret string) error {
	payload := map[string]any{
		"url":             webhookURL,
		"allowed_updates": []string{"message", "callback_query"},
	}
	if secret != "" {
		payload["secret_token"] = secret
	}
	_, err := call[bool](ctx, c, "setWebhook", payload)
	return err
}

// DeleteWebhook: polling 전환 전에 webhook 등록을 해제한다. 대기 중인 업데이트는 유지한다.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	_, err := call[bool](ctx, c, "deleteWebhook", map[string]any{"drop_pending_updates": false})
	return err
}

// splitMessage: 룬 단위로 limit 이하 조각으로 나눈다. 가능하면 줄바꿈 위치에서 자른다.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
