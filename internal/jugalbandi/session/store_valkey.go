package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	cerrors "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/errors"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/valkeyx"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/config"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/model"
)

// ValkeyStore: 세션을 JSON으로 직렬화해 Valkey에 저장한다. 여러 봇 인스턴스가 같은 선택을 공유한다.
type ValkeyStore struct {
	client  valkey.Client
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
	closeFn func()
}

// NewValkeyStore: ttl<=0 이면 만료 없이 저장한다.
func NewValkeyStore(client valkey.Client, ttl time.Duration, logger *slog.Logger) *ValkeyStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ValkeyStore{
		client: client,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

func sessionKey(conversationID string) string {
	return valkeyx.BuildKey(config.SessionKeyPrefix, conversationID)
}

func (s *ValkeyStore) Get(ctx context.Context, conversationID string) (model.Language, error) {
	if err := validateID(conversationID); err != nil {
		return model.LanguageUnset, err
	}

	raw, ok, err := valkeyx.GetBytes(ctx, s.client, sessionKey(conversationID))
	if err != nil {
		return model.LanguageUnset, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return model.LanguageUnset, nil
	}

	var sess model.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return model.LanguageUnset, cerrors.RedisError{Operation: "session_unmarshal", Err: err}
	}
	// 저장 이후 지원 목록에서 빠진 언어는 미선택으로 본다
	if !sess.Language.IsSet() {
		s.logger.Warn("session_language_unknown", "conversation_id", conversationID, "language", string(sess.Language))
		return model.LanguageUnset, nil
	}
	return sess.Language, nil
}

func (s *ValkeyStore) Set(ctx context.Context, conversationID string, lang model.Language) error {
	if err := validateID(conversationID); err != nil {
		return err
	}
	if !lang.IsSet() {
		return fmt.Errorf("unsupported language %q", string(lang))
	}

	payload, err := json.Marshal(model.Session{
		ConversationID: conversationID,
		Language:       lang,
		UpdatedAt:      s.now().UTC(),
	})
	if err != nil {
		return cerrors.RedisError{Operation: "session_marshal", Err: err}
	}

	if err := valkeyx.SetString(ctx, s.client, sessionKey(conversationID), string(payload), s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.logger.Debug("session_saved", "conversation_id", conversationID, "language", string(lang))
	return nil
}

func (s *ValkeyStore) Ping(ctx context.Context) error {
	return valkeyx.Ping(ctx, s.client)
}

// Close: NewStore로 만든 경우 클라이언트까지 닫는다. 외부에서 주입한 클라이언트는 호출자가 닫는다.
func (s *ValkeyStore) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}
