package session

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/cache"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/model"
)

// MemoryStore: 프로세스 메모리 세션 저장소. 재시작하면 모든 선택이 사라진다.
type MemoryStore struct {
	sessions *cache.TTLLRUCache[model.Session]
	now      func() time.Time
}

// NewMemoryStore: maxEntries<=0 이면 무제한, ttl<=0 이면 만료 없음.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: cache.NewTTLLRUCache[model.Session](maxEntries, ttl),
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, conversationID string) (model.Language, error) {
	if err := validateID(conversationID); err != nil {
		return model.LanguageUnset, err
	}
	sess, ok := s.sessions.Get(conversationID)
	if !ok {
		return model.LanguageUnset, nil
	}
	return sess.Language, nil
}

func (s *MemoryStore) Set(_ context.Context, conversationID string, lang model.Language) error {
	if err := validateID(conversationID); err != nil {
		return err
	}
	if !lang.IsSet() {
		return fmt.Errorf("unsupported language %q", string(lang))
	}
	s.sessions.Set(conversationID, model.Session{
		ConversationID: conversationID,
		Language:       lang,
		UpdatedAt:      s.now(),
	})
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() {}

// Len: 보관 중인 세션 수 (만료 전 항목 포함)
func (s *MemoryStore) Len() int {
	return s.sessions.Len()
}
