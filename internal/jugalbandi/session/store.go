// Package session: 대화(conversation)별 선택 언어를 보관하는 저장소.
// SESSION_STORE_URL이 비어 있으면 프로세스 메모리, 있으면 Valkey를 사용한다.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/bootstrap"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/valkeyx"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/config"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/model"
)

// Store: 대화 ID → 선택 언어 매핑. 구현체는 동시 호출에 안전해야 한다.
type Store interface {
	// Get: 선택 언어를 조회한다. 기록이 없으면 LanguageUnset, nil.
	Get(ctx context.Context, conversationID string) (model.Language, error)
	// Set: 선택 언어를 기록한다. 이전 값은 덮어쓴다.
	Set(ctx context.Context, conversationID string, lang model.Language) error
	// Ping: readiness 체크용 연결 확인
	Ping(ctx context.Context) error
	Close()
}

// NewStore: 설정에 맞는 저장소 구현체를 생성한다.
func NewStore(ctx context.Context, cfg config.SessionConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if strings.TrimSpace(cfg.StoreURL) == "" {
		logger.Info("session_store_selected", "backend", "memory", "ttl", cfg.TTL, "max_entries", cfg.MaxEntries)
		return NewMemoryStore(cfg.MaxEntries, cfg.TTL), nil
	}

	valkeyCfg, err := valkeyx.ParseURL(cfg.StoreURL)
	if err != nil {
		return nil, fmt.Errorf("parse session store url failed: %w", err)
	}
	// 세션 조회는 DoCache를 쓰지 않는다
	valkeyCfg.DisableCache = true
	client, closeFn, err := bootstrap.NewAndPingValkeyClient(ctx, valkeyCfg, "session", logger)
	if err != nil {
		return nil, err
	}

	logger.Info("session_store_selected", "backend", "valkey", "addr", valkeyCfg.Addr, "ttl", cfg.TTL)
	store := NewValkeyStore(client, cfg.TTL, logger)
	store.closeFn = closeFn
	return store, nil
}

func validateID(conversationID string) error {
	if strings.TrimSpace(conversationID) == "" {
		return fmt.Errorf("conversation id is empty")
	}
	return nil
}
