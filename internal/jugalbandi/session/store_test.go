package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/testhelper"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/config"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/model"
)

func storeBackends(t *testing.T) map[string]Store {
	t.Helper()
	client, _ := testhelper.NewMiniValkey(t)
	return map[string]Store{
		"memory": NewMemoryStore(0, 0),
		"valkey": NewValkeyStore(client, 0, testhelper.DiscardLogger()),
	}
}

func TestStore_GetUnsetReturnsAbsent(t *testing.T) {
	for name, store := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			lang, err := store.Get(context.Background(), "42")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lang != model.LanguageUnset {
				t.Errorf("expected unset, got %s", lang)
			}
		})
	}
}

func TestStore_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set(ctx, "42", model.LanguageHindi); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := store.Set(ctx, "42", model.LanguageKannada); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := store.Get(ctx, "42")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got != model.LanguageKannada {
				t.Errorf("expected Kannada, got %s", got)
			}

			// 다른 대화에는 영향이 없어야 한다
			other, err := store.Get(ctx, "43")
			if err != nil {
				t.Fatalf("get other: %v", err)
			}
			if other != model.LanguageUnset {
				t.Errorf("expected other conversation unset, got %s", other)
			}
		})
	}
}

func TestStore_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set(ctx, "42", model.Language("Tamil")); err == nil {
				t.Error("expected error for unsupported language")
			}
			if err := store.Set(ctx, "42", model.LanguageUnset); err == nil {
				t.Error("expected error for unset language")
			}
			if err := store.Set(ctx, " ", model.LanguageEnglish); err == nil {
				t.Error("expected error for empty conversation id")
			}
			if _, err := store.Get(ctx, ""); err == nil {
				t.Error("expected error for empty conversation id")
			}
		})
	}
}

func TestStore_ConcurrentWritesDifferentConversations(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := range 50 {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					lang := model.SupportedLanguages[i%len(model.SupportedLanguages)]
					if err := store.Set(ctx, fmt.Sprintf("chat-%d", i), lang); err != nil {
						t.Errorf("set chat-%d: %v", i, err)
					}
				}(i)
			}
			wg.Wait()

			for i := range 50 {
				want := model.SupportedLanguages[i%len(model.SupportedLanguages)]
				got, err := store.Get(ctx, fmt.Sprintf("chat-%d", i))
				if err != nil {
					t.Fatalf("get chat-%d: %v", i, err)
				}
				if got != want {
					t.Errorf("chat-%d: expected %s, got %s", i, want, got)
				}
			}
		})
	}
}

func TestMemoryStore_Eviction(t *testing.T) {
	ctx := context.Background()
	bounded := NewMemoryStore(1, 0)
	_ = bounded.Set(ctx, "a", model.LanguageEnglish)
	_ = bounded.Set(ctx, "b", model.LanguageHindi)
	if got, _ := bounded.Get(ctx, "a"); got != model.LanguageUnset {
		t.Errorf("expected oldest entry evicted, got %s", got)
	}
	if got, _ := bounded.Get(ctx, "b"); got != model.LanguageHindi {
		t.Errorf("expected newest entry kept, got %s", got)
	}
	if bounded.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", bounded.Len())
	}
}

func TestValkeyStore_KeyFormatAndTTL(t *testing.T) {
	client, mini := testhelper.NewMiniValkey(t)
	store := NewValkeyStore(client, time.Hour, testhelper.DiscardLogger())
	ctx := context.Background()

	if err := store.Set(ctx, "-100123", model.LanguageHindi); err != nil {
		t.Fatalf("set: %v", err)
	}

	key := "jugalbandi:session:-100123"
	if !mini.Exists(key) {
		t.Fatalf("expected key %s to exist, keys=%v", key, mini.Keys())
	}
	if ttl := mini.TTL(key); ttl != time.Hour {
		t.Errorf("expected 1h ttl, got %v", ttl)
	}

	mini.FastForward(2 * time.Hour)
	got, err := store.Get(ctx, "-100123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != model.LanguageUnset {
		t.Errorf("expected expired session unset, got %s", got)
	}
}

func TestValkeyStore_CorruptValue(t *testing.T) {
	client, mini := testhelper.NewMiniValkey(t)
	store := NewValkeyStore(client, 0, testhelper.DiscardLogger())

	if err := mini.Set("jugalbandi:session:7", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := store.Get(context.Background(), "7"); err == nil {
		t.Fatal("expected unmarshal error")
	}

	if err := mini.Set("jugalbandi:session:8", `{"conversation_id":"8","language":"Tamil"}`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := store.Get(context.Background(), "8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != model.LanguageUnset {
		t.Errorf("expected unknown stored language treated as unset, got %s", got)
	}
}

func TestNewStore_SelectsBackend(t *testing.T) {
	ctx := context.Background()
	logger := testhelper.DiscardLogger()

	memStore, err := NewStore(ctx, config.SessionConfig{}, logger)
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	defer memStore.Close()
	if _, ok := memStore.(*MemoryStore); !ok {
		t.Errorf("expected *MemoryStore, got %T", memStore)
	}

	_, mini := testhelper.NewMiniValkey(t)
	valkeyStore, err := NewStore(ctx, config.SessionConfig{StoreURL: "redis://" + mini.Addr()}, logger)
	if err != nil {
		t.Fatalf("valkey store: %v", err)
	}
	defer valkeyStore.Close()
	if _, ok := valkeyStore.(*ValkeyStore); !ok {
		t.Errorf("expected *ValkeyStore, got %T", valkeyStore)
	}
	if err := valkeyStore.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}

	if _, err := NewStore(ctx, config.SessionConfig{StoreURL: "http://nope"}, logger); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}
