// Package testhelper: 테스트 전용 헬퍼 (Valkey, 로거)
package testhelper

import (
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/valkey-io/valkey-go"
)

// NewMiniValkey: miniredis 인스턴스와 여기에 연결된 Valkey 클라이언트를 생성합니다.
// 둘 다 테스트 종료 시 정리됩니다.
func NewMiniValkey(t *testing.T) (valkey.Client, *miniredis.Miniredis) {
	t.Helper()

	mini := miniredis.RunT(t)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{mini.Addr()},
		DisableCache: true,
	})
	if err != nil {
		t.Fatalf("create valkey client for miniredis: %v", err)
	}
	t.Cleanup(client.Close)
	return client, mini
}

// DiscardLogger: 출력을 버리는 slog 로거를 반환합니다.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
