package valkeyx

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"
)

// SetString: 키에 문자열 값을 저장한다. ttl이 0보다 크면 EX로 만료를 건다.
func SetString(ctx context.Context, client valkey.Client, key, value string, ttl time.Duration) error {
	var cmd valkey.Completed
	if ttl > 0 {
		cmd = client.B().Set().Key(key).Value(value).Ex(ttl).Build()
	} else {
		cmd = client.B().Set().Key(key).Value(value).Build()
	}
	if err := client.Do(ctx, cmd).Error(); err != nil {
		return WrapRedisError("set", err)
	}
	return nil
}

// GetBytes: 키의 값을 읽는다. 키가 없으면 ok=false, err=nil을 반환한다.
func GetBytes(ctx context.Context, client valkey.Client, key string) ([]byte, bool, error) {
	raw, err := client.Do(ctx, client.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if IsNil(err) {
			return nil, false, nil
		}
		return nil, false, WrapRedisError("get", err)
	}
	return raw, true, nil
}
