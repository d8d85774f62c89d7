package valkeyx

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

const defaultPort = "6379"

// ParseURL: redis://[user:pass@]host[:port][/db] 또는 host[:port] 형식을 Config로 변환한다.
// rediss:// 스킴은 TLS를 사용한다.
func ParseURL(raw string) (Config, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Config{}, errors.New("valkey url is empty")
	}
	if !strings.Contains(raw, "://") {
		return parseAddr(raw)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse valkey url: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "redis", "rediss", "valkey", "valkeys":
	default:
		return Config{}, fmt.Errorf("unsupported valkey url scheme: %q", parsed.Scheme)
	}

	host := parsed.Hostname()
	if host == "" {
		return Config{}, errors.New("valkey host missing")
	}
	port := parsed.Port()
	if port == "" {
		port = defaultPort
	}

	db := 0
	if path := strings.TrimPrefix(strings.TrimSpace(parsed.Path), "/"); path != "" {
		db, err = strconv.Atoi(path)
		if err != nil {
			return Config{}, fmt.Errorf("invalid valkey db %q: %w", path, err)
		}
		if db < 0 {
			return Config{}, fmt.Errorf("invalid valkey db: %d", db)
		}
	}

	cfg := Config{
		Addr:   net.JoinHostPort(host, port),
		DB:     db,
		UseTLS: strings.HasSuffix(strings.ToLower(parsed.Scheme), "s"),
	}
	if parsed.User != nil {
		cfg.Username = parsed.User.Username()
		cfg.Password, _ = parsed.User.Password()
	}
	return cfg, nil
}

func parseAddr(addr string) (Config, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		var addrErr *net.AddrError
		if !errors.As(err, &addrErr) || addrErr.Err != "missing port in address" {
			return Config{}, fmt.Errorf("invalid valkey address: %w", err)
		}
		host = strings.TrimSuffix(strings.TrimPrefix(addr, "["), "]")
		port = defaultPort
	}
	if strings.TrimSpace(host) == "" {
		return Config{}, errors.New("valkey host missing")
	}
	return Config{Addr: net.JoinHostPort(host, port)}, nil
}
