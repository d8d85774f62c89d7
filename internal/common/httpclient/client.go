package httpclient

import (
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/http2"

	commonconfig "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/config"
)

// Config: 외부 API 호출용 http.Client 설정입니다.
type Config = commonconfig.HTTPClientConfig

// New: 설정에 맞는 http.Client를 생성합니다. transport는 otelhttp로 감싸 요청마다 client span을 남깁니다.
// TracerProvider가 등록되지 않았으면 span은 no-op입니다.
func New(cfg Config) (*http.Client, error) {
	transport, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(transport),
	}, nil
}

// newTransport: HTTP2Enabled이면 TLS 연결에서 h2를 협상하도록 transport를 구성합니다.
func newTransport(cfg Config) (*http.Transport, error) {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     false,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if cfg.HTTP2Enabled {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, err
		}
	}

	return transport, nil
}
