// Package dispatcher: 질의 요청을 Jugalbandi QA API 호출 한 번으로 보내고 응답을 Outcome으로 정규화한다.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/config"
	jberrors "github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/errors"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/metrics"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/model"
)

const (
	// maxResponseBytes: QA 응답 본문 상한
	maxResponseBytes = 4 << 20
	// maxAudioBytes: Telegram sendVoice 업로드 한도와 맞춘 음성 파일 상한
	maxAudioBytes = 50 << 20
)

// Dispatcher: QA API 클라이언트. 재시도 없이 요청당 정확히 한 번 호출한다.
type Dispatcher struct {
	baseURL    *url.URL
	uuidNumber string
	client     *http.Client
	recorder   *metrics.Recorder
	logger     *slog.Logger
}

// New: Dispatcher를 생성한다. recorder는 nil이어도 된다.
func New(cfg config.JugalbandiConfig, client *http.Client, recorder *metrics.Recorder, logger *slog.Logger) (*Dispatcher, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse jugalbandi base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("jugalbandi base url must be absolute: %q", cfg.BaseURL)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}
	if strings.TrimSpace(cfg.UUIDNumber) == "" {
		return nil, errors.New("jugalbandi uuid number is empty")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		baseURL:    baseURL,
		uuidNumber: cfg.UUIDNumber,
		client:     client,
		recorder:   recorder,
		logger:     logger,
	}, nil
}

// Dispatch: 요청을 엔드포인트 하나로 라우팅해 호출하고 결과를 정규화한다.
// 에러를 반환하지 않고 모든 실패를 Failure로 표현한다.
func (d *Dispatcher) Dispatch(ctx context.Context, req model.QueryRequest) model.Outcome {
	if err := req.Validate(); err != nil {
		return model.Failure{Reason: ReasonInvalidRequest, Err: err}
	}

	call := selectEndpoint(d.uuidNumber, req)
	started := time.Now()

	outcome := d.invoke(ctx, call)

	elapsed := time.Since(started)
	result := "success"
	if failure, ok := outcome.(model.Failure); ok {
		result = jberrors.Kind(failure.Err)
		d.logger.Warn("query_dispatch_failed",
			"endpoint", call.endpoint,
			"language", req.Language.String(),
			"voice", req.HasVoice(),
			"reason", failure.Reason,
			"kind", result,
			"elapsed", elapsed,
			"err", failure.Err,
		)
	} else {
		d.logger.Debug("query_dispatched", "endpoint", call.endpoint, "language", req.Language.String(), "elapsed", elapsed)
	}
	d.recorder.ObserveDispatch(call.endpoint, result, elapsed)
	return outcome
}

func (d *Dispatcher) invoke(ctx context.Context, call endpointCall) model.Outcome {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, call.resolve(d.baseURL), nil)
	if err != nil {
		return model.Failure{Reason: ReasonTransport, Err: jberrors.TransportError{Endpoint: call.endpoint, Err: redactURLError(err)}}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return model.Failure{Reason: ReasonTransport, Err: jberrors.TransportError{Endpoint: call.endpoint, Err: redactURLError(err)}}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.Failure{Reason: ReasonTransport, Err: jberrors.TransportError{Endpoint: call.endpoint, Err: redactURLError(err)}}
	}
	return normalizeResponse(call.endpoint, resp.StatusCode, body)
}

// FetchAudio: 답변 합성 음성 파일을 한 번 내려받는다.
func (d *Dispatcher) FetchAudio(ctx context.Context, audioURL string) ([]byte, error) {
	data, err := d.fetchAudio(ctx, audioURL)
	if err != nil {
		var audioErr jberrors.AudioFetchError
		if errors.As(err, &audioErr) {
			audioErr.URL = redactURL(audioErr.URL)
			audioErr.Err = redactURLError(audioErr.Err)
			return nil, audioErr
		}
		return nil, err
	}
	return data, nil
}

func (d *Dispatcher) fetchAudio(ctx context.Context, audioURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, jberrors.AudioFetchError{URL: audioURL, Err: err}
	}

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, jberrors.AudioFetchError{URL: audioURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, jberrors.AudioFetchError{URL: audioURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes+1))
	if err != nil {
		return nil, jberrors.AudioFetchError{URL: audioURL, StatusCode: resp.StatusCode, Err: err}
	}
	if len(data) == 0 {
		return nil, jberrors.AudioFetchError{URL: audioURL, StatusCode: resp.StatusCode, Err: errors.New("empty audio body")}
	}
	if len(data) > maxAudioBytes {
		return nil, jberrors.AudioFetchError{URL: audioURL, StatusCode: resp.StatusCode, Err: errors.New("audio exceeds upload limit")}
	}
	return data, nil
}

// redactedValue: 로그에 남기는 쿼리 값 자리표시
const redactedValue = "REDACTED"

// redactURL: 쿼리 값과 userinfo를 지운다. 쿼리에는 uuid_number와 봇 토큰이 든 Telegram 파일 URL이 실린다.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable url>"
	}
	u.User = nil
	if u.RawQuery == "" {
		return u.String()
	}

	keys := make([]string, 0)
	for key := range u.Query() {
		keys = append(keys, url.QueryEscape(key)+"="+redactedValue)
	}
	sort.Strings(keys)
	u.RawQuery = strings.Join(keys, "&")
	return u.String()
}

// redactURLError: *url.Error의 URL만 redactURL로 바꿔 다시 감싼다. 다른 에러는 그대로 둔다.
func redactURLError(err error) error {
	var urlErr *url.Error
	if err == nil || !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{Op: urlErr.Op, URL: redactURL(urlErr.URL), Err: urlErr.Err}
}
