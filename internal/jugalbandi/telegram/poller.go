package telegram

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// UpdateSource: getUpdates 추상화 (테스트 대역 주입용)
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, int64, error)
}

// UpdateHandler: 업데이트 하나를 받는다. 호출자는 오래 막지 않아야 한다.
type UpdateHandler func(ctx context.Context, update Update)

// Poller: long polling 루프. getUpdates 실패는 지수 백오프 후 다시 시도한다.
type Poller struct {
	source     UpdateSource
	timeout    time.Duration
	handle     UpdateHandler
	logger     *slog.Logger
	newBackOff func() backoff.BackOff
}

// NewPoller: timeout은 getUpdates long polling 대기 시간이다.
func NewPoller(source UpdateSource, timeout time.Duration, handle UpdateHandler, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		source:     source,
		timeout:    timeout,
		handle:     handle,
		logger:     logger,
		newBackOff: defaultBackOff,
	}
}

func defaultBackOff() backoff.BackOff {
	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = 1 * time.Second
	retryBackoff.MaxInterval = 30 * time.Second
	retryBackoff.Multiplier = 2.0
	retryBackoff.RandomizationFactor = 0.2
	retryBackoff.MaxElapsedTime = 0
	return retryBackoff
}

// Run: ctx가 끝날 때까지 업데이트를 받아 handle에 넘긴다. 종료 시 nil을 반환한다.
func (p *Poller) Run(ctx context.Context) error {
	retryBackoff := p.newBackOff()
	var offset int64

	p.logger.Info("polling_start", "timeout", p.timeout)
	for {
		if ctx.Err() != nil {
			p.logger.Info("polling_stop", "reason", "shutdown")
			return nil
		}

		updates, next, err := p.source.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("polling_stop", "reason", "shutdown")
				return nil
			}
			wait := retryBackoff.NextBackOff()
			if wait == backoff.Stop {
				return err
			}
			p.logger.Warn("get_updates_failed", "err", err, "retry_in", wait.Round(time.Millisecond))
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				p.logger.Info("polling_stop", "reason", "shutdown")
				return nil
			case <-timer.C:
			}
			continue
		}

		retryBackoff.Reset()
		for _, update := range updates {
			p.handle(ctx, update)
		}
		offset = next
	}
}
