package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/config"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/telegram"
)

const intakeSetupTimeout = 15 * time.Second

// intakeClient: 업데이트 수신 설정에 필요한 Bot API 메서드
type intakeClient interface {
	telegram.UpdateSource
	SetMyCommands(ctx context.Context, commands []telegram.BotCommand) error
	SetWebhook(ctx context.Context, webhookURL, secret string) error
	DeleteWebhook(ctx context.Context) error
}

// telegramIntake: 수신 모드에 따라 long polling 루프를 돌리거나 webhook을 등록하고 종료를 기다린다.
type telegramIntake struct {
	cfg      config.TelegramConfig
	client   intakeClient
	submit   func(telegram.Update)
	logger   *slog.Logger
	commands []telegram.BotCommand
}

func (t *telegramIntake) Run(ctx context.Context) error {
	if t.cfg.RegisterCommands {
		t.registerCommands(ctx)
	}

	switch t.cfg.Mode {
	case config.TelegramModeWebhook:
		setupCtx, cancel := context.WithTimeout(ctx, intakeSetupTimeout)
		err := t.client.SetWebhook(setupCtx, t.cfg.WebhookURL, t.cfg.WebhookSecret)
		cancel()
		if err != nil {
			return fmt.Errorf("set webhook failed: %w", err)
		}
		t.logger.Info("telegram_webhook_registered", "path", config.WebhookPath)
		<-ctx.Done()
		return nil
	default:
		// getUpdates는 webhook이 걸려 있으면 409를 돌려준다
		setupCtx, cancel := context.WithTimeout(ctx, intakeSetupTimeout)
		err := t.client.DeleteWebhook(setupCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("delete webhook failed: %w", err)
		}
		poller := telegram.NewPoller(t.client, t.cfg.PollTimeout, func(_ context.Context, update telegram.Update) {
			t.submit(update)
		}, t.logger)
		return poller.Run(ctx)
	}
}

func (t *telegramIntake) registerCommands(ctx context.Context) {
	setupCtx, cancel := context.WithTimeout(ctx, intakeSetupTimeout)
	defer cancel()
	if err := t.client.SetMyCommands(setupCtx, t.commands); err != nil {
		t.logger.Warn("telegram_set_commands_failed", "err", err)
		return
	}
	t.logger.Info("telegram_commands_registered", "count", len(t.commands))
}
