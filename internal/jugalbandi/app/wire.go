//go:build wireinject

package app

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/bootstrap"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/config"
)

//go:generate go run github.com/google/wire/cmd/wire@v0.7.0
func Initialize(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*bootstrap.ServerApp, func(), error) {
	wire.Build(
		jugalbandiProviderSet,
	)
	return nil, nil, nil
}
