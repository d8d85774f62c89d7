//go:build wireinject

package app

import "github.com/google/wire"

var jugalbandiProviderSet = wire.NewSet(
	newTelemetryProvider,
	newMessageProvider,
	newRecorder,
	newTelegramClient,
	newDispatcher,
	newSessionStore,
	newHandler,
	newChatQueue,
	newRouter,
	newHTTPServer,
	newServerApp,
)
