//go:build wireinject
// +build wireinject

package main

import (
	"pantry/config"
	"pantry/internal/command"
	"pantry/internal/cron"
	"pantry/internal/fluentd"
	"pantry/internal/fluentd/repository"
	"pantry/internal/handler"
	"pantry/internal/middleware"
	"pantry/internal/router"
	"pantry/internal/service"
	"pantry/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			fluentd.ProviderSet,
			repository.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			newHttpClient,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init application.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(
		wire.Build(
			command.ProviderSet,
			service.ProviderSet,
			fluentd.ProviderSet,
			repository.ProviderSet,
			telemetry.ProviderSet,
			newHttpClient,
		),
	)
}
