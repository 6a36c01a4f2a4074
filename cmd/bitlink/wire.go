//go:build wireinject
// +build wireinject

package main

import (
	"bitlink/config"
	"bitlink/internal/command"
	"bitlink/internal/database"
	"bitlink/internal/service"
	"bitlink/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireCommand init application.
func wireCommand(*config.Store, *zap.Logger) (*command.Command, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			telemetry.ProviderSet,
			newConfiguration,
			newHttpClient,
			command.ProviderSet,
		),
	)
}
