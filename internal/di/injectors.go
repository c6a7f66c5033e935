//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"spotter/internal"
	"spotter/internal/connectivity"
	"spotter/internal/controllers"
	"spotter/internal/providers"
	"spotter/internal/queue"
	"spotter/internal/services"
	"spotter/internal/structures"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	provideLogger,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,

	queue.NewZstdCompressor,
	provideQueue,
	provideRemoteStore,
	providePinger,
	connectivity.NewMonitor,
	services.NewSightingService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		coreSet,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitRuntime(cfg *structures.CliFlags) (*internal.Runtime, func(), error) {

	wire.Build(
		coreSet,
		internal.NewRuntime,
	)

	return nil, nil, nil
}
