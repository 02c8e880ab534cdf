//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"snappy/internal"
	"snappy/internal/controllers"
	"snappy/internal/providers"
	"snappy/internal/services"
	"snappy/internal/storage"
	"snappy/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewZstdCompressor,
		storage.NewArtifactManager,
		services.NewDefaultRegistry,
		services.NewSuiteService,
		services.NewReviewService,
		controllers.NewTestController,
		controllers.NewReviewController,
		internal.NewApp,
	)

	return nil, nil
}
