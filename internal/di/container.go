// Package di provides dependency injection configuration for the GrooveCharts server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/groovecharts/groovecharts-server/internal/auth"
	"github.com/groovecharts/groovecharts-server/internal/config"
	"github.com/groovecharts/groovecharts-server/internal/di/providers"
	"github.com/groovecharts/groovecharts-server/internal/logger"
	"github.com/groovecharts/groovecharts-server/internal/media/images"
	"github.com/groovecharts/groovecharts-server/internal/service"
	"github.com/groovecharts/groovecharts-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Storage layer
	do.Provide(injector, providers.ProvideImageStorage)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideImageService)
	do.Provide(injector, providers.ProvideChartService)
	do.Provide(injector, providers.ProvideGroupService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of the full dependency graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*images.Storage](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.ImageService](injector)
	_ = do.MustInvoke[*service.ChartService](injector)
	_ = do.MustInvoke[*service.GroupService](injector)

	// Server last, once everything it depends on is up
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Backfill the search index when it is fresh but data exists
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
