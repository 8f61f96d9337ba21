package providers

import (
	"github.com/samber/do/v2"

	"github.com/groovecharts/groovecharts-server/internal/auth"
	"github.com/groovecharts/groovecharts-server/internal/logger"
	"github.com/groovecharts/groovecharts-server/internal/media/images"
	"github.com/groovecharts/groovecharts-server/internal/service"
	"github.com/groovecharts/groovecharts-server/internal/validation"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, validator, log.Logger), nil
}

// ProvideImageService provides the artist image service.
func ProvideImageService(i do.Injector) (*service.ImageService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	storage := do.MustInvoke[*images.Storage](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewImageService(storeHandle.Store, storage, validator, log.Logger), nil
}

// ProvideChartService provides the chart service.
func ProvideChartService(i do.Injector) (*service.ChartService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewChartService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideGroupService provides the group service.
func ProvideGroupService(i do.Injector) (*service.GroupService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGroupService(storeHandle.Store, validator, log.Logger), nil
}
