package providers

import (
	"github.com/samber/do/v2"

	"github.com/groovecharts/groovecharts-server/internal/config"
	"github.com/groovecharts/groovecharts-server/internal/logger"
	"github.com/groovecharts/groovecharts-server/internal/media/images"
)

// ProvideImageStorage provides the on-disk artist image blob storage.
func ProvideImageStorage(i do.Injector) (*images.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := images.NewStorage(cfg.Data.BasePath, "artist-images")
	if err != nil {
		return nil, err
	}

	log.Info("Image storage initialized", "path", storage.BasePath())

	return storage, nil
}
