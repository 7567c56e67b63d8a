package status

import (
	"mod-manager/core/catalog"
	"mod-manager/core/manifest"
	"mod-manager/feature/history"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the status feature. catalogs and recorder may be nil.
func NewFeature(manifests *manifest.Store, catalogs *catalog.Store, recorder *history.Recorder, logger *zap.Logger) *Feature {
	svc := NewService(manifests, catalogs, recorder, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "status"
}

// IsEnabled reports whether a manifest store is configured.
func (f *Feature) IsEnabled() bool {
	return f.service.manifests != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
