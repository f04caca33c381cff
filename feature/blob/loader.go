package blob

import (
	"storage-kit/core/policy"
	"storage-kit/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new blob feature.
func NewFeature(client storage.Client, pol policy.Policy, logger *zap.Logger) *Feature {
	svc := NewService(client, pol, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "blob"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the underlying facade for in-process callers.
func (f *Feature) Service() *Service {
	return f.service
}
