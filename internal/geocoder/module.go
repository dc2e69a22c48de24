package geocoder

import (
	apphttp "campground_backend/internal/http"
	"campground_backend/platform/config"
	"campground_backend/platform/logger"
)

// Module wires the address lookup HTTP routes and exposes the geocoding
// service to other modules.
type Module struct {
	handler *Handler
	service *Service
}

func NewModule(cfg config.GeocoderConfig, log *logger.Logger) *Module {
	svc := NewService(cfg, log)
	h := NewHandler(svc)
	return &Module{handler: h, service: svc}
}

func (m *Module) Name() string {
	return "geocoder"
}

// Service returns the geocoding service for use by other modules.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/geocode", m.handler.Lookup)
}

var _ apphttp.Module = (*Module)(nil)
