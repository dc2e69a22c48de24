// Package campgrounds provides the campground bounded context module:
// listing, searching, creating, viewing, editing, and deleting campground
// records with geocoded locations and remotely hosted images.
package campgrounds

import (
	"campground_backend/internal/adapters/storage"
	"campground_backend/internal/campgrounds/handler"
	"campground_backend/internal/campgrounds/repository"
	"campground_backend/internal/campgrounds/service"
	apphttp "campground_backend/internal/http"
	"campground_backend/internal/uploads"
	"campground_backend/platform/config"
	"campground_backend/platform/logger"
	"campground_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the campgrounds bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the campgrounds module with all its
// dependencies.
func NewModule(pool *pgxpool.Pool, geo service.Geocoder, media storage.MediaStore, val *validator.Validator, cfg config.CampgroundsConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, geo, media, cfg, log)
	h := handler.New(svc, val, uploads.NewReceiver())

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "campgrounds"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts campground routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public read endpoints
	public := ctx.V1.Group("/campgrounds")
	public.GET("", m.handler.List)
	public.GET("/:id", m.handler.Show)

	// Authenticated endpoints; ownership is checked by the service
	protected := ctx.Protected.Group("/campgrounds")
	protected.POST("", m.handler.Create)
	protected.GET("/new", m.handler.NewForm)
	protected.GET("/:id/edit", m.handler.EditForm)
	protected.PUT("/:id", m.handler.Update)
	protected.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
