package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"campground_backend/internal/auth/handler"
	"campground_backend/internal/auth/repository"
	"campground_backend/internal/auth/service"
	apphttp "campground_backend/internal/http"
	"campground_backend/platform/config"
	"campground_backend/platform/logger"
	"campground_backend/platform/validator"
)

// Module wires the auth feature: repository, service and handler.
type Module struct {
	handler *handler.Handler
}

// NewModule constructs the auth module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, cfg config.AuthServiceConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo, cfg, log)

	return &Module{handler: handler.NewHandler(svc, val)}
}

// Name returns the module name.
func (m *Module) Name() string { return "auth" }

// RegisterRoutes mounts the public auth endpoints. Both are rate limited
// per client IP.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	grp := ctx.V1.Group("/auth")
	grp.Use(ctx.AuthRateLimiter.RateLimit())

	grp.POST("/register", m.handler.Register)
	grp.POST("/login", m.handler.Login)
}

var _ apphttp.Module = (*Module)(nil)
