// Package listings provides the property-search bounded context module.
// It owns the three-tier query resolution engine behind the public listing
// endpoints.
package listings

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rental_portal_backend/internal/geocode"
	apphttp "rental_portal_backend/internal/http"
	"rental_portal_backend/internal/listings/handler"
	"rental_portal_backend/internal/listings/repository"
	"rental_portal_backend/internal/listings/service"
	"rental_portal_backend/platform/cache"
	"rental_portal_backend/platform/config"
	"rental_portal_backend/platform/logger"
	"rental_portal_backend/platform/validator"
)

// Module is the listings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the listings module with all its dependencies.
func NewModule(pool *pgxpool.Pool, store cache.Store, geo *geocode.Client, cfg config.SearchConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, geo, store, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "listings"
}

// Service returns the service layer for external use (e.g., the scheduler's
// cache warm task).
func (m *Module) Service() *service.Service {
	return m.service
}

// WarmCache refreshes the hot list cache eagerly.
func (m *Module) WarmCache(ctx context.Context) error {
	return m.service.WarmHotList(ctx)
}

// RegisterRoutes mounts listing routes on the provided router context.
// Both endpoints carry read-class throttling ahead of any cache, database or
// geocoding work.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/listings")
	group.GET("", ctx.ReadLimit, m.handler.List)
	group.POST("/search", ctx.ReadLimit, m.handler.Search)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
