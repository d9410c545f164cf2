// Package leads provides the lead ingestion and lifecycle domain module.
package leads

import (
	"funnel_analytics_backend/internal/events"
	apphttp "funnel_analytics_backend/internal/http"
	"funnel_analytics_backend/internal/leads/handler"
	"funnel_analytics_backend/internal/leads/repository"
	"funnel_analytics_backend/internal/leads/service"
	"funnel_analytics_backend/internal/registry"
	"funnel_analytics_backend/platform/logger"
	"funnel_analytics_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the leads domain module
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository *repository.Repository
}

// NewModule creates a new leads module with all dependencies wired
func NewModule(pool *pgxpool.Pool, reg *registry.Registry, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, reg, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler:    h,
		service:    svc,
		repository: repo,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the event store adapter for modules that read leads.
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leads := ctx.V1.Group("/leads")
	m.handler.RegisterRoutes(leads, ctx.IngestRateLimiter.RateLimit())
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
