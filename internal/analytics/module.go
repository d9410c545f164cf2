// Package analytics provides the funnel analytics domain module: the
// reconciliation of the endpoint registry against observed leads, the
// aggregate views, and the query surface over both.
package analytics

import (
	"funnel_analytics_backend/internal/analytics/handler"
	"funnel_analytics_backend/internal/analytics/service"
	apphttp "funnel_analytics_backend/internal/http"
	"funnel_analytics_backend/internal/leads/repository"
	"funnel_analytics_backend/internal/registry"
	"funnel_analytics_backend/platform/config"
)

// Module represents the analytics domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new analytics module with all dependencies wired
func NewModule(store repository.LeadReader, reg *registry.Registry, cfg config.AnalyticsConfig) *Module {
	svc := service.New(store, reg, cfg)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "analytics"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	analytics := ctx.V1.Group("/analytics")
	m.handler.RegisterRoutes(analytics)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
