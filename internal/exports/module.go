package exports

import (
	analyticsservice "funnel_analytics_backend/internal/analytics/service"
	apphttp "funnel_analytics_backend/internal/http"
)

// Module represents the exports module
type Module struct {
	handler *Handler
}

// NewModule creates a new exports module
func NewModule(analytics *analyticsservice.Service) *Module {
	return &Module{handler: NewHandler(analytics)}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "exports"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/leads/export", m.handler.HandleExportLeads)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
