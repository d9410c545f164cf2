// Package handler exposes the analytics query surface.
package handler

import (
	"net/http"
	"strconv"

	"funnel_analytics_backend/internal/analytics/service"
	"funnel_analytics_backend/internal/analytics/transport"
	"funnel_analytics_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the analytics routes on the provided group. The root
// route is the single parameterized read endpoint; the named routes are
// aliases for the four views.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.HandleView)
	rg.GET("/overview", h.viewAlias(transport.ViewOverview))
	rg.GET("/leads", h.viewAlias(transport.ViewLeads))
	rg.GET("/sources", h.viewAlias(transport.ViewSources))
	rg.GET("/pages", h.viewAlias(transport.ViewPages))
}

// HandleView serves GET /analytics?view=…&days=…&source=…&q=…&sort=…
func (h *Handler) HandleView(c *gin.Context) {
	view := transport.View(c.DefaultQuery("view", string(transport.ViewOverview)))
	if !view.Valid() {
		httpkit.Error(c, http.StatusBadRequest, "unknown view", nil)
		return
	}
	h.serve(c, view)
}

func (h *Handler) viewAlias(view transport.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.serve(c, view)
	}
}

func (h *Handler) serve(c *gin.Context, view transport.View) {
	filters, ok := parseFilters(c)
	if !ok {
		return
	}

	result, err := h.svc.GetView(c.Request.Context(), view, filters)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func parseFilters(c *gin.Context) (transport.Filters, bool) {
	filters := transport.Filters{
		Source:     c.Query("source"),
		SearchText: c.Query("q"),
		PageSort:   c.Query("sort"),
	}

	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "days must be an integer", nil)
			return transport.Filters{}, false
		}
		filters.WindowDays = days
	}

	return filters, true
}
