package exports

import (
	"net/http"
	"strconv"

	analyticsservice "funnel_analytics_backend/internal/analytics/service"
	analyticstransport "funnel_analytics_backend/internal/analytics/transport"
	"funnel_analytics_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler streams the leads view as a CSV attachment.
type Handler struct {
	analytics *analyticsservice.Service
}

// NewHandler creates a new export handler.
func NewHandler(analytics *analyticsservice.Service) *Handler {
	return &Handler{analytics: analytics}
}

// HandleExportLeads serves GET /leads/export with the same filter parameters
// as the leads view.
func (h *Handler) HandleExportLeads(c *gin.Context) {
	filters := analyticstransport.Filters{
		Source:     c.Query("source"),
		SearchText: c.Query("q"),
	}
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "days must be an integer", nil)
			return
		}
		filters.WindowDays = days
	}

	view, err := h.analytics.GetLeads(c.Request.Context(), filters)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=leads.csv")
	if err := WriteLeadsCSV(c.Writer, view.Leads); err != nil {
		// Headers are already out; nothing sensible left to send.
		c.Abort()
	}
}
