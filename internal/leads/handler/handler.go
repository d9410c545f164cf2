// Package handler exposes the lead ingestion and lifecycle HTTP endpoints.
package handler

import (
	"net/http"

	"funnel_analytics_backend/internal/leads/service"
	"funnel_analytics_backend/internal/leads/transport"
	"funnel_analytics_backend/platform/httpkit"
	"funnel_analytics_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the lead routes on the provided group. The public
// ingestion endpoint gets the rate-limit middleware; mutations do not.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, ingestLimiter gin.HandlerFunc) {
	rg.POST("", ingestLimiter, h.HandleIngest)
	rg.GET("/:id", h.HandleGet)
	rg.PATCH("/:id/status", h.HandleUpdateStatus)
	rg.PATCH("/:id/notes", h.HandleUpdateNotes)
}

// HandleIngest accepts a public form submission.
func (h *Handler) HandleIngest(c *gin.Context) {
	var req transport.IngestLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	lead, err := h.svc.Ingest(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, lead)
}

func (h *Handler) HandleGet(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, lead)
}

// HandleUpdateStatus applies a lifecycle status mutation.
func (h *Handler) HandleUpdateStatus(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	lead, err := h.svc.SetStatus(c.Request.Context(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, lead)
}

// HandleUpdateNotes replaces the notes on a lead.
func (h *Handler) HandleUpdateNotes(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req transport.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	lead, err := h.svc.SetNotes(c.Request.Context(), id, req.Notes)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, lead)
}

func parseLeadID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return uuid.Nil, false
	}
	return id, true
}
