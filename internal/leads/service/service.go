// Package service implements lead ingestion and the lifecycle manager.
package service

import (
	"context"
	"fmt"

	"funnel_analytics_backend/internal/events"
	"funnel_analytics_backend/internal/leads/domain"
	"funnel_analytics_backend/internal/leads/repository"
	"funnel_analytics_backend/internal/leads/transport"
	"funnel_analytics_backend/internal/registry"
	"funnel_analytics_backend/platform/apperr"
	"funnel_analytics_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	store repository.Store
	reg   *registry.Registry
	bus   events.Bus
	log   *logger.Logger
}

func New(store repository.Store, reg *registry.Registry, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, reg: reg, bus: bus, log: log}
}

// Ingest validates and stores a new lead. The source must reference a channel
// present in the endpoint registry; unknown listings are tolerated and end up
// reported as unattributed by the analytics layer.
func (s *Service) Ingest(ctx context.Context, req transport.IngestLeadRequest) (transport.LeadResponse, error) {
	if !s.reg.Contains(req.Source) {
		return transport.LeadResponse{}, apperr.Validation(fmt.Sprintf("unknown source %q", req.Source))
	}

	lead, err := s.store.Insert(ctx, repository.InsertLeadParams{
		Name:          req.Name,
		Email:         req.Email,
		Company:       req.Company,
		Phone:         req.Phone,
		JobTitle:      req.JobTitle,
		Source:        req.Source,
		Listing:       req.Listing,
		CategoryLabel: req.CategoryLabel,
		PageURL:       req.PageURL,
		Referrer:      req.Referrer,
		UTMSource:     req.UTMSource,
		UTMMedium:     req.UTMMedium,
		UTMCampaign:   req.UTMCampaign,
		UTMContent:    req.UTMContent,
		UTMTerm:       req.UTMTerm,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.log.LeadEvent("ingested", lead.ID.String(), lead.Source, string(lead.Status))
	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Source:    lead.Source,
		Listing:   lead.Listing,
	})

	return transport.ToLeadResponse(lead), nil
}

// SetStatus applies a status mutation. Any status may be set from any status;
// a same-status set is a successful no-op write. There is no transition graph
// on purpose: manual correction by an operator is a supported use case.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (transport.LeadResponse, error) {
	newStatus := domain.Status(status)
	if !newStatus.Valid() {
		return transport.LeadResponse{}, apperr.Validation(fmt.Sprintf("invalid status %q", status))
	}

	lead, err := s.store.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.log.LeadEvent("status_changed", lead.ID.String(), lead.Source, string(lead.Status))
	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Status:    string(lead.Status),
	})

	return transport.ToLeadResponse(lead), nil
}

// SetNotes replaces the free-text notes on a lead.
func (s *Service) SetNotes(ctx context.Context, id uuid.UUID, notes string) (transport.LeadResponse, error) {
	lead, err := s.store.UpdateNotes(ctx, id, notes)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return transport.ToLeadResponse(lead), nil
}

// Get fetches a single lead.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.store.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return transport.ToLeadResponse(lead), nil
}
