package repository

import (
	"context"

	"funnel_analytics_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// =====================================
// Segregated Interfaces (Interface Segregation Principle)
// =====================================

// LeadReader provides read-only access to the event store.
type LeadReader interface {
	// QueryLeads returns every lead created inside the window, optionally
	// restricted to one source channel. Ordering is not guaranteed; callers
	// sort as needed.
	QueryLeads(ctx context.Context, window domain.TimeWindow, sourceFilter string) ([]domain.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
}

// LeadWriter provides the write operations of the event store.
type LeadWriter interface {
	Insert(ctx context.Context, params InsertLeadParams) (domain.Lead, error)
	// UpdateStatus unconditionally overwrites the status (last write wins)
	// and returns the updated record.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Lead, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (domain.Lead, error)
}

// Store combines read and write access for modules that need both.
type Store interface {
	LeadReader
	LeadWriter
}

// InsertLeadParams carries the immutable fields of a new lead. The store
// assigns id, status, and timestamps.
type InsertLeadParams struct {
	Name          string
	Email         string
	Company       string
	Phone         string
	JobTitle      string
	Source        string
	Listing       string
	CategoryLabel string
	PageURL       string
	Referrer      string
	UTMSource     string
	UTMMedium     string
	UTMCampaign   string
	UTMContent    string
	UTMTerm       string
}
