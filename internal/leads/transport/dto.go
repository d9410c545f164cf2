package transport

import (
	"time"

	"funnel_analytics_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// Request DTOs

// IngestLeadRequest is the public form-submission payload. Status, id and
// createdAt are server-assigned.
type IngestLeadRequest struct {
	Name          string `json:"name" validate:"omitempty,max=200"`
	Email         string `json:"email" validate:"required,email,max=320"`
	Company       string `json:"company" validate:"omitempty,max=200"`
	Phone         string `json:"phone" validate:"omitempty,max=40"`
	JobTitle      string `json:"jobTitle" validate:"omitempty,max=200"`
	Source        string `json:"source" validate:"required,max=100"`
	Listing       string `json:"listing" validate:"omitempty,max=200"`
	CategoryLabel string `json:"categoryLabel" validate:"omitempty,max=200"`
	PageURL       string `json:"pageUrl" validate:"omitempty,max=2000"`
	Referrer      string `json:"referrer" validate:"omitempty,max=2000"`
	UTMSource     string `json:"utmSource" validate:"omitempty,max=500"`
	UTMMedium     string `json:"utmMedium" validate:"omitempty,max=500"`
	UTMCampaign   string `json:"utmCampaign" validate:"omitempty,max=500"`
	UTMContent    string `json:"utmContent" validate:"omitempty,max=500"`
	UTMTerm       string `json:"utmTerm" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted qualified disqualified converted"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes" validate:"max=10000"`
}

// Response DTOs

type LeadResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Company       string    `json:"company"`
	Phone         string    `json:"phone"`
	JobTitle      string    `json:"jobTitle"`
	Source        string    `json:"source"`
	Listing       string    `json:"listing"`
	CategoryLabel string    `json:"categoryLabel"`
	PageURL       string    `json:"pageUrl"`
	Referrer      string    `json:"referrer"`
	UTMSource     string    `json:"utmSource"`
	UTMMedium     string    `json:"utmMedium"`
	UTMCampaign   string    `json:"utmCampaign"`
	UTMContent    string    `json:"utmContent"`
	UTMTerm       string    `json:"utmTerm"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToLeadResponse maps a domain lead to its API representation.
func ToLeadResponse(lead domain.Lead) LeadResponse {
	return LeadResponse{
		ID:            lead.ID,
		Name:          lead.Name,
		Email:         lead.Email,
		Company:       lead.Company,
		Phone:         lead.Phone,
		JobTitle:      lead.JobTitle,
		Source:        lead.Source,
		Listing:       lead.Listing,
		CategoryLabel: lead.CategoryLabel,
		PageURL:       lead.PageURL,
		Referrer:      lead.Referrer,
		UTMSource:     lead.UTMSource,
		UTMMedium:     lead.UTMMedium,
		UTMCampaign:   lead.UTMCampaign,
		UTMContent:    lead.UTMContent,
		UTMTerm:       lead.UTMTerm,
		Status:        string(lead.Status),
		Notes:         lead.Notes,
		CreatedAt:     lead.CreatedAt,
		UpdatedAt:     lead.UpdatedAt,
	}
}

// ToLeadResponses maps a slice of domain leads.
func ToLeadResponses(leads []domain.Lead) []LeadResponse {
	out := make([]LeadResponse, len(leads))
	for i, lead := range leads {
		out[i] = ToLeadResponse(lead)
	}
	return out
}
