// Package repository is the event store adapter. It wraps Postgres access so
// the rest of the engine only sees queryable lead records and never storage
// mechanics.
package repository

import (
	"context"
	"errors"

	"funnel_analytics_backend/internal/leads/domain"
	"funnel_analytics_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leadColumns = `
	id, name, email, company, phone, job_title,
	source, listing, category_label, page_url, referrer,
	utm_source, utm_medium, utm_campaign, utm_content, utm_term,
	status, notes, created_at, updated_at
`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// QueryLeads returns the leads created inside [window.Start, window.End),
// optionally restricted to one source. No ordering is guaranteed.
func (r *Repository) QueryLeads(ctx context.Context, window domain.TimeWindow, sourceFilter string) ([]domain.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE created_at >= $1 AND created_at < $2
	`
	args := []interface{}{window.Start, window.End}
	if sourceFilter != "" {
		query += ` AND source = $3`
		args = append(args, sourceFilter)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Unavailable("event store read failed", err).WithOp("QueryLeads")
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, apperr.Unavailable("event store read failed", err).WithOp("QueryLeads")
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, apperr.Unavailable("event store read failed", rows.Err()).WithOp("QueryLeads")
	}

	return leads, nil
}

// GetByID fetches a single lead record.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, apperr.Unavailable("event store read failed", err).WithOp("GetByID")
	}
	return lead, nil
}

// Insert stores a new lead with server-assigned id, default status and
// creation timestamp, and returns the created record.
func (r *Repository) Insert(ctx context.Context, params InsertLeadParams) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			name, email, company, phone, job_title,
			source, listing, category_label, page_url, referrer,
			utm_source, utm_medium, utm_campaign, utm_content, utm_term
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+leadColumns,
		params.Name, params.Email, params.Company, params.Phone, params.JobTitle,
		params.Source, params.Listing, params.CategoryLabel, params.PageURL, params.Referrer,
		params.UTMSource, params.UTMMedium, params.UTMCampaign, params.UTMContent, params.UTMTerm,
	)

	lead, err := scanLead(row)
	if err != nil {
		return domain.Lead{}, apperr.Unavailable("event store write failed", err).WithOp("Insert")
	}
	return lead, nil
}

// UpdateStatus overwrites the status unconditionally (last write wins; there
// is no version check) and returns the updated record.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leads
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, string(status),
	)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, apperr.Unavailable("event store write failed", err).WithOp("UpdateStatus")
	}
	return lead, nil
}

// UpdateNotes overwrites the free-text notes field and returns the updated
// record.
func (r *Repository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leads
		SET notes = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, notes,
	)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, apperr.Unavailable("event store write failed", err).WithOp("UpdateNotes")
	}
	return lead, nil
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var lead domain.Lead
	var status string
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Company, &lead.Phone, &lead.JobTitle,
		&lead.Source, &lead.Listing, &lead.CategoryLabel, &lead.PageURL, &lead.Referrer,
		&lead.UTMSource, &lead.UTMMedium, &lead.UTMCampaign, &lead.UTMContent, &lead.UTMTerm,
		&status, &lead.Notes, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}
	lead.Status = domain.Status(status)
	return lead, nil
}

var _ Store = (*Repository)(nil)
