package transport

import (
	"funnel_analytics_backend/internal/analytics/aggregate"
	"funnel_analytics_backend/internal/analytics/reconcile"
	leadstransport "funnel_analytics_backend/internal/leads/transport"
)

// View selects which aggregate shape getView produces.
type View string

const (
	ViewOverview View = "overview"
	ViewLeads    View = "leads"
	ViewSources  View = "sources"
	ViewPages    View = "pages"
)

// Valid reports whether v is a supported view selector.
func (v View) Valid() bool {
	switch v {
	case ViewOverview, ViewLeads, ViewSources, ViewPages:
		return true
	}
	return false
}

// Filters are the caller-supplied query parameters. Zero values mean
// "not set" and fall back to defaults during validation.
type Filters struct {
	WindowDays int
	Source     string
	SearchText string
	PageSort   string
}

// SourceCount is one entry of the by-source breakdown.
type SourceCount struct {
	Source  string `json:"source"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// StatusCount is one entry of the by-status breakdown. The breakdown always
// carries all five lifecycle statuses in funnel order.
type StatusCount struct {
	Status  string `json:"status"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// OverviewResponse is the overview view payload.
type OverviewResponse struct {
	WindowDays        int                      `json:"windowDays"`
	Total             int                      `json:"total"`
	UnattributedCount int                      `json:"unattributedCount"`
	BySource          []SourceCount            `json:"bySource"`
	ByStatus          []StatusCount            `json:"byStatus"`
	ByWeek            []aggregate.WeekCount    `json:"byWeek"`
	ByListing         []aggregate.ListingCount `json:"byListing"`
	TopCompanies      []aggregate.CompanyStat  `json:"topCompanies"`
}

// LeadsResponse is the raw filtered lead list, most recent first.
type LeadsResponse struct {
	WindowDays int                           `json:"windowDays"`
	Total      int                           `json:"total"`
	Leads      []leadstransport.LeadResponse `json:"leads"`
}

// SourceView is one channel's aggregate in the sources view.
type SourceView struct {
	Source       string                   `json:"source"`
	Total        int                      `json:"total"`
	ByStatus     []StatusCount            `json:"byStatus"`
	ByListing    []aggregate.ListingCount `json:"byListing"`
	TopCompanies []aggregate.CompanyStat  `json:"topCompanies"`
}

// SourcesResponse is the sources view payload.
type SourcesResponse struct {
	WindowDays int          `json:"windowDays"`
	Sources    []SourceView `json:"sources"`
}

// PagesResponse is the pages view payload: the full reconciliation output.
type PagesResponse struct {
	WindowDays        int                  `json:"windowDays"`
	Sort              string               `json:"sort"`
	UnattributedCount int                  `json:"unattributedCount"`
	Pages             []reconcile.PageStat `json:"pages"`
}
