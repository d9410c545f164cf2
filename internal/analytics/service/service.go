// Package service is the analytics query layer. It orchestrates one
// consistent event-store read per call and computes the requested view shape
// from that snapshot, so sub-aggregates can never disagree with each other
// under concurrent writes. The layer holds no cache and no cross-call state.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"funnel_analytics_backend/internal/analytics/aggregate"
	"funnel_analytics_backend/internal/analytics/reconcile"
	"funnel_analytics_backend/internal/analytics/transport"
	"funnel_analytics_backend/internal/leads/domain"
	"funnel_analytics_backend/internal/leads/repository"
	leadstransport "funnel_analytics_backend/internal/leads/transport"
	"funnel_analytics_backend/internal/registry"
	"funnel_analytics_backend/platform/apperr"
	"funnel_analytics_backend/platform/config"
)

// DefaultWindowDays is applied when the caller does not set a window.
const DefaultWindowDays = 90

var allowedWindows = map[int]struct{}{7: {}, 30: {}, 90: {}, 365: {}}

type Service struct {
	store repository.LeadReader
	reg   *registry.Registry
	cfg   config.AnalyticsConfig

	// now is injectable for deterministic tests.
	now func() time.Time
}

func New(store repository.LeadReader, reg *registry.Registry, cfg config.AnalyticsConfig) *Service {
	return &Service{store: store, reg: reg, cfg: cfg, now: time.Now}
}

// GetView dispatches to the view-specific computation. Every view is
// computed fresh per call.
func (s *Service) GetView(ctx context.Context, view transport.View, filters transport.Filters) (interface{}, error) {
	switch view {
	case transport.ViewOverview:
		return s.GetOverview(ctx, filters)
	case transport.ViewLeads:
		return s.GetLeads(ctx, filters)
	case transport.ViewSources:
		return s.GetSources(ctx, filters)
	case transport.ViewPages:
		return s.GetPages(ctx, filters)
	default:
		return nil, apperr.Validation(fmt.Sprintf("unknown view %q", view))
	}
}

// GetOverview computes the overview view.
func (s *Service) GetOverview(ctx context.Context, filters transport.Filters) (transport.OverviewResponse, error) {
	days, leads, err := s.snapshot(ctx, filters)
	if err != nil {
		return transport.OverviewResponse{}, err
	}

	_, unattributed := reconcile.Reconcile(s.reg.All(), leads)
	total := len(leads)

	return transport.OverviewResponse{
		WindowDays:        days,
		Total:             total,
		UnattributedCount: unattributed,
		BySource:          s.sourceBreakdown(leads, total),
		ByStatus:          statusBreakdown(aggregate.ByStatus(leads), total),
		ByWeek:            aggregate.ByWeek(leads),
		ByListing:         topN(aggregate.ByListing(leads), s.cfg.GetTopListingsLimit()),
		TopCompanies:      aggregate.TopCompanies(leads, s.cfg.GetTopCompaniesLimit()),
	}, nil
}

// GetLeads returns the filtered lead list, reverse-chronologically sorted.
// The ordering is a contract guarantee, not incidental.
func (s *Service) GetLeads(ctx context.Context, filters transport.Filters) (transport.LeadsResponse, error) {
	days, leads, err := s.snapshot(ctx, filters)
	if err != nil {
		return transport.LeadsResponse{}, err
	}

	sort.SliceStable(leads, func(i, j int) bool {
		if !leads[i].CreatedAt.Equal(leads[j].CreatedAt) {
			return leads[i].CreatedAt.After(leads[j].CreatedAt)
		}
		return leads[i].ID.String() < leads[j].ID.String()
	})

	return transport.LeadsResponse{
		WindowDays: days,
		Total:      len(leads),
		Leads:      leadstransport.ToLeadResponses(leads),
	}, nil
}

// GetSources computes, per registry channel, its aggregate plus the
// channel's own listing and company slices. Channels with zero leads in the
// window still appear with zero-valued aggregates.
func (s *Service) GetSources(ctx context.Context, filters transport.Filters) (transport.SourcesResponse, error) {
	days, leads, err := s.snapshot(ctx, filters)
	if err != nil {
		return transport.SourcesResponse{}, err
	}

	bySource := make(map[string][]domain.Lead)
	for _, lead := range leads {
		bySource[lead.Source] = append(bySource[lead.Source], lead)
	}

	channels := s.reg.Sources()
	if filters.Source != "" {
		channels = []string{filters.Source}
	}

	views := make([]transport.SourceView, 0, len(channels))
	for _, channel := range channels {
		channelLeads := bySource[channel]
		views = append(views, transport.SourceView{
			Source:       channel,
			Total:        len(channelLeads),
			ByStatus:     statusBreakdown(aggregate.ByStatus(channelLeads), len(channelLeads)),
			ByListing:    topN(aggregate.ByListing(channelLeads), s.cfg.GetTopListingsLimit()),
			TopCompanies: aggregate.TopCompanies(channelLeads, s.cfg.GetTopCompaniesLimit()),
		})
	}

	return transport.SourcesResponse{WindowDays: days, Sources: views}, nil
}

// GetPages computes the full reconciliation output with the requested sort.
func (s *Service) GetPages(ctx context.Context, filters transport.Filters) (transport.PagesResponse, error) {
	days, leads, err := s.snapshot(ctx, filters)
	if err != nil {
		return transport.PagesResponse{}, err
	}

	sortKey := reconcile.PageSort(filters.PageSort)
	if filters.PageSort == "" {
		sortKey = reconcile.PageSortLeads
	}
	if !sortKey.Valid() {
		return transport.PagesResponse{}, apperr.Validation(fmt.Sprintf("unknown sort %q", filters.PageSort))
	}

	endpoints := s.reg.All()
	if filters.Source != "" {
		endpoints = s.reg.BySource(filters.Source)
	}

	stats, unattributed := reconcile.Reconcile(endpoints, leads)
	reconcile.SortPageStats(stats, sortKey)

	return transport.PagesResponse{
		WindowDays:        days,
		Sort:              string(sortKey),
		UnattributedCount: unattributed,
		Pages:             stats,
	}, nil
}

// snapshot validates the filters and performs the single store read every
// sub-aggregate of the call is computed from.
func (s *Service) snapshot(ctx context.Context, filters transport.Filters) (int, []domain.Lead, error) {
	days := filters.WindowDays
	if days == 0 {
		days = DefaultWindowDays
	}
	if _, ok := allowedWindows[days]; !ok {
		return 0, nil, apperr.Validation(fmt.Sprintf("unsupported window %d days", days))
	}
	if filters.Source != "" && !s.reg.Contains(filters.Source) {
		return 0, nil, apperr.Validation(fmt.Sprintf("unknown source %q", filters.Source))
	}

	window := domain.WindowDays(days, s.now())
	leads, err := s.store.QueryLeads(ctx, window, filters.Source)
	if err != nil {
		return 0, nil, err
	}

	if search := strings.TrimSpace(filters.SearchText); search != "" {
		leads = filterBySearch(leads, search)
	}

	return days, leads, nil
}

// filterBySearch keeps leads whose name, email or company contains the
// search text, case-insensitively.
func filterBySearch(leads []domain.Lead, search string) []domain.Lead {
	search = strings.ToLower(search)
	out := make([]domain.Lead, 0, len(leads))
	for _, lead := range leads {
		if strings.Contains(strings.ToLower(lead.Name), search) ||
			strings.Contains(strings.ToLower(lead.Email), search) ||
			strings.Contains(strings.ToLower(lead.Company), search) {
			out = append(out, lead)
		}
	}
	return out
}

// sourceBreakdown lists registry channels first, in catalogue order and
// zero-defaulted, then any unknown legacy sources alphabetically. Unknown
// sources stay in the totals even though no page can claim them.
func (s *Service) sourceBreakdown(leads []domain.Lead, total int) []transport.SourceCount {
	counts := aggregate.BySource(leads)

	out := make([]transport.SourceCount, 0, len(counts))
	for _, channel := range s.reg.Sources() {
		out = append(out, transport.SourceCount{
			Source:  channel,
			Count:   counts[channel],
			Percent: aggregate.Percent(counts[channel], total),
		})
		delete(counts, channel)
	}

	unknown := make([]string, 0, len(counts))
	for source := range counts {
		unknown = append(unknown, source)
	}
	sort.Strings(unknown)
	for _, source := range unknown {
		out = append(out, transport.SourceCount{
			Source:  source,
			Count:   counts[source],
			Percent: aggregate.Percent(counts[source], total),
		})
	}

	return out
}

func statusBreakdown(counts map[domain.Status]int, total int) []transport.StatusCount {
	out := make([]transport.StatusCount, 0, 5)
	for _, status := range domain.Statuses() {
		out = append(out, transport.StatusCount{
			Status:  string(status),
			Count:   counts[status],
			Percent: aggregate.Percent(counts[status], total),
		})
	}
	return out
}

func topN(listings []aggregate.ListingCount, limit int) []aggregate.ListingCount {
	if limit >= 0 && len(listings) > limit {
		return listings[:limit]
	}
	return listings
}
