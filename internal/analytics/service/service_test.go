package service

import (
	"context"
	"testing"
	"time"

	"funnel_analytics_backend/internal/analytics/transport"
	"funnel_analytics_backend/internal/leads/domain"
	"funnel_analytics_backend/internal/registry"
	"funnel_analytics_backend/platform/apperr"

	"github.com/google/uuid"
)

const testCatalogue = `
endpoints:
  - source: google
    listing: temperature-monitoring
    categoryLabel: Temperature Monitoring
  - source: google
    listing: asset-tracking
    categoryLabel: Asset Tracking
  - source: capterra
    listing: iot
    categoryLabel: IoT Software
  - source: direct
    listing: ""
    categoryLabel: Direct
`

// fakeStore implements repository.LeadReader over an in-memory slice, applying
// the same window and source semantics the SQL store does.
type fakeStore struct {
	leads []domain.Lead
	err   error

	// lastWindow records the window of the most recent query.
	lastWindow domain.TimeWindow
	queryCount int
}

func (f *fakeStore) QueryLeads(_ context.Context, window domain.TimeWindow, sourceFilter string) ([]domain.Lead, error) {
	f.lastWindow = window
	f.queryCount++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Lead, 0, len(f.leads))
	for _, lead := range f.leads {
		if !window.Contains(lead.CreatedAt) {
			continue
		}
		if sourceFilter != "" && lead.Source != sourceFilter {
			continue
		}
		out = append(out, lead)
	}
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (domain.Lead, error) {
	for _, lead := range f.leads {
		if lead.ID == id {
			return lead, nil
		}
	}
	return domain.Lead{}, apperr.NotFound("lead not found")
}

type fakeAnalyticsConfig struct {
	listings, companies int
}

func (c fakeAnalyticsConfig) GetTopListingsLimit() int  { return c.listings }
func (c fakeAnalyticsConfig) GetTopCompaniesLimit() int { return c.companies }

func newTestService(t *testing.T, store *fakeStore, now time.Time) *Service {
	t.Helper()
	reg, err := registry.Parse([]byte(testCatalogue))
	if err != nil {
		t.Fatalf("parse catalogue: %v", err)
	}
	svc := New(store, reg, fakeAnalyticsConfig{listings: 10, companies: 5})
	svc.now = func() time.Time { return now }
	return svc
}

func mkLead(source, listing, name, email, company string, status domain.Status, createdAt time.Time) domain.Lead {
	return domain.Lead{
		ID:            uuid.New(),
		Name:          name,
		Email:         email,
		Company:       company,
		Source:        source,
		Listing:       listing,
		CategoryLabel: listing,
		Status:        status,
		CreatedAt:     createdAt,
	}
}

func TestGetOverview_CountsAndUnattributed(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{leads: []domain.Lead{
		mkLead("google", "temperature-monitoring", "Ada", "ada@acme.com", "Acme", domain.StatusNew, now.Add(-24*time.Hour)),
		mkLead("google", "asset-tracking", "Grace", "grace@acme.com", "Acme", domain.StatusContacted, now.Add(-48*time.Hour)),
		mkLead("capterra", "iot", "Alan", "alan@globex.com", "Globex", domain.StatusQualified, now.Add(-72*time.Hour)),
		// Source absent from the catalogue: counted, never attributed.
		mkLead("legacy-import", "", "Edsger", "e@old.example", "", domain.StatusNew, now.Add(-96*time.Hour)),
	}}
	svc := newTestService(t, store, now)

	overview, err := svc.GetOverview(context.Background(), transport.Filters{})
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}

	if overview.WindowDays != DefaultWindowDays {
		t.Fatalf("expected default window %d, got %d", DefaultWindowDays, overview.WindowDays)
	}
	if overview.Total != 4 {
		t.Fatalf("expected total 4, got %d", overview.Total)
	}
	if overview.UnattributedCount != 1 {
		t.Fatalf("expected 1 unattributed lead, got %d", overview.UnattributedCount)
	}

	// Sums across both breakdowns reproduce the total.
	sourceSum, statusSum := 0, 0
	for _, sc := range overview.BySource {
		sourceSum += sc.Count
	}
	for _, sc := range overview.ByStatus {
		statusSum += sc.Count
	}
	if sourceSum != overview.Total || statusSum != overview.Total {
		t.Fatalf("breakdowns disagree with total: source=%d status=%d total=%d",
			sourceSum, statusSum, overview.Total)
	}
	if len(overview.ByStatus) != 5 {
		t.Fatalf("expected all five statuses, got %d", len(overview.ByStatus))
	}
	if store.queryCount != 1 {
		t.Fatalf("expected a single store read per view, got %d", store.queryCount)
	}
}

func TestGetOverview_UnknownSourcesKeptInBreakdown(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{leads: []domain.Lead{
		mkLead("legacy-import", "", "", "x@x.com", "", domain.StatusNew, now.Add(-time.Hour)),
	}}
	svc := newTestService(t, store, now)

	overview, err := svc.GetOverview(context.Background(), transport.Filters{})
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}

	found := false
	for _, sc := range overview.BySource {
		if sc.Source == "legacy-import" && sc.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unknown source in breakdown, got %+v", overview.BySource)
	}
}

func TestGetLeads_ReverseChronological(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{leads: []domain.Lead{
		mkLead("google", "asset-tracking", "Oldest", "a@x.com", "", domain.StatusNew, now.Add(-72*time.Hour)),
		mkLead("google", "asset-tracking", "Newest", "b@x.com", "", domain.StatusNew, now.Add(-time.Hour)),
		mkLead("capterra", "iot", "Middle", "c@x.com", "", domain.StatusNew, now.Add(-24*time.Hour)),
	}}
	svc := newTestService(t, store, now)

	resp, err := svc.GetLeads(context.Background(), transport.Filters{})
	if err != nil {
		t.Fatalf("GetLeads: %v", err)
	}
	if resp.Total != 3 || len(resp.Leads) != 3 {
		t.Fatalf("expected 3 leads, got total=%d len=%d", resp.Total, len(resp.Leads))
	}
	if resp.Leads[0].Name != "Newest" || resp.Leads[1].Name != "Middle" || resp.Leads[2].Name != "Oldest" {
		t.Fatalf("expected reverse-chronological order, got %s, %s, %s",
			resp.Leads[0].Name, resp.Leads[1].Name, resp.Leads[2].Name)
	}
}

func TestGetLeads_WindowExcludesOldLeads(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{leads: []domain.Lead{
		mkLead("google", "iot", "Recent", "a@x.com", "", domain.StatusNew, now.Add(-24*time.Hour)),
		mkLead("google", "iot", "Stale", "b@x.com", "", domain.StatusNew, now.AddDate(0, 0, -10)),
	}}
	svc := newTestService(t, store, now)

	resp, err := svc.GetLeads(context.Background(), transport.Filters{WindowDays: 7})
	if err != nil {
		t.Fatalf("GetLeads: %v", err)
	}
	if resp.WindowDays != 7 || resp.Total != 1 || resp.Leads[0].Name != "Recent" {
		t.Fatalf("expected only the recent lead inside the 7-day window, got %+v", resp)
	}
}

func TestSnapshot_RejectsUnsupportedWindow(t *testing.T) {
	svc := newTestService(t, &fakeStore{}, time.Now().UTC())

	for _, days := range []int{1, 14, 60, 400, -7} {
		_, err := svc.GetLeads(context.Background(), transport.Filters{WindowDays: days})
		if apperr.GetKind(err) != apperr.KindValidation {
			t.Fatalf("expected validation error for window %d, got %v", days, err)
		}
	}
}

func TestSnapshot_RejectsUnknownSource(t *testing.T) {
	svc := newTestService(t, &fakeStore{}, time.Now().UTC())

	_, err := svc.GetOverview(context.Background(), transport.Filters{Source: "bing"})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for unknown source, got %v", err)
	}
}

func TestSnapshot_SearchFiltersNameEmailCompany(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{leads: []domain.Lead{
		mkLead("google", "iot", "Ada Lovelace", "ada@acme.com", "Acme", domain.StatusNew, now.Add(-time.Hour)),
		mkLead("google", "iot", "Grace Hopper", "grace@navy.example", "US Navy", domain.StatusNew, now.Add(-time.Hour)),
	}}
	svc := newTestService(t, store, now)

	cases := []struct {
		search string
		want   int
	}{
		{"ada", 1},     // matches name, case-insensitive
		{"ACME", 1},    // matches company
		{"navy", 2},    // matches one email and one company
		{"  ada  ", 1}, // surrounding whitespace is trimmed
		{"nobody", 0},
	}
	for _, tc := range cases {
		resp, err := svc.GetLeads(context.Background(), transport.Filters{SearchText: tc.search})
		if err != nil {
			t.Fatalf("GetLeads(%q): %v", tc.search, err)
		}
		if resp.Total != tc.want {
			t.Fatalf("search %q: expected %d leads, got %d", tc.search, tc.want, resp.Total)
		}
	}
}

func TestGetSources_ZeroChannelsStillPresent(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{leads: []domain.Lead{
		mkLead("google", "iot", "", "a@x.com", "", domain.StatusNew, now.Add(-time.Hour)),
	}}
	svc := newTestService(t, store, now)

	resp, err := svc.GetSources(context.Background(), transport.Filters{})
	if err != nil {
		t.Fatalf("GetSources: %v", err)
	}

	byName := make(map[string]transport.SourceView, len(resp.Sources))
	for _, view := range resp.Sources {
		byName[view.Source] = view
	}
	for _, channel := range []string{"google", "capterra", "direct"} {
		view, ok := byName[channel]
		if !ok {
			t.Fatalf("expected channel %q in sources view", channel)
		}
		if len(view.ByStatus) != 5 {
			t.Fatalf("expected 5 statuses for %q even at zero leads, got %d", channel, len(view.ByStatus))
		}
	}
	if byName["capterra"].Total != 0 {
		t.Fatalf("expected zero total for idle channel, got %d", byName["capterra"].Total)
	}
}

func TestGetSources_SourceFilterNarrows(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{leads: []domain.Lead{
		mkLead("google", "iot", "", "a@x.com", "", domain.StatusNew, now.Add(-time.Hour)),
		mkLead("capterra", "iot", "", "b@x.com", "", domain.StatusNew, now.Add(-time.Hour)),
	}}
	svc := newTestService(t, store, now)

	resp, err := svc.GetSources(context.Background(), transport.Filters{Source: "google"})
	if err != nil {
		t.Fatalf("GetSources: %v", err)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Source != "google" || resp.Sources[0].Total != 1 {
		t.Fatalf("expected only the google channel, got %+v", resp.Sources)
	}
}

func TestGetPages_DefaultSortAndIdempotence(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{leads: []domain.Lead{
		mkLead("capterra", "iot", "", "a@x.com", "", domain.StatusNew, now.Add(-time.Hour)),
		mkLead("capterra", "iot", "", "b@x.com", "", domain.StatusNew, now.Add(-2*time.Hour)),
		mkLead("google", "asset-tracking", "", "c@x.com", "", domain.StatusNew, now.Add(-3*time.Hour)),
	}}
	svc := newTestService(t, store, now)

	first, err := svc.GetPages(context.Background(), transport.Filters{})
	if err != nil {
		t.Fatalf("GetPages: %v", err)
	}
	if first.Sort != "leads" {
		t.Fatalf("expected default sort leads, got %q", first.Sort)
	}
	if first.Pages[0].Endpoint.Listing != "iot" {
		t.Fatalf("expected busiest endpoint first, got %q", first.Pages[0].Endpoint.Listing)
	}

	second, err := svc.GetPages(context.Background(), transport.Filters{})
	if err != nil {
		t.Fatalf("GetPages (repeat): %v", err)
	}
	if len(first.Pages) != len(second.Pages) {
		t.Fatalf("expected identical page count across calls, got %d and %d",
			len(first.Pages), len(second.Pages))
	}
	for i := range first.Pages {
		if first.Pages[i].Endpoint.Key() != second.Pages[i].Endpoint.Key() ||
			first.Pages[i].Total != second.Pages[i].Total {
			t.Fatalf("expected identical ordering across calls at index %d", i)
		}
	}
}

func TestGetPages_RejectsUnknownSort(t *testing.T) {
	svc := newTestService(t, &fakeStore{}, time.Now().UTC())

	_, err := svc.GetPages(context.Background(), transport.Filters{PageSort: "clicks"})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for unknown sort, got %v", err)
	}
}

func TestGetPages_SourceFilterScopesEndpoints(t *testing.T) {
	svc := newTestService(t, &fakeStore{}, time.Now().UTC())

	resp, err := svc.GetPages(context.Background(), transport.Filters{Source: "google"})
	if err != nil {
		t.Fatalf("GetPages: %v", err)
	}
	if len(resp.Pages) != 2 {
		t.Fatalf("expected 2 google endpoints, got %d", len(resp.Pages))
	}
	for _, page := range resp.Pages {
		if page.Endpoint.Source != "google" {
			t.Fatalf("expected only google endpoints, got %q", page.Endpoint.Source)
		}
	}
}

func TestGetView_Dispatch(t *testing.T) {
	svc := newTestService(t, &fakeStore{}, time.Now().UTC())

	for _, view := range []transport.View{
		transport.ViewOverview, transport.ViewLeads, transport.ViewSources, transport.ViewPages,
	} {
		if _, err := svc.GetView(context.Background(), view, transport.Filters{}); err != nil {
			t.Fatalf("GetView(%q): %v", view, err)
		}
	}

	_, err := svc.GetView(context.Background(), transport.View("funnel"), transport.Filters{})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for unknown view, got %v", err)
	}
}

func TestGetView_PropagatesStoreFailure(t *testing.T) {
	store := &fakeStore{err: apperr.Unavailable("event store query failed", context.DeadlineExceeded)}
	svc := newTestService(t, store, time.Now().UTC())

	_, err := svc.GetOverview(context.Background(), transport.Filters{})
	if apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("expected unavailable error to propagate, got %v", err)
	}
}
