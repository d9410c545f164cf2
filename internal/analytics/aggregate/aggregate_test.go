package aggregate

import (
	"testing"
	"time"

	"funnel_analytics_backend/internal/leads/domain"

	"github.com/google/uuid"
)

func mkLead(source, listing, company string, status domain.Status, createdAt time.Time) domain.Lead {
	return domain.Lead{
		ID:            uuid.New(),
		Email:         "lead@example.com",
		Company:       company,
		Source:        source,
		Listing:       listing,
		CategoryLabel: listing,
		Status:        status,
		CreatedAt:     createdAt,
	}
}

func TestSumLaw_ByStatusAndBySourceMatchLen(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	leads := []domain.Lead{
		mkLead("google", "a", "Acme", domain.StatusNew, base),
		mkLead("google", "b", "Acme", domain.StatusContacted, base.Add(time.Hour)),
		mkLead("capterra", "iot", "Globex", domain.StatusNew, base.Add(2*time.Hour)),
		mkLead("direct", "", "", domain.StatusConverted, base.Add(3*time.Hour)),
	}

	statusSum := 0
	for _, count := range ByStatus(leads) {
		statusSum += count
	}
	sourceSum := 0
	for _, count := range BySource(leads) {
		sourceSum += count
	}

	if statusSum != len(leads) || sourceSum != len(leads) {
		t.Fatalf("expected both sums to equal %d, got status=%d source=%d", len(leads), statusSum, sourceSum)
	}
}

func TestByStatus_AlwaysFiveKeys(t *testing.T) {
	for _, leads := range [][]domain.Lead{
		nil,
		{},
		{mkLead("google", "a", "", domain.StatusNew, time.Now())},
	} {
		counts := ByStatus(leads)
		if len(counts) != 5 {
			t.Fatalf("expected exactly 5 status keys, got %d", len(counts))
		}
		for _, status := range domain.Statuses() {
			if counts[status] < 0 {
				t.Fatalf("expected non-negative count for %s", status)
			}
		}
	}
}

func TestWeekStart_MondayBoundary(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		// A Monday maps to itself at midnight.
		{time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		// A Sunday belongs to the week starting the previous Monday.
		{time.Date(2026, 3, 8, 23, 59, 59, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		// A Wednesday.
		{time.Date(2026, 3, 4, 0, 0, 1, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		if got := WeekStart(tc.in); !got.Equal(tc.want) {
			t.Fatalf("WeekStart(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestByWeek_DistinctWeeksProduceDistinctBuckets(t *testing.T) {
	week1 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)  // week of Mar 2
	week2 := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC) // week of Mar 9
	leads := []domain.Lead{
		mkLead("google", "temperature-monitoring", "", domain.StatusNew, week1),
		mkLead("google", "temperature-monitoring", "", domain.StatusNew, week2),
	}

	buckets := ByWeek(leads)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 week buckets, got %d", len(buckets))
	}
	for _, bucket := range buckets {
		if bucket.Source != "google" || bucket.Count != 1 {
			t.Fatalf("expected count=1 for google in each bucket, got %+v", bucket)
		}
	}
	if !buckets[0].WeekStart.Before(buckets[1].WeekStart) {
		t.Fatalf("expected buckets sorted by week, got %v then %v", buckets[0].WeekStart, buckets[1].WeekStart)
	}
}

func TestByWeek_SparseSeriesAndDeterministicOrder(t *testing.T) {
	// Two sources in one week, one source five weeks later: sparse in between.
	week1 := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	week6 := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	leads := []domain.Lead{
		mkLead("google", "a", "", domain.StatusNew, week1),
		mkLead("capterra", "iot", "", domain.StatusNew, week1),
		mkLead("google", "a", "", domain.StatusNew, week6),
	}

	buckets := ByWeek(leads)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 sparse buckets (no zero-filling), got %d", len(buckets))
	}
	// Same week sorts by source name.
	if buckets[0].Source != "capterra" || buckets[1].Source != "google" {
		t.Fatalf("expected capterra before google inside a week, got %s then %s", buckets[0].Source, buckets[1].Source)
	}
}

func TestByListing_DescendingWithStableTies(t *testing.T) {
	base := time.Now().UTC()
	leads := []domain.Lead{
		mkLead("google", "first-seen", "", domain.StatusNew, base),
		mkLead("google", "second-seen", "", domain.StatusNew, base),
		mkLead("capterra", "winner", "", domain.StatusNew, base),
		mkLead("capterra", "winner", "", domain.StatusNew, base),
	}

	listings := ByListing(leads)
	if len(listings) != 3 {
		t.Fatalf("expected 3 listing groups, got %d", len(listings))
	}
	if listings[0].Listing != "winner" || listings[0].Count != 2 {
		t.Fatalf("expected winner first with count 2, got %+v", listings[0])
	}
	// Tie between first-seen and second-seen holds insertion order.
	if listings[1].Listing != "first-seen" || listings[2].Listing != "second-seen" {
		t.Fatalf("expected stable tie order, got %s then %s", listings[1].Listing, listings[2].Listing)
	}
}

func TestTopCompanies_RankingAndTimestamps(t *testing.T) {
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	leads := []domain.Lead{
		mkLead("google", "a", "Acme", domain.StatusNew, base),
		mkLead("google", "a", "Acme", domain.StatusNew, base.Add(48*time.Hour)),
		mkLead("google", "a", "Globex", domain.StatusNew, base.Add(24*time.Hour)),
		mkLead("google", "a", "", domain.StatusNew, base), // no company, skipped
	}

	companies := TopCompanies(leads, 10)
	if len(companies) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(companies))
	}
	if companies[0].Company != "Acme" || companies[0].Count != 2 {
		t.Fatalf("expected Acme first with count 2, got %+v", companies[0])
	}
	if !companies[0].FirstLeadAt.Equal(base) || !companies[0].LastLeadAt.Equal(base.Add(48*time.Hour)) {
		t.Fatalf("expected first/last timestamps %v/%v, got %v/%v",
			base, base.Add(48*time.Hour), companies[0].FirstLeadAt, companies[0].LastLeadAt)
	}
}

func TestTopCompanies_TieBrokenByMostRecentLead(t *testing.T) {
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	leads := []domain.Lead{
		mkLead("google", "a", "Older", domain.StatusNew, base),
		mkLead("google", "a", "Newer", domain.StatusNew, base.Add(time.Hour)),
	}

	companies := TopCompanies(leads, 10)
	if companies[0].Company != "Newer" {
		t.Fatalf("expected tie broken by most recent lead, got %s first", companies[0].Company)
	}
}

func TestTopCompanies_Truncation(t *testing.T) {
	base := time.Now().UTC()
	leads := []domain.Lead{
		mkLead("google", "a", "A", domain.StatusNew, base),
		mkLead("google", "a", "B", domain.StatusNew, base),
		mkLead("google", "a", "C", domain.StatusNew, base),
	}

	if got := TopCompanies(leads, 2); len(got) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(got))
	}
}

func TestTopCompanies_CaseSensitiveGrouping(t *testing.T) {
	base := time.Now().UTC()
	leads := []domain.Lead{
		mkLead("google", "a", "acme", domain.StatusNew, base),
		mkLead("google", "a", "Acme", domain.StatusNew, base),
	}

	if got := TopCompanies(leads, 10); len(got) != 2 {
		t.Fatalf("expected case-sensitive grouping to keep 2 entries, got %d", len(got))
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		count, total, want int
	}{
		{0, 0, 0}, // zero total renders as 0, never a fault
		{5, 0, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 200, 1},
		{3, 3, 100},
	}

	for _, tc := range cases {
		if got := Percent(tc.count, tc.total); got != tc.want {
			t.Fatalf("Percent(%d, %d) = %d, want %d", tc.count, tc.total, got, tc.want)
		}
	}
}
