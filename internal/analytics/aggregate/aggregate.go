// Package aggregate computes the channel-performance aggregate views. Every
// function is pure over its lead slice: no I/O, no shared state, safe for
// concurrent callers.
package aggregate

import (
	"math"
	"sort"
	"time"

	"funnel_analytics_backend/internal/leads/domain"
)

// WeekCount is one (week, source) bucket of the by-week time series.
type WeekCount struct {
	WeekStart time.Time `json:"weekStart"`
	Source    string    `json:"source"`
	Count     int       `json:"count"`
}

// ListingCount is one (source, listing, categoryLabel) group.
type ListingCount struct {
	Source        string `json:"source"`
	Listing       string `json:"listing"`
	CategoryLabel string `json:"categoryLabel"`
	Count         int    `json:"count"`
}

// CompanyStat is one ranked company with its activity span.
type CompanyStat struct {
	Company     string    `json:"company"`
	Count       int       `json:"count"`
	FirstLeadAt time.Time `json:"firstLeadAt"`
	LastLeadAt  time.Time `json:"lastLeadAt"`
}

// BySource counts leads per source channel.
func BySource(leads []domain.Lead) map[string]int {
	counts := make(map[string]int)
	for _, lead := range leads {
		counts[lead.Source]++
	}
	return counts
}

// ByStatus counts leads per lifecycle status. The result always carries all
// five statuses, zero-defaulted, so downstream percentage math is never
// undefined.
func ByStatus(leads []domain.Lead) map[domain.Status]int {
	counts := make(map[domain.Status]int, 5)
	for _, status := range domain.Statuses() {
		counts[status] = 0
	}
	for _, lead := range leads {
		counts[lead.Status]++
	}
	return counts
}

// ByWeek buckets leads into calendar weeks keyed by (weekStart, source).
// Weeks with no leads are not synthesized; the series is sparse by design and
// sorted by week then source so repeated calls serialize identically.
func ByWeek(leads []domain.Lead) []WeekCount {
	type key struct {
		week   time.Time
		source string
	}
	counts := make(map[key]int)
	for _, lead := range leads {
		counts[key{week: WeekStart(lead.CreatedAt), source: lead.Source}]++
	}

	out := make([]WeekCount, 0, len(counts))
	for k, count := range counts {
		out = append(out, WeekCount{WeekStart: k.week, Source: k.source, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].WeekStart.Equal(out[j].WeekStart) {
			return out[i].WeekStart.Before(out[j].WeekStart)
		}
		return out[i].Source < out[j].Source
	})
	return out
}

// WeekStart returns midnight UTC of the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// ByListing groups leads by (source, listing, categoryLabel), sorted
// descending by count with ties holding first-seen order.
func ByListing(leads []domain.Lead) []ListingCount {
	type key struct {
		source  string
		listing string
		label   string
	}
	index := make(map[key]int)
	out := make([]ListingCount, 0)

	for _, lead := range leads {
		k := key{source: lead.Source, listing: lead.Listing, label: lead.CategoryLabel}
		if i, ok := index[k]; ok {
			out[i].Count++
			continue
		}
		index[k] = len(out)
		out = append(out, ListingCount{
			Source:        lead.Source,
			Listing:       lead.Listing,
			CategoryLabel: lead.CategoryLabel,
			Count:         1,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// TopCompanies ranks companies by lead count with first/last lead timestamps.
// Company matching is case-sensitive; leads without a company are skipped.
// Ties are broken by the most recent last-lead timestamp.
func TopCompanies(leads []domain.Lead, limit int) []CompanyStat {
	index := make(map[string]int)
	out := make([]CompanyStat, 0)

	for _, lead := range leads {
		if lead.Company == "" {
			continue
		}
		i, ok := index[lead.Company]
		if !ok {
			index[lead.Company] = len(out)
			out = append(out, CompanyStat{
				Company:     lead.Company,
				Count:       1,
				FirstLeadAt: lead.CreatedAt,
				LastLeadAt:  lead.CreatedAt,
			})
			continue
		}
		out[i].Count++
		if lead.CreatedAt.Before(out[i].FirstLeadAt) {
			out[i].FirstLeadAt = lead.CreatedAt
		}
		if lead.CreatedAt.After(out[i].LastLeadAt) {
			out[i].LastLeadAt = lead.CreatedAt
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].LastLeadAt.After(out[j].LastLeadAt)
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Percent computes round(count / total * 100). A zero total renders as 0
// rather than faulting.
func Percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
