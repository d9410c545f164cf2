// Package reconcile joins the endpoint registry against observed lead events
// so that endpoints with zero leads are still represented, and surfaces the
// count of leads no configured endpoint can claim.
package reconcile

import (
	"sort"
	"time"

	"funnel_analytics_backend/internal/leads/domain"
	"funnel_analytics_backend/internal/registry"
)

// PageStat merges one capture endpoint with its observed lead aggregates.
// Endpoints that never received a lead still produce a PageStat with every
// count at zero and nil timestamps.
type PageStat struct {
	Endpoint    registry.CaptureEndpoint `json:"endpoint"`
	Total       int                      `json:"total"`
	ByStatus    map[domain.Status]int    `json:"byStatus"`
	FirstLeadAt *time.Time               `json:"firstLeadAt"`
	LastLeadAt  *time.Time               `json:"lastLeadAt"`
}

// Reconcile left-joins the registry against per-(source, listing) lead
// aggregates. Every configured endpoint appears exactly once, in registry
// order. Leads whose (source, listing) matches no endpoint cannot be
// attributed to a page; they are excluded from the PageStat list but counted
// in the returned unattributed total so the gap stays observable.
func Reconcile(endpoints []registry.CaptureEndpoint, leads []domain.Lead) ([]PageStat, int) {
	type bucket struct {
		total    int
		byStatus map[domain.Status]int
		first    time.Time
		last     time.Time
	}

	buckets := make(map[registry.EndpointKey]*bucket)
	known := make(map[registry.EndpointKey]struct{}, len(endpoints))
	for _, endpoint := range endpoints {
		known[endpoint.Key()] = struct{}{}
	}

	unattributed := 0
	for _, lead := range leads {
		key := registry.EndpointKey{Source: lead.Source, Listing: lead.Listing}
		if _, ok := known[key]; !ok {
			unattributed++
			continue
		}
		b := buckets[key]
		if b == nil {
			b = &bucket{byStatus: zeroStatusCounts(), first: lead.CreatedAt, last: lead.CreatedAt}
			buckets[key] = b
		}
		b.total++
		b.byStatus[lead.Status]++
		if lead.CreatedAt.Before(b.first) {
			b.first = lead.CreatedAt
		}
		if lead.CreatedAt.After(b.last) {
			b.last = lead.CreatedAt
		}
	}

	stats := make([]PageStat, 0, len(endpoints))
	for _, endpoint := range endpoints {
		stat := PageStat{
			Endpoint: endpoint,
			ByStatus: zeroStatusCounts(),
		}
		if b, ok := buckets[endpoint.Key()]; ok {
			stat.Total = b.total
			stat.ByStatus = b.byStatus
			first, last := b.first, b.last
			stat.FirstLeadAt = &first
			stat.LastLeadAt = &last
		}
		stats = append(stats, stat)
	}

	return stats, unattributed
}

// PageSort selects the ordering of the pages view.
type PageSort string

const (
	// PageSortLeads orders by descending total, registry order on ties.
	PageSortLeads PageSort = "leads"
	// PageSortRecent orders by descending last-lead timestamp; endpoints
	// without leads sort after every endpoint with at least one lead,
	// holding registry order among themselves.
	PageSortRecent PageSort = "recent"
	// PageSortName orders ascending by category label.
	PageSortName PageSort = "name"
)

// Valid reports whether s is a supported sort key.
func (s PageSort) Valid() bool {
	switch s {
	case PageSortLeads, PageSortRecent, PageSortName:
		return true
	}
	return false
}

// SortPageStats orders stats in place. Input is expected in registry order,
// which stable sorting preserves as the tie-break.
func SortPageStats(stats []PageStat, key PageSort) {
	switch key {
	case PageSortLeads:
		sort.SliceStable(stats, func(i, j int) bool {
			return stats[i].Total > stats[j].Total
		})
	case PageSortRecent:
		sort.SliceStable(stats, func(i, j int) bool {
			a, b := stats[i].LastLeadAt, stats[j].LastLeadAt
			switch {
			case a != nil && b != nil:
				return a.After(*b)
			case a != nil:
				return true
			default:
				return false
			}
		})
	case PageSortName:
		sort.SliceStable(stats, func(i, j int) bool {
			return stats[i].Endpoint.CategoryLabel < stats[j].Endpoint.CategoryLabel
		})
	}
}

func zeroStatusCounts() map[domain.Status]int {
	counts := make(map[domain.Status]int, 5)
	for _, status := range domain.Statuses() {
		counts[status] = 0
	}
	return counts
}
