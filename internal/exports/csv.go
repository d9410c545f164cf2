// Package exports renders the leads view as CSV. The transform is a pure,
// stateless function over the view output so callers can rely on a stable
// column contract.
package exports

import (
	"encoding/csv"
	"io"

	leadstransport "funnel_analytics_backend/internal/leads/transport"
)

// Columns is the CSV column contract, in order.
var Columns = []string{
	"date",
	"source",
	"name",
	"email",
	"company",
	"job_title",
	"phone",
	"listing_category",
	"status",
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_content",
	"utm_term",
}

const dateLayout = "2006-01-02 15:04:05"

// WriteLeadsCSV writes the header row followed by one row per lead.
func WriteLeadsCSV(w io.Writer, leads []leadstransport.LeadResponse) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return err
	}

	for _, lead := range leads {
		row := []string{
			lead.CreatedAt.UTC().Format(dateLayout),
			lead.Source,
			lead.Name,
			lead.Email,
			lead.Company,
			lead.JobTitle,
			lead.Phone,
			listingCategory(lead),
			lead.Status,
			lead.UTMSource,
			lead.UTMMedium,
			lead.UTMCampaign,
			lead.UTMContent,
			lead.UTMTerm,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// listingCategory joins the listing slug and its human-readable label into
// the single listing/category column.
func listingCategory(lead leadstransport.LeadResponse) string {
	switch {
	case lead.Listing != "" && lead.CategoryLabel != "":
		return lead.Listing + " / " + lead.CategoryLabel
	case lead.Listing != "":
		return lead.Listing
	default:
		return lead.CategoryLabel
	}
}
