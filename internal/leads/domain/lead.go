// Package domain holds the lead model shared by the repository, the
// lifecycle service and the analytics engine.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lead lifecycle status.
type Status string

const (
	StatusNew          Status = "new"
	StatusContacted    Status = "contacted"
	StatusQualified    Status = "qualified"
	StatusDisqualified Status = "disqualified"
	StatusConverted    Status = "converted"
)

// Statuses returns every lifecycle status in funnel order.
func Statuses() []Status {
	return []Status{StatusNew, StatusContacted, StatusQualified, StatusDisqualified, StatusConverted}
}

// Valid reports whether s is one of the five lifecycle statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusDisqualified, StatusConverted:
		return true
	}
	return false
}

// Lead is one captured form submission. Core fields are immutable after
// ingestion; only Status and Notes are mutable.
type Lead struct {
	ID            uuid.UUID
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
	Status        Status
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TimeWindow is a half-open interval [Start, End) over lead creation times.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// WindowDays builds the window ending at now and reaching days back.
func WindowDays(days int, now time.Time) TimeWindow {
	return TimeWindow{
		Start: now.AddDate(0, 0, -days),
		End:   now,
	}
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
