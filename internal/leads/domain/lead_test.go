package domain

import (
	"testing"
	"time"
)

func TestStatusValid(t *testing.T) {
	for _, status := range Statuses() {
		if !status.Valid() {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	for _, status := range []Status{"", "won", "NEW", "Contacted", "archived"} {
		if status.Valid() {
			t.Fatalf("expected %q to be invalid", status)
		}
	}
}

func TestStatusesFunnelOrder(t *testing.T) {
	want := []Status{StatusNew, StatusContacted, StatusQualified, StatusDisqualified, StatusConverted}
	got := Statuses()
	if len(got) != len(want) {
		t.Fatalf("expected %d statuses, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %q at position %d, got %q", want[i], i, got[i])
		}
	}
}

func TestTimeWindowHalfOpen(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	window := WindowDays(30, now)

	if !window.Start.Equal(now.AddDate(0, 0, -30)) {
		t.Fatalf("expected start 30 days back, got %v", window.Start)
	}
	if window.Contains(window.Start.Add(-time.Second)) {
		t.Fatalf("expected instant before start to be outside")
	}
	if !window.Contains(window.Start) {
		t.Fatalf("expected start instant to be inside")
	}
	if !window.Contains(now.Add(-time.Second)) {
		t.Fatalf("expected instant just before end to be inside")
	}
	if window.Contains(now) {
		t.Fatalf("expected end instant to be outside")
	}
}
