// Package metrics exposes Prometheus instrumentation for the lead funnel.
// It is not HTTP-facing; it subscribes to domain events and keeps counters
// the /metrics endpoint serves.
package metrics

import (
	"context"

	"funnel_analytics_backend/internal/events"
	"funnel_analytics_backend/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Module wires domain events into Prometheus counters.
type Module struct {
	log *logger.Logger

	leadsIngested *prometheus.CounterVec
	statusChanges *prometheus.CounterVec
}

// New creates the metrics module and registers its collectors.
func New(log *logger.Logger) *Module {
	return &Module{
		log: log,
		leadsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leads_ingested_total",
				Help: "Leads accepted by the ingestion endpoint, by source channel.",
			},
			[]string{"source"},
		),
		statusChanges: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lead_status_changes_total",
				Help: "Lifecycle status mutations, by resulting status.",
			},
			[]string{"status"},
		),
	}
}

// RegisterHandlers subscribes the module to the domain events it counts.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(m.onLeadCreated))
	bus.Subscribe(events.LeadStatusChanged{}.EventName(), events.HandlerFunc(m.onStatusChanged))
}

func (m *Module) onLeadCreated(_ context.Context, event events.Event) error {
	created, ok := event.(events.LeadCreated)
	if !ok {
		m.log.Warn("unexpected event payload", "event", event.EventName())
		return nil
	}
	m.leadsIngested.WithLabelValues(created.Source).Inc()
	return nil
}

func (m *Module) onStatusChanged(_ context.Context, event events.Event) error {
	changed, ok := event.(events.LeadStatusChanged)
	if !ok {
		m.log.Warn("unexpected event payload", "event", event.EventName())
		return nil
	}
	m.statusChanges.WithLabelValues(changed.Status).Inc()
	return nil
}
