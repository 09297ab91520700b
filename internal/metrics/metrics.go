// Package metrics exposes Prometheus collectors for the ferment collection.
// Gauges are recomputed from a store snapshot on every change notification,
// so they never drift from the authoritative in-memory state.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MonksterFX/fermentation-station/internal/domain"
	"github.com/MonksterFX/fermentation-station/internal/query"
	"github.com/MonksterFX/fermentation-station/internal/store"
)

// Metrics holds the collectors and the registry they live in.
type Metrics struct {
	ferments store.FermentStore
	registry *prometheus.Registry

	fermentsByStatus *prometheus.GaugeVec
	openReminders    prometheus.Gauge
	changesTotal     *prometheus.CounterVec
}

var _ store.Watcher = (*Metrics)(nil)

// New creates the collectors on a private registry and registers the
// instance as a store watcher.
func New(ferments store.FermentStore) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		ferments: ferments,
		registry: registry,
		fermentsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ferment_collection_size",
			Help: "Number of ferments in the collection by status.",
		}, []string{"status"}),
		openReminders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ferment_open_reminders",
			Help: "Number of incomplete reminders across all ferments.",
		}),
		changesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ferment_collection_changes_total",
			Help: "Collection mutations observed, by change kind.",
		}, []string{"kind"}),
	}

	registry.MustRegister(m.fermentsByStatus, m.openReminders, m.changesTotal)

	ferments.Watch(m)
	m.refresh()

	return m
}

// Notify implements store.Watcher.
func (m *Metrics) Notify(event store.ChangeEvent) {
	m.changesTotal.WithLabelValues(string(event.Kind)).Inc()
	m.refresh()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) refresh() {
	ferments := m.ferments.List(context.Background())

	byStatus := make(map[domain.FermentStatus]int, len(domain.AllStatuses()))
	open := 0
	for _, f := range ferments {
		byStatus[f.Status]++
		for _, r := range f.Reminders {
			if !r.Completed {
				open++
			}
		}
	}

	// Publish zeroes for absent statuses so the series never disappear.
	for _, status := range domain.AllStatuses() {
		m.fermentsByStatus.WithLabelValues(string(status)).Set(float64(byStatus[status]))
	}
	m.openReminders.Set(float64(open))
}

// Snapshot returns the aggregate counts the gauges are built from. Shared
// with the stats endpoint so both surfaces agree.
func (m *Metrics) Snapshot(ctx context.Context) query.Stats {
	return query.Aggregate(m.ferments.List(ctx))
}
