// Package observability exposes Prometheus metrics for the rewind service.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service's metrics on a private registry, so tests can
// build as many collectors as they like. All methods accept a nil receiver.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	EntriesCreated  prometheus.Counter
	EntriesDeleted  prometheus.Counter
	EntriesImported prometheus.Counter
	Searches        *prometheus.CounterVec
	Captures        *prometheus.CounterVec
}

// NewCollector creates a collector whose metric names carry namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		EntriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_created_total",
			Help:      "Total number of entries added",
		}),
		EntriesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_deleted_total",
			Help:      "Total number of entries removed, including trims and clears",
		}),
		EntriesImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_imported_total",
			Help:      "Total number of entries restored from backups",
		}),
		Searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of timeline queries by search mode",
			},
			[]string{"mode"},
		),
		Captures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "captures_total",
				Help:      "Total number of simulated captures by entry type",
			},
			[]string{"type"},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.EntriesCreated,
		c.EntriesDeleted,
		c.EntriesImported,
		c.Searches,
		c.Captures,
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) RecordHTTP(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) EntryCreated() {
	if c == nil {
		return
	}
	c.EntriesCreated.Inc()
}

func (c *Collector) EntriesRemoved(n int64) {
	if c == nil || n <= 0 {
		return
	}
	c.EntriesDeleted.Add(float64(n))
}

func (c *Collector) Imported(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.EntriesImported.Add(float64(n))
}

func (c *Collector) SearchPerformed(mode string) {
	if c == nil {
		return
	}
	c.Searches.WithLabelValues(mode).Inc()
}

func (c *Collector) Captured(entryType string) {
	if c == nil {
		return
	}
	c.Captures.WithLabelValues(entryType).Inc()
}
