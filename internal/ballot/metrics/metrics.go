// Package metrics holds the Prometheus collectors for the ballot service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/ballot/pkg/httpx"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ballot"

// Metrics is safe to use as a nil pointer; every recording method is then a
// no-op, which keeps services usable without a registry in tests.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	ProposalsCreated     prometheus.Counter
	ProposalsExpired     prometheus.Counter
	ProposalsDeleted     prometheus.Counter
	VotesCast            *prometheus.CounterVec
	CommentsAdded        prometheus.Counter
	NotificationsEmitted *prometheus.CounterVec
	PublishFailures      prometheus.Counter
}

// New builds a collector set on its own registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ProposalsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_created_total",
			Help:      "Proposals created",
		}),
		ProposalsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_expired_total",
			Help:      "Active proposals moved to expired by reconcile",
		}),
		ProposalsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_deleted_total",
			Help:      "Proposals deleted by an admin",
		}),
		VotesCast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_cast_total",
			Help:      "Votes cast, by option",
		}, []string{"option"}),
		CommentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_added_total",
			Help:      "Comments added",
		}),
		NotificationsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_emitted_total",
			Help:      "Notifications recorded, by type",
		}, []string{"type"}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_publish_failures_total",
			Help:      "Notifications that could not be handed to the publisher",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.ProposalsCreated,
		m.ProposalsExpired,
		m.ProposalsDeleted,
		m.VotesCast,
		m.CommentsAdded,
		m.NotificationsEmitted,
		m.PublishFailures,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency per route pattern. It must
// wrap the ServeMux directly so the matched pattern is visible afterwards.
func (m *Metrics) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &slogx.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.Status)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

func (m *Metrics) ProposalCreated() {
	if m != nil {
		m.ProposalsCreated.Inc()
	}
}

func (m *Metrics) ProposalExpired() {
	if m != nil {
		m.ProposalsExpired.Inc()
	}
}

func (m *Metrics) ProposalDeleted() {
	if m != nil {
		m.ProposalsDeleted.Inc()
	}
}

func (m *Metrics) VoteCast(option string) {
	if m != nil {
		m.VotesCast.WithLabelValues(option).Inc()
	}
}

func (m *Metrics) CommentAdded() {
	if m != nil {
		m.CommentsAdded.Inc()
	}
}

func (m *Metrics) NotificationEmitted(kind string) {
	if m != nil {
		m.NotificationsEmitted.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) PublishFailed() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}
