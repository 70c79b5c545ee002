// Package metrics exposes Prometheus collectors for HTTP traffic and auction
// activity on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Bid outcomes recorded by BidPlaced.
const (
	BidAccepted  = "accepted"
	BidTooLow    = "too_low"
	BidClosed    = "closed"
	BidForbidden = "forbidden"
	BidInvalid   = "invalid"
)

// Metrics holds every collector the application reports.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	bids            *prometheus.CounterVec
	listingsCreated prometheus.Counter
	listingsClosed  prometheus.Counter
	watchToggles    *prometheus.CounterVec
	comments        prometheus.Counter
}

// New registers all collectors, plus the Go runtime and process collectors,
// on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bids: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auction_bids_total",
			Help: "Bid attempts by outcome.",
		}, []string{"result"}),
		listingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_listings_created_total",
			Help: "Listings created.",
		}),
		listingsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_listings_closed_total",
			Help: "Close requests accepted from sellers.",
		}),
		watchToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auction_watchlist_toggles_total",
			Help: "Watchlist changes by action (add, remove).",
		}, []string{"action"}),
		comments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_comments_total",
			Help: "Comments posted.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.requestDuration, m.bids,
		m.listingsCreated, m.listingsClosed, m.watchToggles, m.comments,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) BidPlaced(result string) {
	m.bids.WithLabelValues(result).Inc()
}

func (m *Metrics) ListingCreated() {
	m.listingsCreated.Inc()
}

func (m *Metrics) ListingClosed() {
	m.listingsClosed.Inc()
}

// WatchlistToggled records whether a toggle added or removed the listing.
func (m *Metrics) WatchlistToggled(watching bool) {
	action := "remove"
	if watching {
		action = "add"
	}
	m.watchToggles.WithLabelValues(action).Inc()
}

func (m *Metrics) CommentPosted() {
	m.comments.Inc()
}
