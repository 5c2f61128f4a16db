// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendee_registrations_total",
			Help: "Registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	statusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendee_status_transitions_total",
			Help: "Attendee status transitions by target status",
		},
		[]string{"to"},
	)

	ticketsReserved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_reserved_total",
			Help: "Ticket inventory units reserved through registration",
		},
	)

	ticketsRestocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_restocked_total",
			Help: "Ticket inventory units restored by cancellations",
		},
	)
)

// TrackRegistration records a registration attempt outcome ("success",
// "duplicate", "capacity_exceeded", "not_found", "error").
func TrackRegistration(outcome string) {
	registrationsTotal.WithLabelValues(outcome).Inc()
}

// TrackStatusTransition records a successful attendee transition.
func TrackStatusTransition(to string) {
	statusTransitionsTotal.WithLabelValues(to).Inc()
}

// TrackTicketReserved records one unit taken from ticket inventory.
func TrackTicketReserved() {
	ticketsReserved.Inc()
}

// TrackTicketRestocked records one unit returned to ticket inventory.
func TrackTicketRestocked() {
	ticketsRestocked.Inc()
}

// Middleware instruments every request with a duration histogram.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the /metrics endpoint handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
