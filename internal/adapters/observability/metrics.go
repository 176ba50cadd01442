package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotel_booking/internal/domain"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "http_requests_total", Help: "Ops HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotel", Name: "http_request_duration_seconds",
			Help:    "Ops HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	Bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "bookings_total", Help: "Bookings by kind and outcome."},
		[]string{"kind", "outcome"}, // kind: quick|checkout
	)
	PointsAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "hotel", Name: "points_awarded_total", Help: "Reward points earned by guests."},
	)
	PointsRedeemed = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "hotel", Name: "points_redeemed_total", Help: "Reward points spent on discounts."},
	)
	Revenue = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "hotel", Name: "booking_revenue_total", Help: "Sum of booking totals after discounts."},
	)
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "store_operations_total", Help: "In-memory store mutations."},
		[]string{"store", "op", "outcome"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, Bookings, PointsAwarded, PointsRedeemed, Revenue, StoreOps)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveBooking(kind, outcome string, total float64, earned, spent int) {
	Bookings.WithLabelValues(kind, outcome).Inc()
	if outcome != "ok" {
		return
	}
	Revenue.Add(total)
	PointsAwarded.Add(float64(earned))
	PointsRedeemed.Add(float64(spent))
}

func ObserveStore(store, op string, err error) {
	StoreOps.WithLabelValues(store, op, Outcome(err)).Inc()
}

// Outcome maps an error to a short metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUnknownApartment):
		return "unknown_apartment"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
