package observability_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so counters are non-zero
	observability.ObserveHTTP("/healthz", "GET", 200, 12*time.Millisecond)
	observability.ObserveBooking("quick", "ok", 285, 285, 0)
	observability.ObserveStore("ledger", "add_points", nil)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{"hotel_http_requests_total", "hotel_bookings_total", "hotel_points_awarded_total", "hotel_store_operations_total"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestOutcome(t *testing.T) {
	cases := map[string]error{
		"ok":                nil,
		"invalid":           fmt.Errorf("%w: nights", domain.ErrValidation),
		"not_found":         fmt.Errorf("%w: guest", domain.ErrNotFound),
		"unknown_apartment": domain.ErrUnknownApartment,
		"error":             io.EOF,
	}
	for want, err := range cases {
		if got := observability.Outcome(err); got != want {
			t.Fatalf("Outcome(%v) = %q, want %q", err, got, want)
		}
	}
	if got := observability.Outcome(domain.ErrInsufficientPoints); got != "invalid" {
		t.Fatalf("insufficient points should be invalid, got %q", got)
	}
}
