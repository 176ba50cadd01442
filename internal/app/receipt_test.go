package app_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

var receipt = app.Receipt{Hotel: "Debuggers Hut Serviced Apartments", Currency: "AUD"}

func TestReceipt_WriteBooking(t *testing.T) {
	var buf bytes.Buffer
	req := domain.BookingRequest{ApartmentID: "U12swan", GuestName: "Alyssa", Nights: 3}
	res := domain.BookingResult{TotalCost: 285, PointsEarned: 285, NewPointsTotal: 305}

	require.NoError(t, receipt.WriteBooking(&buf, req, 95, res))
	out := buf.String()

	assert.Contains(t, out, strings.Repeat("=", 57))
	assert.Contains(t, out, "Debuggers Hut Serviced Apartments")
	assert.Contains(t, out, "U12swan")
	assert.Contains(t, out, "$95.00 (AUD)")
	assert.Contains(t, out, "3 (nights)")
	assert.Contains(t, out, "$285.00 (AUD)")
	assert.Contains(t, out, "New points total:  305")
}

func TestReceipt_WriteOrder(t *testing.T) {
	svc, s := newService(t)
	require.NoError(t, s.Guests.SetPoints("Luigi", 250))
	o, err := svc.Checkout(fullRequest())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, receipt.WriteOrder(&buf, o))
	out := buf.String()

	assert.Contains(t, out, "Number of guests:  4")
	assert.Contains(t, out, "Check-in date:     10/3/2026")
	assert.Contains(t, out, "Supplementary items")
	assert.Contains(t, out, "extra_bed")
	assert.Contains(t, out, "Sub-total:         $121.00")
	assert.Contains(t, out, "Discount:          -$20.00 (AUD) (200 points)")
	assert.Contains(t, out, "Total cost:        $291.00 (AUD)")
	assert.Contains(t, out, o.ID)
}

func TestReceipt_WriteOrder_PlainBooking(t *testing.T) {
	var buf bytes.Buffer
	o := domain.Order{GuestName: "Alyssa", NumGuests: 1, ApartmentID: "U12swan", NightlyRate: 95, Nights: 1,
		PreTotal: 95, FinalTotal: 95, PointsEarned: 95}

	require.NoError(t, receipt.WriteOrder(&buf, o))
	out := buf.String()

	assert.NotContains(t, out, "Supplementary items")
	assert.NotContains(t, out, "Discount:")
	assert.NotContains(t, out, "Reference:")
	assert.Contains(t, out, "Check-in date:     -")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestReceipt_WriteError(t *testing.T) {
	err := receipt.WriteBooking(failingWriter{}, domain.BookingRequest{}, 0, domain.BookingResult{})
	assert.EqualError(t, err, "closed")
}
