package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"hotel_booking/internal/domain"
)

// DateLayout is the d/m/yyyy format used on receipts and prompts.
const DateLayout = "2/1/2006"

var (
	heavyRule = strings.Repeat("=", 57)
	lightRule = strings.Repeat("-", 57)
)

type Receipt struct {
	Hotel    string
	Currency string
}

// receiptWriter remembers the first write error so the render functions can
// check once at the end.
type receiptWriter struct {
	w   io.Writer
	err error
}

func (rw *receiptWriter) printf(format string, args ...any) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}

func (r Receipt) header(rw *receiptWriter) {
	rw.printf("%s\n", heavyRule)
	rw.printf("%s - Booking Receipt\n", r.Hotel)
	rw.printf("%s\n", heavyRule)
}

func (r Receipt) money(v float64) string {
	return fmt.Sprintf("$%.2f (%s)", v, r.Currency)
}

// WriteBooking prints the short receipt for a RunOnce booking.
func (r Receipt) WriteBooking(w io.Writer, req domain.BookingRequest, rate float64, res domain.BookingResult) error {
	rw := &receiptWriter{w: w}
	r.header(rw)
	rw.printf("Guest name:        %s\n", req.GuestName)
	rw.printf("Apartment:         %s\n", req.ApartmentID)
	rw.printf("Nightly rate:      %s\n", r.money(rate))
	rw.printf("Length of stay:    %d (nights)\n", req.Nights)
	rw.printf("%s\n", lightRule)
	rw.printf("Total cost:        %s\n", r.money(res.TotalCost))
	rw.printf("Points earned:     %d\n", res.PointsEarned)
	rw.printf("New points total:  %d\n", res.NewPointsTotal)
	rw.printf("%s\n", heavyRule)
	return rw.err
}

// WriteOrder prints the full receipt, with the supplementary section and the
// discount lines only when they apply.
func (r Receipt) WriteOrder(w io.Writer, o domain.Order) error {
	rw := &receiptWriter{w: w}
	r.header(rw)
	rw.printf("Guest name:        %s\n", o.GuestName)
	rw.printf("Number of guests:  %d\n", o.NumGuests)
	rw.printf("Apartment name:    %s\n", o.ApartmentID)
	rw.printf("Apartment rate:    %s\n", r.money(o.NightlyRate))
	rw.printf("Check-in date:     %s\n", formatDate(o.CheckIn))
	rw.printf("Check-out date:    %s\n", formatDate(o.CheckOut))
	rw.printf("Length of stay:    %d (nights)\n", o.Nights)
	rw.printf("Booking date:      %s\n", formatDate(o.BookedOn))
	rw.printf("%s\n", lightRule)

	if len(o.Lines) > 0 {
		rw.printf("Supplementary items\n")
		for _, l := range o.Lines {
			rw.printf("  %-14s x%-4d @ $%-8.2f = $%.2f\n", l.ItemID, l.Quantity, l.UnitPrice, l.Cost())
		}
		rw.printf("Sub-total:         $%.2f\n", o.ItemsSubtotal)
		rw.printf("%s\n", lightRule)
	}

	if o.Discount > 0 {
		rw.printf("Subtotal:          %s\n", r.money(o.PreTotal))
		rw.printf("Discount:          -%s (%d points)\n", r.money(o.Discount), o.PointsSpent)
	}
	rw.printf("Total cost:        %s\n", r.money(o.FinalTotal))
	rw.printf("Reward points:     %d\n", o.PointsEarned)
	if o.ID != "" {
		rw.printf("New points total:  %d\n", o.NewPointsTotal)
		rw.printf("Reference:         %s\n", o.ID)
	}
	rw.printf("\nThank you for your booking!\nWe hope you will have an enjoyable stay.\n")
	rw.printf("%s\n", heavyRule)
	return rw.err
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}
