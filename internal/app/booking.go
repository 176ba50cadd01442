package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/pricing"
)

type BookingService struct {
	rates  domain.RateCatalogue
	guests domain.GuestLedger
	items  domain.ItemCatalogue
	orders domain.OrderHistory
	now    func() time.Time
}

func NewBookingService(r domain.RateCatalogue, g domain.GuestLedger, items domain.ItemCatalogue, orders domain.OrderHistory) *BookingService {
	return &BookingService{rates: r, guests: g, items: items, orders: orders, now: time.Now}
}

// RunOnce books nights at apartmentID for guestName and credits the reward points.
// The ledger update is the only side effect and happens after every check passed.
func (s *BookingService) RunOnce(apartmentID, guestName string, nights int) (res domain.BookingResult, err error) {
	defer func() {
		observability.ObserveBooking("quick", observability.Outcome(err), res.TotalCost, res.PointsEarned, 0)
	}()

	rate := s.rates.GetRate(apartmentID)
	if rate == 0 {
		return domain.BookingResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownApartment, apartmentID)
	}
	if nights <= 0 {
		return domain.BookingResult{}, fmt.Errorf("%w: nights must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(guestName) == "" {
		return domain.BookingResult{}, fmt.Errorf("%w: guest name cannot be empty", domain.ErrValidation)
	}

	cost, err := pricing.ComputeTotalCost(rate, nights)
	if err != nil {
		return domain.BookingResult{}, err
	}
	earned, err := pricing.PointsRoundHalfUp(cost)
	if err != nil {
		return domain.BookingResult{}, err
	}

	total, err := s.guests.AddPoints(guestName, earned)
	if err != nil {
		return domain.BookingResult{}, fmt.Errorf("award points to %q: %w", guestName, err)
	}

	log.Info().
		Str("apartment", apartmentID).
		Str("guest", guestName).
		Int("nights", nights).
		Float64("cost", cost).
		Int("earned", earned).
		Msg("booking completed")

	return domain.BookingResult{TotalCost: cost, PointsEarned: earned, NewPointsTotal: total}, nil
}

// Quote prices a full booking without touching the ledger or history.
func (s *BookingService) Quote(req domain.CheckoutRequest) (domain.Order, error) {
	rate := s.rates.GetRate(req.ApartmentID)
	if rate == 0 {
		return domain.Order{}, fmt.Errorf("%w: %q", domain.ErrUnknownApartment, req.ApartmentID)
	}
	if strings.TrimSpace(req.GuestName) == "" {
		return domain.Order{}, fmt.Errorf("%w: guest name cannot be empty", domain.ErrValidation)
	}
	if req.NumGuests <= 0 {
		return domain.Order{}, fmt.Errorf("%w: number of guests must be positive", domain.ErrValidation)
	}
	if req.Nights <= 0 {
		return domain.Order{}, fmt.Errorf("%w: nights must be positive", domain.ErrValidation)
	}
	if !req.CheckIn.IsZero() && !req.CheckOut.IsZero() && !req.CheckOut.After(req.CheckIn) {
		return domain.Order{}, fmt.Errorf("%w: check-out must be after check-in", domain.ErrValidation)
	}
	if err := s.checkCapacity(req); err != nil {
		return domain.Order{}, err
	}

	aptCost, err := pricing.ComputeTotalCost(rate, req.Nights)
	if err != nil {
		return domain.Order{}, err
	}

	lines := req.Items
	if req.ExtraBeds > 0 {
		lines = append([]domain.LineItem{{ItemID: domain.ExtraBedItem, Quantity: req.ExtraBeds * req.Nights}}, lines...)
	}
	priced, subtotal, err := pricing.ItemsSubtotal(lines, s.items.Price)
	if err != nil {
		return domain.Order{}, err
	}

	pre := aptCost + subtotal
	final, discount, spent := pre, 0.0, 0
	if req.RedeemBlocks > 0 {
		final, discount, spent, err = pricing.ApplyPointsRedemption(pre, s.guests.GetPoints(req.GuestName), req.RedeemBlocks)
		if err != nil {
			return domain.Order{}, err
		}
	}
	earned, err := pricing.PointsRoundHalfUp(pre)
	if err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		GuestName:     req.GuestName,
		NumGuests:     req.NumGuests,
		ApartmentID:   req.ApartmentID,
		NightlyRate:   rate,
		Nights:        req.Nights,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		BookedOn:      req.BookedOn,
		Lines:         priced,
		ApartmentCost: aptCost,
		ItemsSubtotal: subtotal,
		PreTotal:      pre,
		Discount:      discount,
		FinalTotal:    final,
		PointsSpent:   spent,
		PointsEarned:  earned,
	}, nil
}

// Checkout quotes req, settles the guest's points (redeemed points out, earned
// points in) and records the order. Nothing is written if the quote fails.
func (s *BookingService) Checkout(req domain.CheckoutRequest) (o domain.Order, err error) {
	defer func() {
		observability.ObserveBooking("checkout", observability.Outcome(err), o.FinalTotal, o.PointsEarned, o.PointsSpent)
	}()

	o, err = s.Quote(req)
	if err != nil {
		return domain.Order{}, err
	}
	total, err := s.guests.Settle(o.GuestName, o.PointsSpent, o.PointsEarned)
	if err != nil {
		return domain.Order{}, fmt.Errorf("settle points for %q: %w", o.GuestName, err)
	}

	o.ID = uuid.NewString()
	o.NewPointsTotal = total
	o.CreatedAt = s.now()
	s.orders.Record(o)

	log.Info().
		Str("order", o.ID).
		Str("apartment", o.ApartmentID).
		Str("guest", o.GuestName).
		Float64("pre_total", o.PreTotal).
		Float64("final_total", o.FinalTotal).
		Int("spent", o.PointsSpent).
		Int("earned", o.PointsEarned).
		Msg("checkout completed")
	return o, nil
}

func (s *BookingService) History(guestName string) []domain.Order {
	return s.orders.ForGuest(guestName)
}

func (s *BookingService) checkCapacity(req domain.CheckoutRequest) error {
	if req.ExtraBeds < 0 || req.ExtraBeds > pricing.MaxExtraBeds {
		return fmt.Errorf("%w: extra beds must be between 0 and %d", domain.ErrValidation, pricing.MaxExtraBeds)
	}
	capacity := s.rates.Capacity(req.ApartmentID) + req.ExtraBeds*pricing.PlacesPerExtraBed
	if req.NumGuests > capacity {
		return fmt.Errorf("%w: %d guests exceed capacity %d", domain.ErrValidation, req.NumGuests, capacity)
	}
	return nil
}
