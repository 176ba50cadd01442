// Package pricing holds the booking arithmetic. Every function is pure.
package pricing

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

const (
	PointsPerBlock    = 100  // points spent per redemption block
	BlockValue        = 10.0 // currency taken off per block
	MaxExtraBeds      = 2
	PlacesPerExtraBed = 2

	maxPoints = float64(math.MaxInt)
)

// ComputeTotalCost returns rate * nights.
func ComputeTotalCost(rate float64, nights int) (float64, error) {
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: rate must be a non-negative number", domain.ErrValidation)
	}
	if nights <= 0 {
		return 0, fmt.Errorf("%w: nights must be positive", domain.ErrValidation)
	}
	total := rate * float64(nights)
	log.Debug().Float64("rate", rate).Int("nights", nights).Float64("total", total).Msg("total cost")
	return total, nil
}

// PointsRoundHalfUp converts an amount into reward points, one point per unit,
// rounding .5 upwards. The fraction is compared directly instead of flooring
// amount+0.5, which rounds 0.49999999999999994 up to 1.
func PointsRoundHalfUp(amount float64) (int, error) {
	if amount < 0 || math.IsNaN(amount) {
		return 0, fmt.Errorf("%w: amount cannot be negative", domain.ErrValidation)
	}
	if math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: amount must be finite", domain.ErrValidation)
	}
	whole := math.Floor(amount)
	if amount-whole >= 0.5 {
		whole++
	}
	if whole >= maxPoints {
		return 0, fmt.Errorf("%w: amount %g is too large", domain.ErrValidation, amount)
	}
	return int(whole), nil
}

// FinalCost subtracts discount from cost, never going below zero.
func FinalCost(cost, discount float64) (float64, error) {
	if cost < 0 {
		return 0, fmt.Errorf("%w: cost cannot be negative", domain.ErrValidation)
	}
	if discount < 0 {
		return 0, fmt.Errorf("%w: discount cannot be negative", domain.ErrValidation)
	}
	return math.Max(0, cost-discount), nil
}

// ItemsSubtotal prices each line through lookup. Unknown items fail with ErrNotFound.
func ItemsSubtotal(lines []domain.LineItem, lookup func(id string) (float64, bool)) ([]domain.OrderLine, float64, error) {
	out := make([]domain.OrderLine, 0, len(lines))
	var total float64
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, 0, fmt.Errorf("%w: quantity for %q must be positive", domain.ErrValidation, l.ItemID)
		}
		price, ok := lookup(l.ItemID)
		if !ok {
			return nil, 0, fmt.Errorf("%w: item %q", domain.ErrNotFound, l.ItemID)
		}
		ol := domain.OrderLine{ItemID: l.ItemID, Quantity: l.Quantity, UnitPrice: price}
		total += ol.Cost()
		out = append(out, ol)
	}
	return out, total, nil
}

// RequiredExtraBeds is how many extra beds numGuests need on top of capacity,
// capped at MaxExtraBeds.
func RequiredExtraBeds(numGuests, capacity int) int {
	if numGuests <= capacity {
		return 0
	}
	beds := (numGuests - capacity + PlacesPerExtraBed - 1) / PlacesPerExtraBed
	return min(MaxExtraBeds, beds)
}

// ApplyPointsRedemption spends up to blocks redemption blocks, bounded by the
// guest's balance and by the total. Returns the new total, the discount and the
// points spent.
func ApplyPointsRedemption(preTotal float64, balance, blocks int) (final, discount float64, spent int, err error) {
	if blocks < 0 {
		blocks = 0
	}
	byPoints := balance / PointsPerBlock
	byTotal := int(math.Floor(preTotal / BlockValue))
	n := max(0, min(blocks, byPoints, byTotal))
	discount = float64(n) * BlockValue
	final, err = FinalCost(preTotal, discount)
	if err != nil {
		return 0, 0, 0, err
	}
	return final, discount, n * PointsPerBlock, nil
}
