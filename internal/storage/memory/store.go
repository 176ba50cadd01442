// Package memory is the process-lifetime storage: apartments, guests, supplementary
// items and order history, all held in maps guarded by per-table mutexes.
package memory

import (
	"slices"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

var (
	_ domain.RateCatalogue = (*Catalogue)(nil)
	_ domain.GuestLedger   = (*Ledger)(nil)
	_ domain.ItemCatalogue = (*Items)(nil)
	_ domain.OrderHistory  = (*Orders)(nil)
)

// Seed is the initial content a Store starts with and returns to on reset.
type Seed struct {
	Apartments []domain.Apartment
	Guests     []domain.Guest
	Items      []domain.Item
}

type Store struct {
	Apartments *Catalogue
	Guests     *Ledger
	Items      *Items
	Orders     *Orders

	seed Seed
}

// New builds a store loaded with seed. foldCase makes Search case-insensitive.
func New(seed Seed, foldCase bool) *Store {
	s := &Store{
		Apartments: NewCatalogue(foldCase),
		Guests:     NewLedger(foldCase),
		Items:      NewItems(),
		Orders:     NewOrders(),
		seed: Seed{
			Apartments: slices.Clone(seed.Apartments),
			Guests:     slices.Clone(seed.Guests),
			Items:      slices.Clone(seed.Items),
		},
	}
	s.load()
	return s
}

type ResetCounts struct {
	Apartments int
	Guests     int
}

// ResetToDefaults restores the seed and drops order history.
func (s *Store) ResetToDefaults() ResetCounts {
	s.load()
	s.Orders.clear()
	rc := ResetCounts{Apartments: s.Apartments.Len(), Guests: s.Guests.Len()}
	log.Info().Int("apartments", rc.Apartments).Int("guests", rc.Guests).Msg("storage reset to defaults")
	return rc
}

func (s *Store) ClearApartments() int { return s.Apartments.Clear() }
func (s *Store) ClearGuests() int     { return s.Guests.Clear() }

func (s *Store) ClearAll() ResetCounts {
	return ResetCounts{Apartments: s.ClearApartments(), Guests: s.ClearGuests()}
}

type Summary struct {
	TotalApartments     int
	TotalGuests         int
	TotalPoints         int
	TotalApartmentValue float64
	AverageRate         float64
	AveragePoints       float64
}

func (s *Store) Summary() Summary {
	apts := s.Apartments.List()
	out := Summary{
		TotalApartments: len(apts),
		TotalGuests:     s.Guests.Len(),
		TotalPoints:     s.Guests.TotalPoints(),
	}
	for _, a := range apts {
		out.TotalApartmentValue += a.NightlyRate
	}
	if out.TotalApartments > 0 {
		out.AverageRate = out.TotalApartmentValue / float64(out.TotalApartments)
	}
	if out.TotalGuests > 0 {
		out.AveragePoints = float64(out.TotalPoints) / float64(out.TotalGuests)
	}
	return out
}

func (s *Store) load() {
	s.Apartments.load(s.seed.Apartments)
	s.Guests.load(s.seed.Guests)
	s.Items.load(s.seed.Items)
}
