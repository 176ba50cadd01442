package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

type aptEntry struct {
	apt domain.Apartment
	seq uint64
}

// Catalogue maps apartment id to nightly rate and capacity.
type Catalogue struct {
	mu       sync.Mutex
	foldCase bool
	seq      uint64
	byID     map[string]*aptEntry
}

func NewCatalogue(foldCase bool) *Catalogue {
	return &Catalogue{foldCase: foldCase, byID: map[string]*aptEntry{}}
}

// GetRate returns 0 when id is unknown.
func (c *Catalogue) GetRate(id string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.byID[id]; ok {
		return e.apt.NightlyRate
	}
	log.Debug().Str("apartment", id).Msg("unknown apartment id")
	return 0
}

// Capacity returns 0 when id is unknown.
func (c *Catalogue) Capacity(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.byID[id]; ok {
		return e.apt.Capacity
	}
	return 0
}

func (c *Catalogue) AddApartment(id string, rate float64) (err error) {
	defer func() { observability.ObserveStore("catalogue", "add", err) }()
	if err := validateApartment(id, rate, domain.DefaultCapacity); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[id]; ok {
		return fmt.Errorf("%w: apartment %q already exists", domain.ErrValidation, id)
	}
	c.insertLocked(domain.Apartment{ID: id, NightlyRate: rate, Capacity: domain.DefaultCapacity})
	log.Info().Str("apartment", id).Float64("rate", rate).Msg("apartment added")
	return nil
}

// PutApartment inserts or replaces a; a zero capacity becomes DefaultCapacity.
// A replaced apartment keeps its position.
func (c *Catalogue) PutApartment(a domain.Apartment) (err error) {
	defer func() { observability.ObserveStore("catalogue", "put", err) }()
	if a.Capacity == 0 {
		a.Capacity = domain.DefaultCapacity
	}
	if err := validateApartment(a.ID, a.NightlyRate, a.Capacity); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.byID[a.ID]; ok {
		e.apt = a
	} else {
		c.insertLocked(a)
	}
	log.Info().Str("apartment", a.ID).Float64("rate", a.NightlyRate).Int("capacity", a.Capacity).Msg("apartment saved")
	return nil
}

func (c *Catalogue) UpdateRate(id string, rate float64) (err error) {
	defer func() { observability.ObserveStore("catalogue", "update_rate", err) }()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("%w: apartment %q", domain.ErrNotFound, id)
	}
	if !domain.PositiveAmount(rate) {
		return fmt.Errorf("%w: rate must be a positive number", domain.ErrValidation)
	}
	old := e.apt.NightlyRate
	e.apt.NightlyRate = rate
	log.Info().Str("apartment", id).Float64("old_rate", old).Float64("rate", rate).Msg("apartment rate updated")
	return nil
}

func (c *Catalogue) DeleteApartment(id string) (err error) {
	defer func() { observability.ObserveStore("catalogue", "delete", err) }()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("%w: apartment %q", domain.ErrNotFound, id)
	}
	delete(c.byID, id)
	log.Info().Str("apartment", id).Float64("rate", e.apt.NightlyRate).Msg("apartment deleted")
	return nil
}

// Search returns apartments whose id contains substr, in insertion order.
// Matching is case-sensitive unless the catalogue was built with foldCase.
func (c *Catalogue) Search(substr string) []domain.Apartment {
	c.mu.Lock()
	defer c.mu.Unlock()
	needle := substr
	if c.foldCase {
		needle = strings.ToLower(substr)
	}
	var out []domain.Apartment
	for _, e := range c.orderedLocked() {
		id := e.apt.ID
		if c.foldCase {
			id = strings.ToLower(id)
		}
		if strings.Contains(id, needle) {
			out = append(out, e.apt)
		}
	}
	return out
}

func (c *Catalogue) List() []domain.Apartment {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := c.orderedLocked()
	out := make([]domain.Apartment, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.apt)
	}
	return out
}

// MostExpensive returns up to limit apartments by rate, highest first; ties keep
// insertion order.
func (c *Catalogue) MostExpensive(limit int) []domain.Apartment {
	all := c.List()
	sort.SliceStable(all, func(i, j int) bool { return all[i].NightlyRate > all[j].NightlyRate })
	if limit < 0 {
		limit = 0
	}
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}

func (c *Catalogue) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byID)
}

// Clear removes every apartment and returns how many there were.
func (c *Catalogue) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.byID)
	c.byID = map[string]*aptEntry{}
	log.Info().Int("count", n).Msg("apartments cleared")
	return n
}

func (c *Catalogue) load(apts []domain.Apartment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[string]*aptEntry, len(apts))
	for _, a := range apts {
		if a.Capacity == 0 {
			a.Capacity = domain.DefaultCapacity
		}
		c.insertLocked(a)
	}
}

func (c *Catalogue) insertLocked(a domain.Apartment) {
	c.seq++
	c.byID[a.ID] = &aptEntry{apt: a, seq: c.seq}
}

func (c *Catalogue) orderedLocked() []*aptEntry {
	out := make([]*aptEntry, 0, len(c.byID))
	for _, e := range c.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func validateApartment(id string, rate float64, capacity int) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: apartment id cannot be empty", domain.ErrValidation)
	}
	if !domain.PositiveAmount(rate) {
		return fmt.Errorf("%w: rate must be a positive number", domain.ErrValidation)
	}
	if capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", domain.ErrValidation)
	}
	return nil
}
