package memory

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

type guestEntry struct {
	points int
	seq    uint64
}

// Ledger maps guest name to accumulated reward points. Points never go negative.
type Ledger struct {
	mu       sync.Mutex
	foldCase bool
	seq      uint64
	byName   map[string]*guestEntry
}

func NewLedger(foldCase bool) *Ledger {
	return &Ledger{foldCase: foldCase, byName: map[string]*guestEntry{}}
}

// GetPoints returns 0 for an unknown guest.
func (l *Ledger) GetPoints(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.byName[name]; ok {
		return e.points
	}
	return 0
}

// AddGuest creates a guest; it fails if the name is taken.
func (l *Ledger) AddGuest(name string, points int) (err error) {
	defer func() { observability.ObserveStore("ledger", "add_guest", err) }()
	if err := validateGuest(name, points, "initial points"); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byName[name]; ok {
		return fmt.Errorf("%w: guest %q already exists", domain.ErrValidation, name)
	}
	l.insertLocked(name, points)
	log.Info().Str("guest", name).Int("points", points).Msg("guest added")
	return nil
}

// AddPoints adds earned to the guest's balance, creating the guest if needed,
// and returns the new total.
func (l *Ledger) AddPoints(name string, earned int) (total int, err error) {
	defer func() { observability.ObserveStore("ledger", "add_points", err) }()
	if err := validateGuest(name, earned, "earned points"); err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := checkCredit(l.balanceLocked(name), earned); err != nil {
		return 0, err
	}
	total = l.creditLocked(name, earned)
	log.Info().Str("guest", name).Int("earned", earned).Int("total", total).Msg("points added")
	return total, nil
}

// SpendPoints deducts points and returns the new balance.
func (l *Ledger) SpendPoints(name string, points int) (total int, err error) {
	defer func() { observability.ObserveStore("ledger", "spend_points", err) }()
	if points < 0 {
		return 0, fmt.Errorf("%w: points to spend cannot be negative", domain.ErrValidation)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	total, err = l.debitLocked(name, points)
	if err != nil {
		return 0, err
	}
	log.Info().Str("guest", name).Int("spent", points).Int("total", total).Msg("points deducted")
	return total, nil
}

// SetPoints overwrites the balance, creating the guest if needed.
func (l *Ledger) SetPoints(name string, points int) (err error) {
	defer func() { observability.ObserveStore("ledger", "set_points", err) }()
	if err := validateGuest(name, points, "points"); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.byName[name]
	if !ok {
		l.insertLocked(name, points)
		log.Info().Str("guest", name).Int("points", points).Msg("guest added")
		return nil
	}
	old := e.points
	e.points = points
	log.Info().Str("guest", name).Int("old_points", old).Int("points", points).Msg("guest points updated")
	return nil
}

// UpdatePoints is SetPoints for an existing guest only.
func (l *Ledger) UpdatePoints(name string, points int) (err error) {
	defer func() { observability.ObserveStore("ledger", "update_points", err) }()
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.byName[name]
	if !ok {
		return fmt.Errorf("%w: guest %q", domain.ErrNotFound, name)
	}
	if points < 0 {
		return fmt.Errorf("%w: points cannot be negative", domain.ErrValidation)
	}
	old := e.points
	e.points = points
	log.Info().Str("guest", name).Int("old_points", old).Int("points", points).Msg("guest points updated")
	return nil
}

func (l *Ledger) DeleteGuest(name string) (err error) {
	defer func() { observability.ObserveStore("ledger", "delete", err) }()
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.byName[name]
	if !ok {
		return fmt.Errorf("%w: guest %q", domain.ErrNotFound, name)
	}
	delete(l.byName, name)
	log.Info().Str("guest", name).Int("points", e.points).Msg("guest deleted")
	return nil
}

// Settle deducts spent then credits earned in one critical section, so a failed
// spend or an overflowing credit leaves the balance untouched.
func (l *Ledger) Settle(name string, spent, earned int) (total int, err error) {
	defer func() { observability.ObserveStore("ledger", "settle", err) }()
	if err := validateGuest(name, earned, "earned points"); err != nil {
		return 0, err
	}
	if spent < 0 {
		return 0, fmt.Errorf("%w: points to spend cannot be negative", domain.ErrValidation)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if balance := l.balanceLocked(name); spent <= balance {
		if err := checkCredit(balance-spent, earned); err != nil {
			return 0, err
		}
	}
	if spent > 0 {
		if _, err := l.debitLocked(name, spent); err != nil {
			return 0, err
		}
	}
	total = l.creditLocked(name, earned)
	log.Info().Str("guest", name).Int("spent", spent).Int("earned", earned).Int("total", total).Msg("points settled")
	return total, nil
}

// TopGuests returns up to limit guests by points, highest first. Ties keep
// insertion order.
func (l *Ledger) TopGuests(limit int) []domain.Guest {
	all := l.List()
	sort.SliceStable(all, func(i, j int) bool { return all[i].Points > all[j].Points })
	if limit < 0 {
		limit = 0
	}
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}

// Search returns guests whose name contains substr, in insertion order.
func (l *Ledger) Search(substr string) []domain.Guest {
	needle := substr
	if l.foldCase {
		needle = strings.ToLower(needle)
	}
	var out []domain.Guest
	for _, g := range l.List() {
		name := g.Name
		if l.foldCase {
			name = strings.ToLower(name)
		}
		if strings.Contains(name, needle) {
			out = append(out, g)
		}
	}
	return out
}

// List returns every guest in insertion order.
func (l *Ledger) List() []domain.Guest {
	l.mu.Lock()
	defer l.mu.Unlock()
	type row struct {
		g   domain.Guest
		seq uint64
	}
	rows := make([]row, 0, len(l.byName))
	for name, e := range l.byName {
		rows = append(rows, row{g: domain.Guest{Name: name, Points: e.points}, seq: e.seq})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]domain.Guest, len(rows))
	for i, r := range rows {
		out[i] = r.g
	}
	return out
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byName)
}

func (l *Ledger) TotalPoints() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	sum := 0
	for _, e := range l.byName {
		sum += e.points
	}
	return sum
}

func (l *Ledger) Clear() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.byName)
	l.byName = map[string]*guestEntry{}
	log.Info().Int("count", n).Msg("guests cleared")
	return n
}

func (l *Ledger) load(guests []domain.Guest) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byName = make(map[string]*guestEntry, len(guests))
	for _, g := range guests {
		if e, ok := l.byName[g.Name]; ok {
			e.points = g.Points
			continue
		}
		l.insertLocked(g.Name, g.Points)
	}
}

func (l *Ledger) insertLocked(name string, points int) {
	l.seq++
	l.byName[name] = &guestEntry{points: points, seq: l.seq}
}

func (l *Ledger) balanceLocked(name string) int {
	if e, ok := l.byName[name]; ok {
		return e.points
	}
	return 0
}

// checkCredit fails when adding earned to balance would overflow int.
func checkCredit(balance, earned int) error {
	if earned > math.MaxInt-balance {
		return fmt.Errorf("%w: %d points on top of %d overflows the balance", domain.ErrValidation, earned, balance)
	}
	return nil
}

func (l *Ledger) creditLocked(name string, earned int) int {
	e, ok := l.byName[name]
	if !ok {
		l.insertLocked(name, earned)
		return earned
	}
	e.points += earned
	return e.points
}

func (l *Ledger) debitLocked(name string, points int) (int, error) {
	balance := l.balanceLocked(name)
	if points > balance {
		return 0, fmt.Errorf("%w: %q has %d, needs %d", domain.ErrInsufficientPoints, name, balance, points)
	}
	if points == 0 {
		return balance, nil
	}
	e := l.byName[name]
	e.points -= points
	return e.points, nil
}

func validateGuest(name string, points int, what string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: guest name cannot be empty", domain.ErrValidation)
	}
	if points < 0 {
		return fmt.Errorf("%w: %s cannot be negative", domain.ErrValidation, what)
	}
	return nil
}
