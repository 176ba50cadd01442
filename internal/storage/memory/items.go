package memory

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

// Items is the supplementary item price list.
type Items struct {
	mu    sync.Mutex
	seq   uint64
	price map[string]float64
	order map[string]uint64
}

func NewItems() *Items {
	return &Items{price: map[string]float64{}, order: map[string]uint64{}}
}

func (s *Items) Price(id string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.price[id]
	return p, ok
}

func (s *Items) PutItem(it domain.Item) (err error) {
	defer func() { observability.ObserveStore("items", "put", err) }()
	if err := validateItem(it); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(it)
	log.Info().Str("item", it.ID).Float64("price", it.Price).Msg("item saved")
	return nil
}

// PutBulk parses a line like "toothpaste 5.2, shampoo 8.2" and upserts every
// entry. Nothing is saved if any entry is malformed.
func (s *Items) PutBulk(line string) (saved []string, err error) {
	defer func() { observability.ObserveStore("items", "put_bulk", err) }()
	items, err := ParseItemsLine(line)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.putLocked(it)
		saved = append(saved, it.ID)
	}
	log.Info().Strs("items", saved).Msg("items upserted")
	return saved, nil
}

func (s *Items) List() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Item, 0, len(s.price))
	for id, p := range s.price {
		out = append(out, domain.Item{ID: id, Price: p})
	}
	sort.Slice(out, func(i, j int) bool { return s.order[out[i].ID] < s.order[out[j].ID] })
	return out
}

func (s *Items) load(items []domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.price = make(map[string]float64, len(items))
	s.order = make(map[string]uint64, len(items))
	for _, it := range items {
		s.putLocked(it)
	}
}

func (s *Items) putLocked(it domain.Item) {
	if _, ok := s.order[it.ID]; !ok {
		s.seq++
		s.order[it.ID] = s.seq
	}
	s.price[it.ID] = it.Price
}

// ParseItemsLine parses comma separated "id price" pairs.
func ParseItemsLine(line string) ([]domain.Item, error) {
	if strings.TrimSpace(line) == "" {
		return nil, fmt.Errorf("%w: empty input", domain.ErrValidation)
	}
	var out []domain.Item
	for _, pair := range strings.Split(line, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Fields(pair)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: each entry must be 'item price'", domain.ErrValidation)
		}
		price, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid price for %q", domain.ErrValidation, parts[0])
		}
		it := domain.Item{ID: parts[0], Price: price}
		if err := validateItem(it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty input", domain.ErrValidation)
	}
	return out, nil
}

func validateItem(it domain.Item) error {
	if strings.TrimSpace(it.ID) == "" {
		return fmt.Errorf("%w: item id cannot be empty", domain.ErrValidation)
	}
	if !domain.PositiveAmount(it.Price) {
		return fmt.Errorf("%w: price for %q must be > 0", domain.ErrValidation, it.ID)
	}
	return nil
}
