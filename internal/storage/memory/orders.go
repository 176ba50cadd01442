package memory

import (
	"slices"
	"sync"

	"hotel_booking/internal/domain"
)

// Orders keeps completed orders per guest, oldest first.
type Orders struct {
	mu      sync.Mutex
	byGuest map[string][]domain.Order
}

func NewOrders() *Orders {
	return &Orders{byGuest: map[string][]domain.Order{}}
}

func (o *Orders) Record(ord domain.Order) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.byGuest[ord.GuestName] = append(o.byGuest[ord.GuestName], ord)
}

func (o *Orders) ForGuest(name string) []domain.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.byGuest[name])
}

func (o *Orders) clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.byGuest = map[string][]domain.Order{}
}
