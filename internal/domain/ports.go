package domain

type RateCatalogue interface {
	// Read paths; 0 means "not found".
	GetRate(id string) float64
	Capacity(id string) int

	// Write paths
	AddApartment(id string, rate float64) error
	PutApartment(a Apartment) error
	UpdateRate(id string, rate float64) error
	DeleteApartment(id string) error

	Search(substr string) []Apartment
	List() []Apartment
	MostExpensive(limit int) []Apartment
}

type GuestLedger interface {
	GetPoints(name string) int

	AddGuest(name string, points int) error
	AddPoints(name string, earned int) (int, error)
	SpendPoints(name string, points int) (int, error)
	SetPoints(name string, points int) error
	DeleteGuest(name string) error

	// Settle spends then earns in one step and returns the new balance.
	Settle(name string, spent, earned int) (int, error)

	TopGuests(limit int) []Guest
	Search(substr string) []Guest
	List() []Guest
}

type ItemCatalogue interface {
	Price(id string) (float64, bool)
	PutItem(it Item) error
	List() []Item
}

type OrderHistory interface {
	Record(o Order)
	ForGuest(name string) []Order
}
