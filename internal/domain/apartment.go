package domain

import "math"

// DefaultCapacity is the number of beds an apartment gets when none is configured.
const DefaultCapacity = 2

type Apartment struct {
	ID          string
	NightlyRate float64
	Capacity    int
}

type Guest struct {
	Name   string
	Points int
}

// Item is a supplementary product sold with a booking (car park, breakfast, ...).
type Item struct {
	ID    string
	Price float64
}

// ExtraBedItem is the item id charged per extra bed per night.
const ExtraBedItem = "extra_bed"

// PositiveAmount reports whether v is a usable rate or price: finite and above zero.
func PositiveAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
