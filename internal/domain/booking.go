package domain

import "time"

type BookingRequest struct {
	ApartmentID string
	GuestName   string
	Nights      int
}

type BookingResult struct {
	TotalCost      float64
	PointsEarned   int
	NewPointsTotal int
}

// LineItem is a quantity of one supplementary item.
type LineItem struct {
	ItemID   string
	Quantity int
}

type CheckoutRequest struct {
	GuestName    string
	NumGuests    int
	ApartmentID  string
	Nights       int
	CheckIn      time.Time
	CheckOut     time.Time
	BookedOn     time.Time
	ExtraBeds    int
	Items        []LineItem
	RedeemBlocks int
}

type OrderLine struct {
	ItemID    string
	Quantity  int
	UnitPrice float64
}

func (l OrderLine) Cost() float64 { return l.UnitPrice * float64(l.Quantity) }

// Order is a priced booking. Quote returns one without an ID; Checkout fills ID,
// NewPointsTotal and CreatedAt once the ledger has been settled.
type Order struct {
	ID             string
	GuestName      string
	NumGuests      int
	ApartmentID    string
	NightlyRate    float64
	Nights         int
	CheckIn        time.Time
	CheckOut       time.Time
	BookedOn       time.Time
	Lines          []OrderLine
	ApartmentCost  float64
	ItemsSubtotal  float64
	PreTotal       float64 // apartment + items, before redemption
	Discount       float64
	FinalTotal     float64
	PointsSpent    int
	PointsEarned   int
	NewPointsTotal int
	CreatedAt      time.Time
}
