package cli

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/pricing"
	"hotel_booking/internal/storage/memory"
)

const (
	maxNameLen   = 100
	maxAptIDLen  = 20
	maxNumGuests = 20
	maxQuantity  = 1000
)

// apartmentIDPattern is enforced on the admin upsert path only: U, digits, then a name.
var apartmentIDPattern = regexp.MustCompile(`^U\d+[A-Za-z][A-Za-z0-9]*$`)

type BookingMenu struct {
	p         *Prompter
	svc       *app.BookingService
	store     *memory.Store
	receipt   app.Receipt
	maxNights int
}

func NewBookingMenu(p *Prompter, svc *app.BookingService, store *memory.Store, receipt app.Receipt, maxNights int) *BookingMenu {
	return &BookingMenu{p: p, svc: svc, store: store, receipt: receipt, maxNights: maxNights}
}

// Run loops over the main menu until the user exits or input ends.
func (m *BookingMenu) Run() error {
	m.p.Printf("Welcome to the %s booking system!\n%s\n", m.receipt.Hotel, strings.Repeat("=", 50))
	for {
		m.p.Printf("\nMenu:\n" +
			"1) Make a booking\n" +
			"2) Quick booking (apartment, guest, nights)\n" +
			"3) Add/update apartment\n" +
			"4) Add/update supplementary items (bulk)\n" +
			"5) Display existing guests\n" +
			"6) Display existing products\n" +
			"7) Display a guest booking & order history\n" +
			"8) Exit\n")
		choice, err := m.p.Line("Select (1-8): ")
		if err != nil {
			return m.done(err)
		}

		switch choice {
		case "1":
			err = m.makeBooking()
		case "2":
			err = m.quickBooking()
		case "3":
			err = m.upsertApartment()
		case "4":
			err = m.upsertItems()
		case "5":
			m.showGuests()
		case "6":
			m.showProducts()
		case "7":
			err = m.showHistory()
		case "8":
			m.p.Printf("Goodbye!\n")
			log.Info().Msg("booking menu exited by user")
			return nil
		default:
			m.p.Printf("Please choose 1-8.\n")
		}
		if err != nil {
			return m.done(err)
		}
	}
}

func (m *BookingMenu) done(err error) error {
	if errors.Is(err, ErrAborted) {
		m.p.Printf("\nGoodbye!\n")
		return nil
	}
	return err
}

func (m *BookingMenu) existingApartment() (string, error) {
	for {
		id, err := m.p.String("Enter apartment ID (e.g., U12swan): ", "Apartment ID", maxAptIDLen)
		if err != nil {
			return "", err
		}
		if m.store.Apartments.GetRate(id) > 0 {
			return id, nil
		}
		m.p.errorf("apartment id not found. Please try again.")
	}
}

func (m *BookingMenu) nights() (int, error) {
	return m.p.Int(fmt.Sprintf("Enter length of stay (nights, 1-%d): ", m.maxNights), 1, m.maxNights)
}

// makeBooking runs the full flow: capacity and extra beds, supplementary
// items, optional redemption, then checkout and the receipt.
func (m *BookingMenu) makeBooking() error {
	var (
		req domain.CheckoutRequest
		err error
	)
	if req.GuestName, err = m.p.String("Enter the guest's name: ", "Guest name", maxNameLen); err != nil {
		return err
	}
	if req.NumGuests, err = m.p.Int("Enter number of guests: ", 1, maxNumGuests); err != nil {
		return err
	}
	if req.ApartmentID, err = m.existingApartment(); err != nil {
		return err
	}
	if req.CheckIn, err = m.p.Date("Enter check-in date (d/m/yyyy): "); err != nil {
		return err
	}
	for {
		if req.CheckOut, err = m.p.Date("Enter check-out date (d/m/yyyy): "); err != nil {
			return err
		}
		if req.CheckOut.After(req.CheckIn) {
			break
		}
		m.p.errorf("check-out must be after check-in.")
	}
	if req.Nights, err = m.nights(); err != nil {
		return err
	}
	if req.BookedOn, err = m.p.Date("Enter booking date (d/m/yyyy): "); err != nil {
		return err
	}

	ok, err := m.extraBeds(&req)
	if err != nil || !ok {
		return err
	}
	if err := m.orderItems(&req); err != nil {
		return err
	}
	if err := m.redemption(&req); err != nil {
		return err
	}

	o, err := m.svc.Checkout(req)
	if err != nil {
		m.p.Printf("Booking failed: %v\n", err)
		return nil
	}
	if err := m.receipt.WriteOrder(m.p.out, o); err != nil {
		return err
	}
	m.p.Printf("\n[Info] Guest '%s' now has %d reward points.\n", o.GuestName, o.NewPointsTotal)
	return nil
}

// extraBeds reports false when the party cannot fit and the booking stops.
func (m *BookingMenu) extraBeds(req *domain.CheckoutRequest) (bool, error) {
	capacity := m.store.Apartments.Capacity(req.ApartmentID)
	need := pricing.RequiredExtraBeds(req.NumGuests, capacity)
	if req.NumGuests <= capacity {
		return true, nil
	}
	m.p.Printf("Warning: the number of guests exceeds the unit capacity of %d (at least %d extra bed(s) needed).\n", capacity, need)
	add, err := m.p.YesNo(fmt.Sprintf("Add extra bed(s)? (max %d; each adds capacity +%d)", pricing.MaxExtraBeds, pricing.PlacesPerExtraBed))
	if err != nil {
		return false, err
	}
	if !add {
		m.p.Printf("Booking cannot proceed due to capacity.\n")
		return false, nil
	}
	beds, err := m.p.Int("Enter quantity: ", 1, pricing.MaxExtraBeds)
	if err != nil {
		return false, err
	}
	if capacity+beds*pricing.PlacesPerExtraBed < req.NumGuests {
		m.p.Printf("Booking cannot proceed: capacity still insufficient.\n")
		return false, nil
	}
	req.ExtraBeds = beds
	return true, nil
}

func (m *BookingMenu) orderItems(req *domain.CheckoutRequest) error {
	more, err := m.p.YesNo("Do you want to order a supplementary item?")
	for ; more && err == nil; more, err = m.p.YesNo("Do you want to order another supplementary item?") {
		if err := m.orderItem(req); err != nil {
			return err
		}
	}
	return err
}

// orderItem prompts for one item, shows the tentative subtotal and adds it on confirmation.
func (m *BookingMenu) orderItem(req *domain.CheckoutRequest) error {
	var (
		id  string
		err error
	)
	for {
		if id, err = m.p.String("Enter supplementary item id: ", "Item id", 0); err != nil {
			return err
		}
		if _, ok := m.store.Items.Price(id); ok {
			break
		}
		m.p.errorf("item id not found. Please try again.")
	}
	qty, err := m.p.Int("Enter quantity: ", 1, maxQuantity)
	if err != nil {
		return err
	}

	tentative := *req
	tentative.Items = addLine(req.Items, id, qty)
	q, err := m.svc.Quote(tentative)
	if err != nil {
		m.p.Printf("Error: %v\n", err)
		return nil
	}
	m.p.Printf("Item: %s\nQuantity: %d\nTotal Cost (if added): %.2f\n", id, qty, q.ItemsSubtotal)
	confirm, err := m.p.YesNo("Confirm this item?")
	if err != nil {
		return err
	}
	if !confirm {
		m.p.Printf("Item cancelled.\n")
		return nil
	}
	req.Items = tentative.Items
	m.p.Printf("Saved. Total cost so far: %.2f\n", q.ItemsSubtotal)
	return nil
}

func addLine(lines []domain.LineItem, id string, qty int) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(lines)+1)
	merged := false
	for _, l := range lines {
		if l.ItemID == id {
			l.Quantity += qty
			merged = true
		}
		out = append(out, l)
	}
	if !merged {
		out = append(out, domain.LineItem{ItemID: id, Quantity: qty})
	}
	return out
}

func (m *BookingMenu) redemption(req *domain.CheckoutRequest) error {
	points := m.store.Guests.GetPoints(req.GuestName)
	if points < pricing.PointsPerBlock {
		return nil
	}
	q, err := m.svc.Quote(*req)
	if err != nil || q.PreTotal < pricing.BlockValue {
		// Checkout reports the quote error.
		return nil
	}
	redeem, err := m.p.YesNo(fmt.Sprintf("You have %d points. Redeem now? (%dpts = $%.0f)", points, pricing.PointsPerBlock, pricing.BlockValue))
	if err != nil || !redeem {
		return err
	}
	req.RedeemBlocks, err = m.p.Int(fmt.Sprintf("Enter how many %d-point blocks to redeem: ", pricing.PointsPerBlock), 0, math.MaxInt32)
	return err
}

func (m *BookingMenu) quickBooking() error {
	for {
		id, err := m.p.String("Enter apartment ID (e.g., U12swan): ", "Apartment ID", maxAptIDLen)
		if err != nil {
			return err
		}
		name, err := m.p.String("Enter the guest's name: ", "Guest name", maxNameLen)
		if err != nil {
			return err
		}
		nights, err := m.nights()
		if err != nil {
			return err
		}

		res, err := m.svc.RunOnce(id, name, nights)
		if err != nil {
			m.p.Printf("Error: %v. Please try again.\n", err)
			continue
		}
		req := domain.BookingRequest{ApartmentID: id, GuestName: name, Nights: nights}
		return m.receipt.WriteBooking(m.p.out, req, m.store.Apartments.GetRate(id), res)
	}
}

func (m *BookingMenu) upsertApartment() error {
	line, err := m.p.Line("Enter: apartment_id rate capacity: ")
	if err != nil {
		return err
	}
	a, err := parseApartmentLine(line)
	if err == nil {
		err = m.store.Apartments.PutApartment(a)
	}
	if err != nil {
		m.p.Printf("Error: %v\n", err)
		return nil
	}
	m.p.Printf("Apartment saved.\n")
	return nil
}

func parseApartmentLine(line string) (domain.Apartment, error) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return domain.Apartment{}, fmt.Errorf("%w: please enter exactly three fields", domain.ErrValidation)
	}
	if !apartmentIDPattern.MatchString(parts[0]) {
		return domain.Apartment{}, fmt.Errorf("%w: apartment id %q must look like U12swan", domain.ErrValidation, parts[0])
	}
	rate, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || !domain.PositiveAmount(rate) {
		return domain.Apartment{}, fmt.Errorf("%w: rate must be a positive number", domain.ErrValidation)
	}
	capacity, err := strconv.Atoi(parts[2])
	if err != nil || capacity <= 0 {
		return domain.Apartment{}, fmt.Errorf("%w: capacity must be a positive integer", domain.ErrValidation)
	}
	return domain.Apartment{ID: parts[0], NightlyRate: rate, Capacity: capacity}, nil
}

func (m *BookingMenu) upsertItems() error {
	line, err := m.p.Line("Enter items list (item price, item price, ...): ")
	if err != nil {
		return err
	}
	saved, err := m.store.Items.PutBulk(line)
	if err != nil {
		m.p.Printf("Error: %v\n", err)
		return nil
	}
	m.p.Printf("Items saved: %s\n", strings.Join(saved, ", "))
	return nil
}

func (m *BookingMenu) showGuests() {
	m.p.Printf("Guests and points:\n")
	for _, g := range m.store.Guests.List() {
		m.p.Printf("  %s: %d pts\n", g.Name, g.Points)
	}
}

func (m *BookingMenu) showProducts() {
	m.p.Printf("Apartments:\n")
	for _, a := range m.store.Apartments.List() {
		m.p.Printf("  %s: $%.2f, capacity=%d\n", a.ID, a.NightlyRate, a.Capacity)
	}
	m.p.Printf("\nSupplementary items:\n")
	for _, it := range m.store.Items.List() {
		m.p.Printf("  %s: $%.2f\n", it.ID, it.Price)
	}
}

func (m *BookingMenu) showHistory() error {
	name, err := m.p.String("Enter the guest's name: ", "Guest name", maxNameLen)
	if err != nil {
		return err
	}
	orders := m.svc.History(name)
	if len(orders) == 0 {
		m.p.Printf("No history for this guest.\n")
		return nil
	}
	m.p.Printf("\nThis is the booking and order history for %s.\n", name)
	for i, o := range orders {
		items := make([]string, 0, len(o.Lines))
		for _, l := range o.Lines {
			items = append(items, fmt.Sprintf("%s x%d", l.ItemID, l.Quantity))
		}
		m.p.Printf("%d. Apt %s x%d nights; Items: [%s] | Pre: $%.2f | Redeemed: %d pts | Final: $%.2f | Earned: %d pts\n",
			i+1, o.ApartmentID, o.Nights, strings.Join(items, ", "), o.PreTotal, o.PointsSpent, o.FinalTotal, o.PointsEarned)
	}
	return nil
}
