package cli

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage/memory"
)

const defaultTopN = 5

type StorageMenu struct {
	p        *Prompter
	store    *memory.Store
	currency string
}

func NewStorageMenu(p *Prompter, store *memory.Store, currency string) *StorageMenu {
	return &StorageMenu{p: p, store: store, currency: currency}
}

func (m *StorageMenu) header(title string) {
	rule := strings.Repeat("=", 60)
	m.p.Printf("\n%s\n  %s\n%s\n", rule, title, rule)
}

// Run loops over the storage menu until the user exits or input ends.
func (m *StorageMenu) Run() error {
	for {
		m.header("HOTEL BOOKING SYSTEM - STORAGE MANAGER")
		m.p.Printf("1. View storage summary\n" +
			"2. View all apartments\n" +
			"3. View all guests\n" +
			"4. View top guests by points\n" +
			"5. View most expensive apartments\n" +
			"6. Search apartments\n" +
			"7. Search guests\n" +
			"8. Add apartment\n" +
			"9. Update apartment rate\n" +
			"10. Delete apartment\n" +
			"11. Add guest\n" +
			"12. Update guest points\n" +
			"13. Delete guest\n" +
			"14. Clear storage\n" +
			"15. Exit\n")
		choice, err := m.p.Line("\nEnter your choice (1-15): ")
		if err != nil {
			return m.done(err)
		}

		switch choice {
		case "1":
			m.summary()
		case "2":
			m.apartments("APARTMENTS", m.store.Apartments.List())
		case "3":
			m.guests("GUESTS", m.store.Guests.List())
		case "4":
			err = m.topGuests()
		case "5":
			err = m.mostExpensive()
		case "6":
			err = m.searchApartments()
		case "7":
			err = m.searchGuests()
		case "8":
			err = m.addApartment()
		case "9":
			err = m.updateRate()
		case "10":
			err = m.deleteApartment()
		case "11":
			err = m.addGuest()
		case "12":
			err = m.updatePoints()
		case "13":
			err = m.deleteGuest()
		case "14":
			err = m.clearMenu()
		case "15":
			m.p.Printf("Goodbye!\n")
			log.Info().Msg("storage manager exited by user")
			return nil
		default:
			m.p.Printf("Invalid choice. Please enter a number between 1 and 15.\n")
		}
		if err != nil {
			return m.done(err)
		}
	}
}

func (m *StorageMenu) done(err error) error {
	if errors.Is(err, ErrAborted) {
		m.p.Printf("\nGoodbye!\n")
		return nil
	}
	return err
}

// report prints the outcome of a store mutation.
func (m *StorageMenu) report(err error, ok string) {
	if err != nil {
		m.p.Printf("✗ %v\n", err)
		return
	}
	m.p.Printf("✓ %s\n", ok)
}

func (m *StorageMenu) summary() {
	s := m.store.Summary()
	m.header("STORAGE SUMMARY")
	m.p.Printf("Total Apartments: %d\n", s.TotalApartments)
	m.p.Printf("Total Guests: %d\n", s.TotalGuests)
	m.p.Printf("Total Points: %d\n", s.TotalPoints)
	m.p.Printf("Total Apartment Value: $%.2f\n", s.TotalApartmentValue)
	m.p.Printf("Average Rate: $%.2f\n", s.AverageRate)
	m.p.Printf("Average Points: %.1f\n", s.AveragePoints)
}

func (m *StorageMenu) apartments(title string, apts []domain.Apartment) {
	m.header(title)
	if len(apts) == 0 {
		m.p.Printf("No apartments found.\n")
		return
	}
	m.p.Printf("%-15s %-12s %s\n%s\n", "Apartment ID", "Rate ("+m.currency+")", "Capacity", strings.Repeat("-", 40))
	for _, a := range apts {
		m.p.Printf("%-15s $%-11.2f %d\n", a.ID, a.NightlyRate, a.Capacity)
	}
}

func (m *StorageMenu) guests(title string, gs []domain.Guest) {
	m.header(title)
	if len(gs) == 0 {
		m.p.Printf("No guests found.\n")
		return
	}
	m.p.Printf("%-20s %-10s\n%s\n", "Guest Name", "Points", strings.Repeat("-", 35))
	for _, g := range gs {
		m.p.Printf("%-20s %-10d\n", g.Name, g.Points)
	}
}

func (m *StorageMenu) topGuests() error {
	n, err := m.p.IntDefault(fmt.Sprintf("Enter number of top guests to show (default %d): ", defaultTopN), defaultTopN, 1, math.MaxInt32)
	if err != nil {
		return err
	}
	top := m.store.Guests.TopGuests(n)
	m.header(fmt.Sprintf("TOP %d GUESTS BY POINTS", n))
	if len(top) == 0 {
		m.p.Printf("No guests found.\n")
		return nil
	}
	m.p.Printf("%-5s %-20s %-10s\n%s\n", "Rank", "Guest Name", "Points", strings.Repeat("-", 40))
	for i, g := range top {
		m.p.Printf("%-5d %-20s %-10d\n", i+1, g.Name, g.Points)
	}
	return nil
}

func (m *StorageMenu) mostExpensive() error {
	n, err := m.p.IntDefault(fmt.Sprintf("Enter number of apartments to show (default %d): ", defaultTopN), defaultTopN, 1, math.MaxInt32)
	if err != nil {
		return err
	}
	m.apartments(fmt.Sprintf("TOP %d MOST EXPENSIVE APARTMENTS", n), m.store.Apartments.MostExpensive(n))
	return nil
}

func (m *StorageMenu) searchApartments() error {
	term, err := m.p.Line("Enter apartment ID search term: ")
	if err != nil {
		return err
	}
	if term == "" {
		m.p.Printf("Search term cannot be empty.\n")
		return nil
	}
	m.apartments(fmt.Sprintf("APARTMENT SEARCH RESULTS: '%s'", term), m.store.Apartments.Search(term))
	return nil
}

func (m *StorageMenu) searchGuests() error {
	term, err := m.p.Line("Enter guest name search term: ")
	if err != nil {
		return err
	}
	if term == "" {
		m.p.Printf("Search term cannot be empty.\n")
		return nil
	}
	m.guests(fmt.Sprintf("GUEST SEARCH RESULTS: '%s'", term), m.store.Guests.Search(term))
	return nil
}

func (m *StorageMenu) addApartment() error {
	m.header("ADD NEW APARTMENT")
	id, err := m.p.String("Enter apartment ID: ", "Apartment ID", maxAptIDLen)
	if err != nil {
		return err
	}
	rate, err := m.p.Positive(fmt.Sprintf("Enter nightly rate (%s): ", m.currency))
	if err != nil {
		return err
	}
	m.report(m.store.Apartments.AddApartment(id, rate), fmt.Sprintf("Apartment '%s' added successfully with rate $%.2f", id, rate))
	return nil
}

func (m *StorageMenu) updateRate() error {
	m.header("UPDATE APARTMENT RATE")
	id, err := m.p.String("Enter apartment ID: ", "Apartment ID", maxAptIDLen)
	if err != nil {
		return err
	}
	rate, err := m.p.Positive(fmt.Sprintf("Enter new nightly rate (%s): ", m.currency))
	if err != nil {
		return err
	}
	m.report(m.store.Apartments.UpdateRate(id, rate), fmt.Sprintf("Apartment '%s' rate updated to $%.2f", id, rate))
	return nil
}

func (m *StorageMenu) deleteApartment() error {
	m.header("DELETE APARTMENT")
	id, err := m.p.String("Enter apartment ID to delete: ", "Apartment ID", maxAptIDLen)
	if err != nil {
		return err
	}
	ok, err := m.p.YesNo(fmt.Sprintf("Are you sure you want to delete apartment '%s'?", id))
	if err != nil {
		return err
	}
	if !ok {
		m.p.Printf("Deletion cancelled.\n")
		return nil
	}
	m.report(m.store.Apartments.DeleteApartment(id), fmt.Sprintf("Apartment '%s' deleted successfully", id))
	return nil
}

func (m *StorageMenu) addGuest() error {
	m.header("ADD NEW GUEST")
	name, err := m.p.String("Enter guest name: ", "Guest name", maxNameLen)
	if err != nil {
		return err
	}
	pts, err := m.p.IntDefault("Enter initial points (default 0): ", 0, 0, math.MaxInt32)
	if err != nil {
		return err
	}
	m.report(m.store.Guests.AddGuest(name, pts), fmt.Sprintf("Guest '%s' added successfully with %d points", name, pts))
	return nil
}

func (m *StorageMenu) updatePoints() error {
	m.header("UPDATE GUEST POINTS")
	name, err := m.p.String("Enter guest name: ", "Guest name", maxNameLen)
	if err != nil {
		return err
	}
	pts, err := m.p.Int("Enter new points balance: ", 0, math.MaxInt32)
	if err != nil {
		return err
	}
	m.report(m.store.Guests.UpdatePoints(name, pts), fmt.Sprintf("Guest '%s' points updated to %d", name, pts))
	return nil
}

func (m *StorageMenu) deleteGuest() error {
	m.header("DELETE GUEST")
	name, err := m.p.String("Enter guest name to delete: ", "Guest name", maxNameLen)
	if err != nil {
		return err
	}
	ok, err := m.p.YesNo(fmt.Sprintf("Are you sure you want to delete guest '%s'?", name))
	if err != nil {
		return err
	}
	if !ok {
		m.p.Printf("Deletion cancelled.\n")
		return nil
	}
	m.report(m.store.Guests.DeleteGuest(name), fmt.Sprintf("Guest '%s' deleted successfully", name))
	return nil
}

func (m *StorageMenu) clearMenu() error {
	m.header("CLEAR STORAGE")
	m.p.Printf("1. Clear all apartments\n" +
		"2. Clear all guests\n" +
		"3. Clear all storage\n" +
		"4. Reset to defaults\n" +
		"5. Back to main menu\n")
	choice, err := m.p.Line("\nEnter your choice (1-5): ")
	if err != nil {
		return err
	}

	var question string
	switch choice {
	case "1":
		question = "Are you sure you want to clear all apartments?"
	case "2":
		question = "Are you sure you want to clear all guests?"
	case "3":
		question = "Are you sure you want to clear ALL storage?"
	case "4":
		question = "Are you sure you want to reset to defaults?"
	case "5":
		return nil
	default:
		m.p.Printf("Invalid choice.\n")
		return nil
	}
	ok, err := m.p.YesNo(question)
	if err != nil {
		return err
	}
	if !ok {
		m.p.Printf("Operation cancelled.\n")
		return nil
	}

	switch choice {
	case "1":
		m.p.Printf("✓ Cleared %d apartments\n", m.store.ClearApartments())
	case "2":
		m.p.Printf("✓ Cleared %d guests\n", m.store.ClearGuests())
	case "3":
		rc := m.store.ClearAll()
		m.p.Printf("✓ Cleared %d apartments and %d guests\n", rc.Apartments, rc.Guests)
	case "4":
		rc := m.store.ResetToDefaults()
		m.p.Printf("✓ Reset to defaults: %d apartments, %d guests\n", rc.Apartments, rc.Guests)
	}
	return nil
}
