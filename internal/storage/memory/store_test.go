package memory_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage/memory"
)

func seed() memory.Seed {
	return memory.Seed{
		Apartments: []domain.Apartment{
			{ID: "U12swan", NightlyRate: 95.0, Capacity: 2},
			{ID: "U209duck", NightlyRate: 106.7, Capacity: 2},
			{ID: "U49goose", NightlyRate: 145.2},
		},
		Guests: []domain.Guest{{Name: "Alyssa", Points: 20}, {Name: "Luigi", Points: 32}},
		Items: []domain.Item{
			{ID: "car_park", Price: 25}, {ID: "breakfast", Price: 18},
			{ID: "toothpaste", Price: 5.2}, {ID: domain.ExtraBedItem, Price: 30},
		},
	}
}

// ---- catalogue ----

func TestCatalogue_GetRate(t *testing.T) {
	s := memory.New(seed(), false)

	assert.Equal(t, 95.0, s.Apartments.GetRate("U12swan"))
	assert.Equal(t, 106.7, s.Apartments.GetRate("U209duck"))
	assert.Zero(t, s.Apartments.GetRate("nonexistent"))
	assert.Zero(t, s.Apartments.GetRate(""))
	assert.Equal(t, domain.DefaultCapacity, s.Apartments.Capacity("U49goose"))
	assert.Zero(t, s.Apartments.Capacity("nope"))
}

func TestCatalogue_AddApartment(t *testing.T) {
	c := memory.NewCatalogue(false)

	require.NoError(t, c.AddApartment("U1ant", 80))
	assert.Equal(t, 80.0, c.GetRate("U1ant"))

	err := c.AddApartment("U1ant", 120)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 80.0, c.GetRate("U1ant"), "failed add must not change the catalogue")
	assert.Equal(t, 1, c.Len())

	assert.ErrorIs(t, c.AddApartment("", 50), domain.ErrValidation)
	assert.ErrorIs(t, c.AddApartment("U2bee", 0), domain.ErrValidation)
	assert.ErrorIs(t, c.AddApartment("U2bee", -10), domain.ErrValidation)
	assert.Equal(t, 1, c.Len())
}

func TestCatalogue_UpdateAndDelete(t *testing.T) {
	s := memory.New(seed(), false)
	c := s.Apartments

	require.NoError(t, c.UpdateRate("U12swan", 99.5))
	assert.Equal(t, 99.5, c.GetRate("U12swan"))

	assert.ErrorIs(t, c.UpdateRate("U0none", 10), domain.ErrNotFound)
	assert.ErrorIs(t, c.UpdateRate("U12swan", 0), domain.ErrValidation)
	assert.Equal(t, 99.5, c.GetRate("U12swan"))

	require.NoError(t, c.DeleteApartment("U12swan"))
	assert.Zero(t, c.GetRate("U12swan"))
	assert.ErrorIs(t, c.DeleteApartment("U12swan"), domain.ErrNotFound)
}

func TestCatalogue_PutApartment(t *testing.T) {
	s := memory.New(seed(), false)
	c := s.Apartments

	require.NoError(t, c.PutApartment(domain.Apartment{ID: "U12swan", NightlyRate: 110, Capacity: 4}))
	assert.Equal(t, 110.0, c.GetRate("U12swan"))
	assert.Equal(t, 4, c.Capacity("U12swan"))
	assert.Equal(t, "U12swan", c.List()[0].ID, "upsert keeps position")

	require.NoError(t, c.PutApartment(domain.Apartment{ID: "U7owl", NightlyRate: 70}))
	assert.Equal(t, domain.DefaultCapacity, c.Capacity("U7owl"))

	assert.ErrorIs(t, c.PutApartment(domain.Apartment{ID: "U8bat", NightlyRate: 70, Capacity: -1}), domain.ErrValidation)
}

func TestCatalogue_RejectsNonFiniteRates(t *testing.T) {
	s := memory.New(seed(), false)
	c := s.Apartments

	assert.ErrorIs(t, c.AddApartment("U1nan", math.NaN()), domain.ErrValidation)
	assert.ErrorIs(t, c.AddApartment("U1inf", math.Inf(1)), domain.ErrValidation)
	assert.ErrorIs(t, c.PutApartment(domain.Apartment{ID: "U2inf", NightlyRate: math.Inf(1)}), domain.ErrValidation)
	assert.ErrorIs(t, c.UpdateRate("U12swan", math.NaN()), domain.ErrValidation)
	assert.ErrorIs(t, c.UpdateRate("U12swan", math.Inf(1)), domain.ErrValidation)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 95.0, c.GetRate("U12swan"))
	assert.Zero(t, c.GetRate("U1nan"))
	assert.Zero(t, c.GetRate("U2inf"))
}

func TestCatalogue_Search(t *testing.T) {
	s := memory.New(seed(), false)

	got := s.Apartments.Search("s")
	require.Len(t, got, 2)
	assert.Equal(t, "U12swan", got[0].ID)
	assert.Equal(t, "U49goose", got[1].ID)

	assert.Len(t, s.Apartments.Search("u"), 1, "case-sensitive: only duck has a lowercase u")
	assert.Empty(t, s.Apartments.Search("SWAN"))

	folded := memory.New(seed(), true)
	got = folded.Apartments.Search("SWAN")
	require.Len(t, got, 1)
	assert.Equal(t, "U12swan", got[0].ID)
	assert.Len(t, folded.Apartments.Search("u"), 3)
}

func TestCatalogue_MostExpensive(t *testing.T) {
	s := memory.New(seed(), false)
	require.NoError(t, s.Apartments.AddApartment("U3cat", 145.2))

	got := s.Apartments.MostExpensive(3)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"U49goose", "U3cat", "U209duck"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Len(t, s.Apartments.MostExpensive(10), 4)
	assert.Empty(t, s.Apartments.MostExpensive(0))
}

// ---- ledger ----

func TestLedger_AddPoints(t *testing.T) {
	l := memory.NewLedger(false)

	total, err := l.AddPoints("NewGuest", 25)
	require.NoError(t, err)
	assert.Equal(t, 25, total)

	total, err = l.AddPoints("NewGuest", 17)
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.Equal(t, 42, l.GetPoints("NewGuest"))

	total, err = l.AddPoints("Zero", 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = l.AddPoints("NewGuest", -5)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = l.AddPoints("   ", 10)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 42, l.GetPoints("NewGuest"))
	assert.Zero(t, l.GetPoints("Unknown"))
}

func TestLedger_SetAddDelete(t *testing.T) {
	s := memory.New(seed(), false)
	l := s.Guests

	require.NoError(t, l.SetPoints("Alyssa", 100))
	assert.Equal(t, 100, l.GetPoints("Alyssa"))
	assert.ErrorIs(t, l.SetPoints("Alyssa", -1), domain.ErrValidation)
	assert.Equal(t, 100, l.GetPoints("Alyssa"))

	require.NoError(t, l.SetPoints("Maria", 5))
	assert.Equal(t, 5, l.GetPoints("Maria"))

	assert.ErrorIs(t, l.AddGuest("Maria", 1), domain.ErrValidation)
	assert.ErrorIs(t, l.AddGuest("Nina", -1), domain.ErrValidation)
	require.NoError(t, l.AddGuest("Nina", 0))

	assert.ErrorIs(t, l.UpdatePoints("Ghost", 3), domain.ErrNotFound)
	require.NoError(t, l.UpdatePoints("Nina", 3))
	assert.Equal(t, 3, l.GetPoints("Nina"))

	require.NoError(t, l.DeleteGuest("Nina"))
	assert.ErrorIs(t, l.DeleteGuest("Nina"), domain.ErrNotFound)
}

func TestLedger_TopGuests_StableTies(t *testing.T) {
	s := memory.New(memory.Seed{Guests: []domain.Guest{
		{Name: "Alyssa", Points: 20}, {Name: "Luigi", Points: 32}, {Name: "Maria", Points: 32},
	}}, false)

	top := s.Guests.TopGuests(2)
	require.Len(t, top, 2)
	assert.Equal(t, "Luigi", top[0].Name)
	assert.Equal(t, "Maria", top[1].Name)

	all := s.Guests.TopGuests(5)
	require.Len(t, all, 3)
	assert.Equal(t, "Alyssa", all[2].Name)
	assert.Empty(t, s.Guests.TopGuests(0))
}

func TestLedger_SpendAndSettle(t *testing.T) {
	s := memory.New(seed(), false)
	l := s.Guests
	require.NoError(t, l.SetPoints("Alyssa", 250))

	total, err := l.SpendPoints("Alyssa", 100)
	require.NoError(t, err)
	assert.Equal(t, 150, total)

	_, err = l.SpendPoints("Alyssa", 151)
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 150, l.GetPoints("Alyssa"))

	total, err = l.Settle("Alyssa", 100, 265)
	require.NoError(t, err)
	assert.Equal(t, 315, total)

	_, err = l.Settle("Alyssa", 400, 10)
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
	assert.Equal(t, 315, l.GetPoints("Alyssa"), "failed settle leaves balance untouched")

	total, err = l.Settle("Brand New", 0, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
}

func TestLedger_RejectsOverflow(t *testing.T) {
	l := memory.NewLedger(false)
	require.NoError(t, l.SetPoints("Big", math.MaxInt-5))

	_, err := l.AddPoints("Big", 10)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, math.MaxInt-5, l.GetPoints("Big"))

	_, err = l.Settle("Big", 0, 10)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, math.MaxInt-5, l.GetPoints("Big"), "failed settle leaves balance untouched")

	total, err := l.Settle("Big", 100, 10)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt-95, total)

	total, err = l.AddPoints("Big", 95)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, total)
}

func TestLedger_Search(t *testing.T) {
	s := memory.New(seed(), false)
	got := s.Guests.Search("ui")
	require.Len(t, got, 1)
	assert.Equal(t, "Luigi", got[0].Name)
	assert.Empty(t, s.Guests.Search("LUIGI"))

	folded := memory.New(seed(), true)
	assert.Len(t, folded.Guests.Search("LUIGI"), 1)
}

func TestLedger_ConcurrentAddPoints(t *testing.T) {
	l := memory.NewLedger(false)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.AddPoints("Luigi", 2)
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, l.GetPoints("Luigi"))
}

// ---- items ----

func TestItems_PutBulk(t *testing.T) {
	s := memory.New(seed(), false)

	saved, err := s.Items.PutBulk("toothpaste 6.0, shampoo 8.2")
	require.NoError(t, err)
	assert.Equal(t, []string{"toothpaste", "shampoo"}, saved)
	p, ok := s.Items.Price("shampoo")
	require.True(t, ok)
	assert.Equal(t, 8.2, p)

	_, err = s.Items.PutBulk("soap 2, towel abc")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, ok = s.Items.Price("soap")
	assert.False(t, ok, "nothing saved when one entry is bad")

	_, err = s.Items.PutBulk("soap -1")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = s.Items.PutBulk("   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = s.Items.PutBulk("soap")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = s.Items.PutBulk("soap NaN")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = s.Items.PutBulk("soap Inf")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, s.Items.PutItem(domain.Item{ID: "soap", Price: math.NaN()}), domain.ErrValidation)
	assert.ErrorIs(t, s.Items.PutItem(domain.Item{ID: "soap", Price: 0}), domain.ErrValidation)
	_, ok = s.Items.Price("soap")
	assert.False(t, ok)

	ids := []string{}
	for _, it := range s.Items.List() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"car_park", "breakfast", "toothpaste", domain.ExtraBedItem, "shampoo"}, ids)
}

// ---- store ----

func TestStore_ResetClearSummary(t *testing.T) {
	s := memory.New(seed(), false)
	require.NoError(t, s.Apartments.AddApartment("U5fox", 200))
	_, err := s.Guests.AddPoints("Maria", 10)
	require.NoError(t, err)
	s.Orders.Record(domain.Order{GuestName: "Maria"})

	sum := s.Summary()
	assert.Equal(t, 4, sum.TotalApartments)
	assert.Equal(t, 3, sum.TotalGuests)
	assert.Equal(t, 62, sum.TotalPoints)
	assert.InDelta(t, 546.9, sum.TotalApartmentValue, 1e-9)
	assert.InDelta(t, 546.9/4, sum.AverageRate, 1e-9)

	rc := s.ResetToDefaults()
	assert.Equal(t, memory.ResetCounts{Apartments: 3, Guests: 2}, rc)
	assert.Zero(t, s.Apartments.GetRate("U5fox"))
	assert.Zero(t, s.Guests.GetPoints("Maria"))
	assert.Empty(t, s.Orders.ForGuest("Maria"))

	cleared := s.ClearAll()
	assert.Equal(t, memory.ResetCounts{Apartments: 3, Guests: 2}, cleared)
	empty := s.Summary()
	assert.Zero(t, empty.AverageRate)
	assert.Zero(t, empty.AveragePoints)
}

func TestOrders_ForGuestReturnsCopy(t *testing.T) {
	o := memory.NewOrders()
	o.Record(domain.Order{ID: "a", GuestName: "Luigi"})
	o.Record(domain.Order{ID: "b", GuestName: "Luigi"})

	got := o.ForGuest("Luigi")
	require.Len(t, got, 2)
	got[0].ID = "mutated"
	assert.Equal(t, "a", o.ForGuest("Luigi")[0].ID)
	assert.Empty(t, o.ForGuest("Nobody"))
}
