package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"donorbase/internal/core"
	"donorbase/internal/store"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func fixture() store.Dataset {
	return store.Dataset{
		Donors: []core.Donor{
			{ID: "d1", FirstName: "Avi", LastName: "Cohen", Phone: "050", Email: "avi@example.org"},
			{ID: "d2", FirstName: "Dana", LastName: "Levi"},
			{ID: "d3", FirstName: "Moshe", LastName: "Katz"},
		},
		Places: []core.Place{
			{ID: "p1", CountryID: "IL", CityID: "jlm", Street: "Yafo", HouseNumber: "12", City: "Jerusalem"},
			{ID: "p2", CountryID: "US", CityID: "nyc", City: "New York"},
		},
		DonorPlaces: []core.DonorPlace{
			{ID: "l1", DonorID: "d1", PlaceID: "p1", Active: true, Primary: true},
			{ID: "l2", DonorID: "d2", PlaceID: "p1", Active: false},
			{ID: "l3", DonorID: "d3", PlaceID: "p2", Active: true},
		},
		Campaigns:      []core.Campaign{{ID: "c1", Name: "Winter", InvitedDonorIDs: []string{"d3"}}},
		PaymentMethods: []core.PaymentMethod{{ID: "so", Name: "Bank order", IsStandingOrder: true}},
		Segments:       []core.AudienceSegment{{ID: "s1", DonorIDs: []string{"d1", "d2"}}},
		Donations: []core.Donation{
			{ID: "x1", DonorID: "d1", CampaignID: "c1", Amount: decimal.NewFromInt(500), Currency: "ILS", Date: day(2024, 6, 1), Type: core.OneTime},
			{ID: "x2", DonorID: "d2", PaymentMethodID: "so", Amount: decimal.NewFromInt(50), Date: day(2023, 1, 10), Type: core.OneTime},
		},
		Payments: []core.Payment{
			{ID: "y1", DonationID: "x2", Amount: decimal.NewFromInt(50), Date: day(2023, 2, 10), Type: "standingOrder", Active: true},
			{ID: "y2", DonationID: "x2", Amount: decimal.NewFromInt(50), Date: day(2023, 3, 10), Type: "standingOrder", Active: false},
		},
	}
}

func TestQueryDonationsWindowAndRelations(t *testing.T) {
	s := New(fixture())
	ctx := context.Background()

	got, err := s.QueryDonations(ctx, core.DateRange{Start: day(2023, 1, 10), End: day(2023, 12, 31)}, true)
	if err != nil || len(got) != 1 || got[0].ID != "x2" {
		t.Fatalf("unexpected donations: %+v err=%v", got, err)
	}
	if got[0].PaymentMethod == nil || !got[0].PaymentMethod.IsStandingOrder {
		t.Fatalf("expected payment method relation, got %+v", got[0].PaymentMethod)
	}
	if got[0].Kind() != core.StandingOrder {
		t.Fatalf("expected standing order kind, got %s", got[0].Kind())
	}

	got, _ = s.QueryDonations(ctx, core.DateRange{Start: day(2023, 1, 1), End: day(2023, 12, 31)}, false)
	if got[0].PaymentMethod != nil {
		t.Fatalf("relations loaded without being requested")
	}
}

func TestQueryPaymentsActiveOnly(t *testing.T) {
	s := New(fixture())
	ctx := context.Background()

	all, _ := s.QueryPayments(ctx, []string{"x2"}, false)
	active, _ := s.QueryPayments(ctx, []string{"x2"}, true)
	none, _ := s.QueryPayments(ctx, nil, true)
	if len(all) != 2 || len(active) != 1 || len(none) != 0 {
		t.Fatalf("all=%d active=%d none=%d", len(all), len(active), len(none))
	}
}

func TestFilterSourceDimensions(t *testing.T) {
	s := New(fixture())
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() ([]string, error)
		want []string
	}{
		{"country ignores inactive links", func() ([]string, error) { return s.DonorIDsByPlace(ctx, []string{"IL"}, nil, nil) }, []string{"d1"}},
		{"country or city", func() ([]string, error) { return s.DonorIDsByPlace(ctx, []string{"IL"}, []string{"nyc"}, nil) }, []string{"d1", "d3"}},
		{"segments", func() ([]string, error) { return s.DonorIDsBySegments(ctx, []string{"s1", "missing"}) }, []string{"d1", "d2"}},
		{"campaign donors and invitees", func() ([]string, error) { return s.DonorIDsByCampaigns(ctx, []string{"c1"}) }, []string{"d1", "d3"}},
		{"amount range inclusive", func() ([]string, error) {
			min, max := decimal.NewFromInt(50), decimal.NewFromInt(100)
			return s.DonorIDsByAmount(ctx, &min, &max)
		}, []string{"d2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			sort.Strings(got)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v want %v", got, tt.want)
				}
			}
		})
	}
}

func TestContactsUsePrimaryPlace(t *testing.T) {
	s := New(fixture())
	got, err := s.Contacts(context.Background(), []string{"d1", "d2", "nobody"})
	if err != nil {
		t.Fatal(err)
	}
	if c := got["d1"]; c.Address != "Yafo 12, Jerusalem" || c.Phone != "050" || c.Email != "avi@example.org" {
		t.Fatalf("unexpected d1 contact: %+v", c)
	}
	if c := got["d2"]; c.Address != "" {
		t.Fatalf("inactive place must not be used: %+v", c)
	}
	if _, ok := got["nobody"]; ok {
		t.Fatalf("unknown donor returned")
	}
}

func TestGlobalFiltersRoundTrip(t *testing.T) {
	s := New(fixture())
	ctx := context.Background()

	empty, err := s.GlobalFilters(ctx, "u1")
	if err != nil || len(empty.CityIDs) != 0 {
		t.Fatalf("expected zero filters, got %+v err=%v", empty, err)
	}
	if err := s.SaveGlobalFilters(ctx, "u1", core.GlobalFilters{CityIDs: []string{"jlm"}}); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GlobalFilters(ctx, "u1")
	if len(got.CityIDs) != 1 || got.CityIDs[0] != "jlm" {
		t.Fatalf("unexpected filters: %+v", got)
	}
}

func TestAppendPaymentAndDonationLookup(t *testing.T) {
	s := New(fixture())
	ctx := context.Background()

	if _, err := s.Donation(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	d, err := s.Donation(ctx, "x2")
	if err != nil || d.Kind() != core.StandingOrder {
		t.Fatalf("unexpected donation %+v err=%v", d, err)
	}

	id, err := s.AppendPayment(ctx, core.Payment{DonationID: "x2", Amount: decimal.NewFromInt(50), Date: day(2023, 4, 10), Type: "standingOrder", Active: true})
	if err != nil || id == "" {
		t.Fatalf("append: id=%q err=%v", id, err)
	}
	active, _ := s.QueryPayments(ctx, []string{"x2"}, true)
	if len(active) != 2 {
		t.Fatalf("expected 2 active payments, got %d", len(active))
	}

	if _, err := s.AppendPayment(ctx, core.Payment{DonationID: "x2"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestNewFromFile(t *testing.T) {
	s, err := NewFromFile("")
	if err != nil {
		t.Fatal(err)
	}
	if dates, _ := s.DonationDates(context.Background()); len(dates) != 0 {
		t.Fatalf("expected empty store")
	}

	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `{
  "donors": [{"id": "d1", "firstName": "Avi", "lastName": "Cohen"}],
  "donations": [{"id": "x1", "donorId": "d1", "amount": "100.50", "currency": "USD", "donationDate": "2024-06-01T00:00:00Z", "donationType": "full"}]
}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = NewFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	dates, _ := s.DonationDates(context.Background())
	if len(dates) != 1 || !dates[0].Equal(day(2024, 6, 1)) {
		t.Fatalf("unexpected dates: %v", dates)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(bad, []byte(`{"donations": [{"id": "x", "donationType": "full"}]}`), 0o644)
	if _, err := NewFromFile(bad); err == nil {
		t.Fatalf("expected validation error for donation without donor")
	}
}
