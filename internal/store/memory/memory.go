// Package memory is an in-process backend seeded from a JSON dataset. It serves
// local development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"donorbase/internal/core"
	"donorbase/internal/store"
)

type Store struct {
	mu          sync.RWMutex
	donations   []core.Donation
	payments    []core.Payment
	donors      map[string]core.Donor
	places      map[string]core.Place
	donorPlaces []core.DonorPlace
	campaigns   map[string]core.Campaign
	methods     map[string]core.PaymentMethod
	fundraisers map[string]core.Fundraiser
	segments    map[string]core.AudienceSegment
	globals     map[string]core.GlobalFilters
}

var _ store.Store = (*Store)(nil)

func New(ds store.Dataset) *Store {
	s := &Store{
		donations:   append([]core.Donation(nil), ds.Donations...),
		payments:    append([]core.Payment(nil), ds.Payments...),
		donorPlaces: append([]core.DonorPlace(nil), ds.DonorPlaces...),
		donors:      make(map[string]core.Donor, len(ds.Donors)),
		places:      make(map[string]core.Place, len(ds.Places)),
		campaigns:   make(map[string]core.Campaign, len(ds.Campaigns)),
		methods:     make(map[string]core.PaymentMethod, len(ds.PaymentMethods)),
		fundraisers: make(map[string]core.Fundraiser, len(ds.Fundraisers)),
		segments:    make(map[string]core.AudienceSegment, len(ds.Segments)),
		globals:     make(map[string]core.GlobalFilters, len(ds.GlobalFilters)),
	}
	for _, d := range ds.Donors {
		s.donors[d.ID] = d
	}
	for _, p := range ds.Places {
		s.places[p.ID] = p
	}
	for _, c := range ds.Campaigns {
		s.campaigns[c.ID] = c
	}
	for _, m := range ds.PaymentMethods {
		s.methods[m.ID] = m
	}
	for _, f := range ds.Fundraisers {
		s.fundraisers[f.ID] = f
	}
	for _, seg := range ds.Segments {
		s.segments[seg.ID] = seg
	}
	for user, f := range ds.GlobalFilters {
		s.globals[user] = f
	}
	return s
}

// NewFromFile seeds the store from path. An empty path yields an empty store.
func NewFromFile(path string) (*Store, error) {
	if path == "" {
		return New(store.Dataset{}), nil
	}
	ds, err := store.LoadDataset(path)
	if err != nil {
		return nil, err
	}
	return New(ds), nil
}

func (s *Store) Close() error { return nil }

func (s *Store) QueryDonations(_ context.Context, r core.DateRange, withRelations bool) ([]core.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Donation
	for _, d := range s.donations {
		if !r.Contains(d.Date) {
			continue
		}
		if withRelations && d.PaymentMethodID != "" {
			if m, ok := s.methods[d.PaymentMethodID]; ok {
				d.PaymentMethod = &m
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) DonationDates(_ context.Context) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]time.Time, 0, len(s.donations))
	for _, d := range s.donations {
		out = append(out, d.Date)
	}
	return out, nil
}

func (s *Store) QueryPayments(_ context.Context, donationIDs []string, activeOnly bool) ([]core.Payment, error) {
	if len(donationIDs) == 0 {
		return nil, nil
	}
	want := setOf(donationIDs)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Payment
	for _, p := range s.payments {
		if _, ok := want[p.DonationID]; !ok {
			continue
		}
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) DonorIDsByPlace(_ context.Context, countryIDs, cityIDs, neighborhoodIDs []string) ([]string, error) {
	countries, cities, hoods := setOf(countryIDs), setOf(cityIDs), setOf(neighborhoodIDs)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, link := range s.donorPlaces {
		if !link.Active {
			continue
		}
		p, ok := s.places[link.PlaceID]
		if !ok {
			continue
		}
		if has(countries, p.CountryID) || has(cities, p.CityID) || has(hoods, p.NeighborhoodID) {
			out = append(out, link.DonorID)
		}
	}
	return out, nil
}

func (s *Store) DonorIDsBySegments(_ context.Context, segmentIDs []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, id := range segmentIDs {
		out = append(out, s.segments[id].DonorIDs...)
	}
	return out, nil
}

func (s *Store) DonorIDsByCampaigns(_ context.Context, campaignIDs []string) ([]string, error) {
	want := setOf(campaignIDs)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, d := range s.donations {
		if has(want, d.CampaignID) {
			out = append(out, d.DonorID)
		}
	}
	for _, id := range campaignIDs {
		out = append(out, s.campaigns[id].InvitedDonorIDs...)
	}
	return out, nil
}

func (s *Store) DonorIDsByAmount(_ context.Context, min, max *decimal.Decimal) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, d := range s.donations {
		if core.InAmountRange(d.Amount, min, max) {
			out = append(out, d.DonorID)
		}
	}
	return out, nil
}

func (s *Store) Donors(_ context.Context, ids []string) (map[string]core.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.donors, ids), nil
}

// Contacts uses the donor's primary active place for the address, falling back
// to any active place.
func (s *Store) Contacts(_ context.Context, donorIDs []string) (map[string]core.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]core.Contact, len(donorIDs))
	for _, id := range donorIDs {
		d, ok := s.donors[id]
		if !ok {
			continue
		}
		out[id] = core.Contact{Phone: d.Phone, Email: d.Email, Address: s.addressOf(id)}
	}
	return out, nil
}

func (s *Store) addressOf(donorID string) string {
	var fallback string
	for _, link := range s.donorPlaces {
		if link.DonorID != donorID || !link.Active {
			continue
		}
		line := s.places[link.PlaceID].Line()
		if link.Primary {
			return line
		}
		if fallback == "" {
			fallback = line
		}
	}
	return fallback
}

func (s *Store) Campaigns(_ context.Context, ids []string) (map[string]core.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.campaigns, ids), nil
}

func (s *Store) PaymentMethods(_ context.Context, ids []string) (map[string]core.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.methods, ids), nil
}

func (s *Store) Fundraisers(_ context.Context, ids []string) (map[string]core.Fundraiser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.fundraisers, ids), nil
}

func (s *Store) GlobalFilters(_ context.Context, userID string) (core.GlobalFilters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.globals[userID], nil
}

func (s *Store) SaveGlobalFilters(_ context.Context, userID string, f core.GlobalFilters) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globals[userID] = f
	return nil
}

func (s *Store) Donation(_ context.Context, id string) (core.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.donations {
		if d.ID == id {
			if m, ok := s.methods[d.PaymentMethodID]; ok {
				d.PaymentMethod = &m
			}
			return d, nil
		}
	}
	return core.Donation{}, store.ErrNotFound
}

// AppendPayment stores p and returns its id, generating one when empty.
func (s *Store) AppendPayment(_ context.Context, p core.Payment) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, p)
	return p.ID, nil
}

func pick[V any](m map[string]V, ids []string) map[string]V {
	out := make(map[string]V, len(ids))
	for _, id := range ids {
		if v, ok := m[id]; ok {
			out[id] = v
		}
	}
	return out
}

func setOf(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func has(set map[string]struct{}, id string) bool {
	if id == "" {
		return false
	}
	_, ok := set[id]
	return ok
}
