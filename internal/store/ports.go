// Package store declares the persistence collaborators the report engine reads from.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"donorbase/internal/core"
)

// ErrNotFound is returned by single-record lookups.
var ErrNotFound = errors.New("not found")

// Ports for outbound adapters. Every id-set lookup is answered with one bulk
// query regardless of how many ids are passed.
//
//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks -source=ports.go
type (
	DonationReader interface {
		// QueryDonations returns donations dated within r. With relations the
		// payment method is attached to each donation.
		QueryDonations(ctx context.Context, r core.DateRange, withRelations bool) ([]core.Donation, error)
		// DonationDates returns the date of every donation.
		DonationDates(ctx context.Context) ([]time.Time, error)
	}

	PaymentReader interface {
		QueryPayments(ctx context.Context, donationIDs []string, activeOnly bool) ([]core.Payment, error)
	}

	// FilterSource answers one global-filter dimension per call.
	FilterSource interface {
		// DonorIDsByPlace joins active donor-place links whose place matches any
		// of the given countries, cities or neighborhoods.
		DonorIDsByPlace(ctx context.Context, countryIDs, cityIDs, neighborhoodIDs []string) ([]string, error)
		DonorIDsBySegments(ctx context.Context, segmentIDs []string) ([]string, error)
		// DonorIDsByCampaigns returns donors who gave to, or were invited to, any campaign.
		DonorIDsByCampaigns(ctx context.Context, campaignIDs []string) ([]string, error)
		DonorIDsByAmount(ctx context.Context, min, max *decimal.Decimal) ([]string, error)
	}

	Directory interface {
		Donors(ctx context.Context, ids []string) (map[string]core.Donor, error)
		Contacts(ctx context.Context, donorIDs []string) (map[string]core.Contact, error)
		Campaigns(ctx context.Context, ids []string) (map[string]core.Campaign, error)
		PaymentMethods(ctx context.Context, ids []string) (map[string]core.PaymentMethod, error)
		Fundraisers(ctx context.Context, ids []string) (map[string]core.Fundraiser, error)
	}

	GlobalFilterStore interface {
		// GlobalFilters returns the user's filters, or the zero value when none are saved.
		GlobalFilters(ctx context.Context, userID string) (core.GlobalFilters, error)
		SaveGlobalFilters(ctx context.Context, userID string, f core.GlobalFilters) error
	}

	PaymentWriter interface {
		Donation(ctx context.Context, id string) (core.Donation, error)
		AppendPayment(ctx context.Context, p core.Payment) (string, error)
	}

	// Reader is everything the report engine consumes.
	Reader interface {
		DonationReader
		PaymentReader
		FilterSource
		Directory
		GlobalFilterStore
	}

	// Store is a complete backend.
	Store interface {
		Reader
		PaymentWriter
		Close() error
	}
)
