package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	GroupByDonor         GroupBy = "donor"
	GroupByCampaign      GroupBy = "campaign"
	GroupByPaymentMethod GroupBy = "paymentMethod"
	GroupByFundraiser    GroupBy = "fundraiser"
)

// LastFourYears selects the current custom year and the three before it.
const LastFourYears = "last4"

const (
	SortName    = "name"
	SortAddress = "address"
	SortPhone   = "phone"
	SortEmail   = "email"
	SortTotal   = "total"
	// SortYearPrefix is followed by a custom-year label, e.g. "year:תשפ״ה".
	SortYearPrefix = "year:"
)

const DefaultReportingCurrency = "ILS"

type (
	GroupBy string

	// GlobalFilters is the persisted, user-scoped filter set. A nil or empty
	// field places no constraint on its dimension.
	GlobalFilters struct {
		CountryIDs      []string         `json:"countryIds,omitempty"`
		CityIDs         []string         `json:"cityIds,omitempty"`
		NeighborhoodIDs []string         `json:"neighborhoodIds,omitempty"`
		SegmentIDs      []string         `json:"targetAudienceIds,omitempty"`
		CampaignIDs     []string         `json:"campaignIds,omitempty"`
		AmountMin       *decimal.Decimal `json:"amountMin,omitempty"`
		AmountMax       *decimal.Decimal `json:"amountMax,omitempty"`
		DateFrom        string           `json:"dateFrom,omitempty"`
		DateTo          string           `json:"dateTo,omitempty"`
	}

	SortSpec struct {
		Key  string `json:"key"`
		Desc bool   `json:"desc"`
	}

	ReportFilters struct {
		UserID            string                     `json:"userId,omitempty"`
		GroupBy           GroupBy                    `json:"groupBy"`
		Years             string                     `json:"years"`
		DonorIDs          []string                   `json:"donorIds,omitempty"`
		CampaignIDs       []string                   `json:"campaignIds,omitempty"`
		DonationTypes     []DonationType             `json:"donationTypes,omitempty"`
		DateFrom          string                     `json:"dateFrom,omitempty"`
		DateTo            string                     `json:"dateTo,omitempty"`
		AmountMin         *decimal.Decimal           `json:"amountMin,omitempty"`
		AmountMax         *decimal.Decimal           `json:"amountMax,omitempty"`
		ConversionRates   map[string]decimal.Decimal `json:"conversionRates,omitempty"`
		ReportingCurrency string                     `json:"reportingCurrency,omitempty"`
		Sort              []SortSpec                 `json:"sort,omitempty"`
		Page              int                        `json:"page"`
		PageSize          int                        `json:"pageSize"`
		ShowDetails       bool                       `json:"showDetails"`
		ShowActual        bool                       `json:"showActualPayments"`
		AsOf              time.Time                  `json:"asOf,omitempty"`
	}
)

func (g GroupBy) IsValid() bool {
	switch g {
	case GroupByDonor, GroupByCampaign, GroupByPaymentMethod, GroupByFundraiser:
		return true
	default:
		return false
	}
}

// HasPlace reports whether any geographic constraint is set.
func (f GlobalFilters) HasPlace() bool {
	return len(f.CountryIDs) > 0 || len(f.CityIDs) > 0 || len(f.NeighborhoodIDs) > 0
}

// HasAmount reports whether either amount bound is set.
func (f GlobalFilters) HasAmount() bool {
	return f.AmountMin != nil || f.AmountMax != nil
}

// Dates parses the optional date bounds.
func (f GlobalFilters) Dates() (from, to *time.Time, err error) {
	return parseDateBounds(f.DateFrom, f.DateTo)
}

// Dates parses the optional local date bounds.
func (f ReportFilters) Dates() (from, to *time.Time, err error) {
	return parseDateBounds(f.DateFrom, f.DateTo)
}

// Rate returns the conversion rate of a currency into the reporting currency.
// Unknown currencies convert 1:1.
func (f ReportFilters) Rate(currency string) decimal.Decimal {
	return RateOf(f.ConversionRates, currency)
}

// Currency returns the reporting currency code.
func (f ReportFilters) Currency() string {
	if f.ReportingCurrency == "" {
		return DefaultReportingCurrency
	}
	return NormalizeCurrency(f.ReportingCurrency)
}

// RateOf looks a currency up in a rate table, defaulting to 1.
func RateOf(rates map[string]decimal.Decimal, currency string) decimal.Decimal {
	if r, ok := rates[NormalizeCurrency(currency)]; ok {
		return r
	}
	return decimal.NewFromInt(1)
}

// NormalizeRates re-keys a rate table by canonical currency code. The
// reporting currency always converts 1:1 unless the table says otherwise.
func NormalizeRates(rates map[string]decimal.Decimal, reporting string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(rates)+1)
	for cur, r := range rates {
		out[NormalizeCurrency(cur)] = r
	}
	if _, ok := out[reporting]; !ok {
		out[reporting] = decimal.NewFromInt(1)
	}
	return out
}

// InAmountRange checks inclusive optional bounds.
func InAmountRange(v decimal.Decimal, min, max *decimal.Decimal) bool {
	if min != nil && v.LessThan(*min) {
		return false
	}
	if max != nil && v.GreaterThan(*max) {
		return false
	}
	return true
}

// ParseDateFilter parses a YYYY-MM-DD date. An empty string yields nil.
func ParseDateFilter(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDateFilter, s)
	}
	return &t, nil
}

func parseDateBounds(fromStr, toStr string) (from, to *time.Time, err error) {
	if from, err = ParseDateFilter(fromStr); err != nil {
		return nil, nil, err
	}
	if to, err = ParseDateFilter(toStr); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("%w: %s is after %s", ErrInvalidDateFilter, fromStr, toStr)
	}
	return from, to, nil
}
