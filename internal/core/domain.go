package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OneTime    DonationType = "full"
	Commitment DonationType = "commitment"

	// StandingOrder is never stored on a donation; it is implied by the payment method.
	StandingOrder DonationType = "standingOrder"
)

// Ledger entry labels. A payment counts toward a donation only when its type
// starts with the label expected for that donation.
const (
	LedgerCommitment    = "commitment"
	LedgerStandingOrder = "standingOrder"
)

type (
	DonationType string

	Donation struct {
		ID                string          `json:"id"`
		DonorID           string          `json:"donorId"`
		CampaignID        string          `json:"campaignId,omitempty"`
		PaymentMethodID   string          `json:"paymentMethodId,omitempty"`
		FundraiserID      string          `json:"fundraiserId,omitempty"`
		Amount            decimal.Decimal `json:"amount"`
		Currency          string          `json:"currency"`
		Date              time.Time       `json:"donationDate"`
		Type              DonationType    `json:"donationType"`
		Frequency         Frequency       `json:"frequency,omitempty"`
		NumberOfPayments  int             `json:"numberOfPayments,omitempty"`
		UnlimitedPayments bool            `json:"unlimitedPayments"`
		PartnerIDs        []string        `json:"partnerIds,omitempty"`

		// PaymentMethod is populated when donations are loaded with relations.
		PaymentMethod *PaymentMethod `json:"paymentMethod,omitempty"`
	}

	Payment struct {
		ID         string          `json:"id"`
		DonationID string          `json:"donationId"`
		Amount     decimal.Decimal `json:"amount"`
		Currency   string          `json:"currency"`
		Date       time.Time       `json:"paymentDate"`
		Type       string          `json:"type"`
		Active     bool            `json:"isActive"`
	}

	// DateRange is inclusive on both ends at day granularity.
	DateRange struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidYearLabel  = errors.New("invalid year label")
	ErrInvalidDateFilter = errors.New("invalid date filter")
	ErrInvalidGroupBy    = errors.New("invalid group by")
	ErrInvalidSort       = errors.New("invalid sort")
	ErrInvalidPage       = errors.New("invalid page")
	ErrEmptyDonor        = errors.New("empty donor id")
	ErrEmptyDonation     = errors.New("empty donation id")
	ErrInvalidDate       = errors.New("invalid date")
)

// Kind resolves the donation model used for aggregation. A commitment stays a
// commitment even when paid through a standing-order method.
func (d Donation) Kind() DonationType {
	if d.Type == Commitment {
		return Commitment
	}
	if d.PaymentMethod != nil && d.PaymentMethod.IsStandingOrder {
		return StandingOrder
	}
	return OneTime
}

// IsPaymentBased reports whether the donation is recognized only through the ledger.
func (d Donation) IsPaymentBased() bool {
	k := d.Kind()
	return k == Commitment || k == StandingOrder
}

// LedgerLabel returns the payment type prefix expected for this donation,
// or "" for one-time donations.
func (d Donation) LedgerLabel() string {
	switch d.Kind() {
	case Commitment:
		return LedgerCommitment
	case StandingOrder:
		return LedgerStandingOrder
	default:
		return ""
	}
}

func (d Donation) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return ErrEmptyDonation
	}
	if strings.TrimSpace(d.DonorID) == "" {
		return ErrEmptyDonor
	}
	if d.Date.IsZero() {
		return ErrInvalidDate
	}
	if d.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	switch d.Type {
	case OneTime, Commitment:
	default:
		return errors.New("invalid donation type: " + string(d.Type))
	}
	if d.Frequency != "" && !d.Frequency.IsValid() {
		return errors.New("invalid frequency: " + string(d.Frequency))
	}
	return nil
}

func (p Payment) Validate() error {
	if strings.TrimSpace(p.DonationID) == "" {
		return ErrEmptyDonation
	}
	if p.Date.IsZero() {
		return ErrInvalidDate
	}
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(p.Type) == "" {
		return errors.New("empty payment type")
	}
	return nil
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls within the range, ignoring time of day.
func (r DateRange) Contains(t time.Time) bool {
	day := Day(t)
	return !day.Before(Day(r.Start)) && !day.After(Day(r.End))
}

// Intersect narrows r by optional bounds. ok is false when the result is empty.
func (r DateRange) Intersect(from, to *time.Time) (DateRange, bool) {
	out := r
	if from != nil && from.After(out.Start) {
		out.Start = *from
	}
	if to != nil && to.Before(out.End) {
		out.End = *to
	}
	return out, !Day(out.Start).After(Day(out.End))
}
