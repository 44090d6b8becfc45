package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EffectiveAmount is the amount of a donation that counts toward totals.
// Commitments and standing orders count only what the ledger received;
// a missing ledger total counts as zero.
func EffectiveAmount(d Donation, paid decimal.Decimal) decimal.Decimal {
	if d.IsPaymentBased() {
		return paid
	}
	return d.Amount
}

// EffectiveFrom looks the donation up in totals and applies EffectiveAmount.
func EffectiveFrom(d Donation, totals map[string]decimal.Decimal) decimal.Decimal {
	return EffectiveAmount(d, totals[d.ID])
}

// ExpectedAmount is the promised figure shown in donation detail. Open-ended
// standing orders promise one period amount per elapsed period up to asOf.
func ExpectedAmount(d Donation, asOf time.Time) decimal.Decimal {
	if d.Kind() == StandingOrder && d.UnlimitedPayments {
		n := PeriodsElapsed(d.Date, asOf, d.Frequency)
		return d.Amount.Mul(decimal.NewFromInt(int64(n)))
	}
	return d.Amount
}

// Counts reports whether a ledger entry contributes to d: it must be active and
// its type must start with the label expected for d.
func Counts(d Donation, p Payment) bool {
	label := d.LedgerLabel()
	return label != "" && p.Active && p.DonationID == d.ID && strings.HasPrefix(p.Type, label)
}

// PaymentTotals sums active ledger entries per payment-based donation. An entry
// counts only when its type starts with the label expected for its donation;
// entries for unknown or one-time donations are ignored.
func PaymentTotals(donations []Donation, payments []Payment) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	if len(donations) == 0 || len(payments) == 0 {
		return totals
	}

	expected := make(map[string]string, len(donations))
	for _, d := range donations {
		if label := d.LedgerLabel(); label != "" {
			expected[d.ID] = label
		}
	}

	for _, p := range payments {
		if !p.Active {
			continue
		}
		label, ok := expected[p.DonationID]
		if !ok || !strings.HasPrefix(p.Type, label) {
			continue
		}
		totals[p.DonationID] = totals[p.DonationID].Add(p.Amount)
	}
	return totals
}
