package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus classifies a donor's actual payments against the promise.
type PaymentStatus string

const (
	FullyPaid     PaymentStatus = "fully-paid"
	PartiallyPaid PaymentStatus = "partially-paid"
	NotPaid       PaymentStatus = "not-paid"
)

// UnassignedKey groups donations whose grouping foreign key is missing.
const UnassignedKey = "unassigned"

type (
	// YearCurrencyTotals maps custom-year label -> currency code -> amount.
	YearCurrencyTotals map[string]map[string]decimal.Decimal

	DonationDetail struct {
		DonationID    string          `json:"donationId"`
		DonorID       string          `json:"donorId"`
		Date          time.Time       `json:"donationDate"`
		Year          string          `json:"year"`
		Kind          DonationType    `json:"kind"`
		Currency      string          `json:"currency"`
		Expected      decimal.Decimal `json:"expected"`
		Actual        decimal.Decimal `json:"actual"`
		CampaignName  string          `json:"campaignName,omitempty"`
		MethodName    string          `json:"paymentMethodName,omitempty"`
		PartnerCredit bool            `json:"partnerCredit"`
	}

	GroupedReportRow struct {
		Key            string                     `json:"key"`
		Name           string                     `json:"name"`
		Contact        Contact                    `json:"contact"`
		YearlyTotals   YearCurrencyTotals         `json:"yearlyTotals"`
		ActualPayments map[string]decimal.Decimal `json:"actualPayments,omitempty"`
		Donations      []DonationDetail           `json:"donations,omitempty"`
	}

	CurrencySummaryRow struct {
		Currency       string                     `json:"currency"`
		Symbol         string                     `json:"symbol"`
		Rate           decimal.Decimal            `json:"rate"`
		YearTotals     map[string]decimal.Decimal `json:"yearTotals"`
		YearConverted  map[string]decimal.Decimal `json:"yearConverted"`
		Total          decimal.Decimal            `json:"total"`
		TotalConverted decimal.Decimal            `json:"totalConverted"`
	}

	GroupedReport struct {
		YearLabels      []string             `json:"yearLabels"`
		Rows            []GroupedReportRow   `json:"rows"`
		CurrencySummary []CurrencySummaryRow `json:"currencySummary"`
		GrandTotal      decimal.Decimal      `json:"grandTotalInReportingCurrency"`
		Currency        string               `json:"reportingCurrency"`
		TotalRecords    int                  `json:"totalRecords"`
		TotalPages      int                  `json:"totalPages"`
		CurrentPage     int                  `json:"currentPage"`
	}

	PaymentReportRow struct {
		DonorID   string          `json:"donorId"`
		DonorName string          `json:"donorName"`
		Promised  decimal.Decimal `json:"promised"`
		Actual    decimal.Decimal `json:"actual"`
		Remaining decimal.Decimal `json:"remainingDebt"`
		Status    PaymentStatus   `json:"status"`
		Donations int             `json:"donations"`
	}

	YearlySummaryRow struct {
		Year       string                     `json:"year"`
		YearNumber int                        `json:"yearNumber"`
		ByCurrency map[string]decimal.Decimal `json:"byCurrency"`
		Total      decimal.Decimal            `json:"totalInReportingCurrency"`
		Donations  int                        `json:"donations"`
		Donors     int                        `json:"donors"`
	}
)

// Add accumulates amount into year/currency, creating entries on demand.
func (t YearCurrencyTotals) Add(year, currency string, amount decimal.Decimal) {
	byCur, ok := t[year]
	if !ok {
		byCur = make(map[string]decimal.Decimal)
		t[year] = byCur
	}
	byCur[currency] = byCur[currency].Add(amount)
}

// Converted sums the totals of one year (or all years when year is "") in the
// reporting currency.
func (t YearCurrencyTotals) Converted(year string, rates map[string]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for y, byCur := range t {
		if year != "" && y != year {
			continue
		}
		for cur, amt := range byCur {
			sum = sum.Add(Convert(amt, RateOf(rates, cur)))
		}
	}
	return sum
}

// StatusOf derives the payment status by comparing actual to promised.
func StatusOf(promised, actual decimal.Decimal) PaymentStatus {
	switch {
	case actual.IsPositive() && actual.GreaterThanOrEqual(promised):
		return FullyPaid
	case actual.IsPositive():
		return PartiallyPaid
	default:
		return NotPaid
	}
}
