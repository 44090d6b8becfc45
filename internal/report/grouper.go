// Package report computes grouped donation reports: effective amounts per
// custom year and currency, currency summaries, sorting and pagination.
package report

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"donorbase/internal/calendar"
	"donorbase/internal/core"
)

// UnassignedName labels the bucket of donations missing their grouping key.
const UnassignedName = "Unassigned"

// Directory holds the names and contacts bulk-loaded for one report run.
type Directory struct {
	Donors      map[string]core.Donor
	Contacts    map[string]core.Contact
	Campaigns   map[string]core.Campaign
	Methods     map[string]core.PaymentMethod
	Fundraisers map[string]core.Fundraiser
}

// GroupInput is everything Group needs. Totals holds per-donation ledger sums
// as returned by core.PaymentTotals.
type GroupInput struct {
	Donations []core.Donation
	Payments  []core.Payment
	Totals    map[string]decimal.Decimal
	Filters   core.ReportFilters
	Directory Directory
	// YearLabels, when non-empty, are the only years ActualPayments records.
	YearLabels []string

	// PartnerAllowed limits which partners receive credit rows. Nil allows all.
	PartnerAllowed func(donorID string) bool
}

// GroupKey returns the row key of d under by, or core.UnassignedKey when the
// donation lacks the relevant reference.
func GroupKey(by core.GroupBy, d core.Donation) string {
	var key string
	switch by {
	case core.GroupByCampaign:
		key = d.CampaignID
	case core.GroupByPaymentMethod:
		key = d.PaymentMethodID
	case core.GroupByFundraiser:
		key = d.FundraiserID
	default:
		key = d.DonorID
	}
	if strings.TrimSpace(key) == "" {
		return core.UnassignedKey
	}
	return key
}

// Name resolves the display name of a row key, falling back to the key.
func (dir Directory) Name(by core.GroupBy, key string) string {
	if key == core.UnassignedKey {
		return UnassignedName
	}
	var name string
	switch by {
	case core.GroupByCampaign:
		name = dir.Campaigns[key].Name
	case core.GroupByPaymentMethod:
		name = dir.Methods[key].Name
	case core.GroupByFundraiser:
		name = dir.Fundraisers[key].Name
	default:
		name = dir.Donors[key].FullName()
	}
	if name == "" {
		return key
	}
	return name
}

// Group buckets donations into rows keyed by the requested dimension. Each
// donation adds its effective amount to row.YearlyTotals[year][currency].
// Partner credits appear in the partner's detail list only.
func Group(ctx context.Context, b *calendar.Bucketer, in GroupInput) ([]core.GroupedReportRow, error) {
	by := in.Filters.GroupBy
	if by == "" {
		by = core.GroupByDonor
	}

	rows := make(map[string]*core.GroupedReportRow)
	rowFor := func(key string) *core.GroupedReportRow {
		if r, ok := rows[key]; ok {
			return r
		}
		r := &core.GroupedReportRow{
			Key:          key,
			Name:         in.Directory.Name(by, key),
			YearlyTotals: make(core.YearCurrencyTotals),
		}
		if by == core.GroupByDonor {
			r.Contact = in.Directory.Contacts[key]
		}
		rows[key] = r
		return r
	}

	byID := make(map[string]core.Donation, len(in.Donations))
	for _, d := range in.Donations {
		byID[d.ID] = d

		year, err := b.LabelFor(ctx, d.Date)
		if err != nil {
			return nil, err
		}
		currency := core.NormalizeCurrency(d.Currency)
		effective := core.EffectiveFrom(d, in.Totals)

		row := rowFor(GroupKey(by, d))
		row.YearlyTotals.Add(year, currency, effective)

		if !in.Filters.ShowDetails {
			continue
		}
		detail := core.DonationDetail{
			DonationID:   d.ID,
			DonorID:      d.DonorID,
			Date:         d.Date,
			Year:         year,
			Kind:         d.Kind(),
			Currency:     currency,
			Expected:     core.ExpectedAmount(d, in.Filters.AsOf),
			Actual:       effective,
			CampaignName: in.Directory.Campaigns[d.CampaignID].Name,
			MethodName:   methodName(d, in.Directory),
		}
		row.Donations = append(row.Donations, detail)

		if by != core.GroupByDonor {
			continue
		}
		for _, partner := range d.PartnerIDs {
			if partner == "" || partner == d.DonorID {
				continue
			}
			if in.PartnerAllowed != nil && !in.PartnerAllowed(partner) {
				continue
			}
			credit := detail
			credit.PartnerCredit = true
			p := rowFor(partner)
			p.Donations = append(p.Donations, credit)
		}
	}

	if in.Filters.ShowActual {
		visible := make(map[string]bool, len(in.YearLabels))
		for _, l := range in.YearLabels {
			visible[l] = true
		}
		for _, p := range in.Payments {
			d, ok := byID[p.DonationID]
			if !ok || !core.Counts(d, p) {
				continue
			}
			year, err := b.LabelFor(ctx, p.Date)
			if err != nil {
				return nil, err
			}
			if len(visible) > 0 && !visible[year] {
				continue
			}
			currency := p.Currency
			if currency == "" {
				currency = d.Currency
			}
			row := rowFor(GroupKey(by, d))
			if row.ActualPayments == nil {
				row.ActualPayments = make(map[string]decimal.Decimal)
			}
			row.ActualPayments[year] = row.ActualPayments[year].Add(core.Convert(p.Amount, in.Filters.Rate(currency)))
		}
	}

	out := make([]core.GroupedReportRow, 0, len(rows))
	for _, r := range rows {
		slices.SortFunc(r.Donations, compareDetails)
		out = append(out, *r)
	}
	slices.SortFunc(out, func(x, y core.GroupedReportRow) int { return strings.Compare(x.Key, y.Key) })
	return out, nil
}

func methodName(d core.Donation, dir Directory) string {
	if d.PaymentMethod != nil && d.PaymentMethod.Name != "" {
		return d.PaymentMethod.Name
	}
	return dir.Methods[d.PaymentMethodID].Name
}

func compareDetails(a, b core.DonationDetail) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	if c := strings.Compare(a.DonationID, b.DonationID); c != 0 {
		return c
	}
	// own record before partner credit
	switch {
	case a.PartnerCredit == b.PartnerCredit:
		return 0
	case b.PartnerCredit:
		return -1
	default:
		return 1
	}
}
