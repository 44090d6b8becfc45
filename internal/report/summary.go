package report

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"donorbase/internal/calendar"
	"donorbase/internal/core"
)

// Summarize totals effective amounts per canonical currency and custom year,
// with reporting-currency equivalents. When yearLabels is non-empty only
// those years are counted and each row carries all of them. The second
// result is the grand total in the reporting currency.
func Summarize(
	ctx context.Context,
	b *calendar.Bucketer,
	donations []core.Donation,
	totals map[string]decimal.Decimal,
	rates map[string]decimal.Decimal,
	yearLabels []string,
) ([]core.CurrencySummaryRow, decimal.Decimal, error) {
	visible := make(map[string]bool, len(yearLabels))
	for _, l := range yearLabels {
		visible[l] = true
	}

	byCurrency := make(map[string]*core.CurrencySummaryRow)
	for _, d := range donations {
		year, err := b.LabelFor(ctx, d.Date)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if len(visible) > 0 && !visible[year] {
			continue
		}
		code := core.NormalizeCurrency(d.Currency)
		row, ok := byCurrency[code]
		if !ok {
			row = &core.CurrencySummaryRow{
				Currency:      code,
				Symbol:        core.CurrencySymbol(code),
				Rate:          core.RateOf(rates, code),
				YearTotals:    make(map[string]decimal.Decimal, len(yearLabels)),
				YearConverted: make(map[string]decimal.Decimal, len(yearLabels)),
			}
			for _, l := range yearLabels {
				row.YearTotals[l] = decimal.Zero
			}
			byCurrency[code] = row
		}
		row.YearTotals[year] = row.YearTotals[year].Add(core.EffectiveFrom(d, totals))
	}

	out := make([]core.CurrencySummaryRow, 0, len(byCurrency))
	grand := decimal.Zero
	for _, row := range byCurrency {
		row.Total = decimal.Zero
		row.TotalConverted = decimal.Zero
		for year, amt := range row.YearTotals {
			converted := core.Convert(amt, row.Rate)
			row.YearConverted[year] = converted
			row.Total = row.Total.Add(amt)
			row.TotalConverted = row.TotalConverted.Add(converted)
		}
		grand = grand.Add(row.TotalConverted)
		out = append(out, *row)
	}
	slices.SortFunc(out, func(x, y core.CurrencySummaryRow) int { return strings.Compare(x.Currency, y.Currency) })
	return out, grand, nil
}
