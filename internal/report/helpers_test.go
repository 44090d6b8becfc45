package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"donorbase/internal/calendar"
	"donorbase/internal/core"
)

// gregorian is a Converter whose custom year is the Gregorian year.
type gregorian struct{}

func (gregorian) DateToYear(_ context.Context, t time.Time) (int, error) { return t.Year(), nil }

func (gregorian) YearToRange(_ context.Context, y int) (core.DateRange, error) {
	return core.DateRange{Start: day(y, 1, 1), End: day(y, 12, 31)}, nil
}

func (gregorian) FormatYear(y int) string { return strconv.Itoa(y) }

func (gregorian) ParseYear(s string) (int, error) {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidYearLabel, s)
	}
	return y, nil
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newBucketer() *calendar.Bucketer { return calendar.NewBucketer(gregorian{}) }

// flatten renders totals as strings so equal amounts compare equal regardless
// of decimal exponent.
func flatten(t core.YearCurrencyTotals) map[string]string {
	out := make(map[string]string)
	for year, byCur := range t {
		for cur, amt := range byCur {
			out[year+"/"+cur] = amt.String()
		}
	}
	return out
}

func rowByKey(rows []core.GroupedReportRow, key string) (core.GroupedReportRow, bool) {
	for _, r := range rows {
		if r.Key == key {
			return r, true
		}
	}
	return core.GroupedReportRow{}, false
}
