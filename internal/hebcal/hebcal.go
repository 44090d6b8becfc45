// Package hebcal adapts the Hebrew calendar to the custom-year converter.
// Years start on 1 Tishrei.
package hebcal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hebcal/gematriya"
	"github.com/hebcal/hebcal-go/hdate"

	"donorbase/internal/core"
)

// Calendar converts Gregorian dates to Hebrew years. The zero value is ready to use.
type Calendar struct{}

// New returns a Hebrew calendar converter.
func New() Calendar { return Calendar{} }

func (Calendar) DateToYear(_ context.Context, t time.Time) (int, error) {
	if t.IsZero() {
		return 0, fmt.Errorf("%w: zero date", core.ErrInvalidDate)
	}
	return hdate.FromTime(core.Day(t)).Year(), nil
}

func (Calendar) YearToRange(_ context.Context, year int) (core.DateRange, error) {
	if year < 1 {
		return core.DateRange{}, fmt.Errorf("%w: %d", core.ErrInvalidYearLabel, year)
	}
	return core.DateRange{
		Start: roshHashana(year),
		End:   roshHashana(year + 1).AddDate(0, 0, -1),
	}, nil
}

func (Calendar) FormatYear(year int) string {
	return FormatYear(year)
}

func (Calendar) ParseYear(label string) (int, error) {
	return ParseYear(label)
}

// roshHashana returns 1 Tishrei of year as a UTC midnight.
func roshHashana(year int) time.Time {
	return core.Day(hdate.New(year, hdate.Tishrei, 1).Gregorian())
}

// IsLeap reports whether the year has thirteen months.
func IsLeap(year int) bool {
	return hdate.IsLeapYear(year)
}

// DaysInYear returns the length of a Hebrew year.
func DaysInYear(year int) int {
	return hdate.DaysInYear(year)
}

var letterValues = map[rune]int{
	'א': 1, 'ב': 2, 'ג': 3, 'ד': 4, 'ה': 5, 'ו': 6, 'ז': 7, 'ח': 8, 'ט': 9,
	'י': 10, 'כ': 20, 'ך': 20, 'ל': 30, 'מ': 40, 'ם': 40, 'נ': 50, 'ן': 50,
	'ס': 60, 'ע': 70, 'פ': 80, 'ף': 80, 'צ': 90, 'ץ': 90,
	'ק': 100, 'ר': 200, 'ש': 300, 'ת': 400,
}

const (
	geresh    = "׳"
	gershayim = "״"
)

// FormatYear renders a year in Hebrew numerals without the thousands, e.g.
// 5785 -> תשפ״ה. Round millennia have no such label and stay numeric.
func FormatYear(year int) string {
	n := year % 1000
	if n == 0 {
		return strconv.Itoa(year)
	}
	return gematriya.Gematriya(n)
}

// ParseYear accepts a Hebrew-numeral label (with or without punctuation) or a
// plain year number. Labels that are not in canonical form are rejected.
func ParseYear(label string) (int, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", core.ErrInvalidYearLabel)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("%w: %q", core.ErrInvalidYearLabel, label)
		}
		return n, nil
	}

	bare := strings.NewReplacer(geresh, "", gershayim, "", "'", "", `"`, "").Replace(s)
	sum := 0
	for _, r := range bare {
		v, ok := letterValues[r]
		if !ok {
			return 0, fmt.Errorf("%w: %q", core.ErrInvalidYearLabel, label)
		}
		sum += v
	}
	if sum == 0 || sum >= 1000 {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidYearLabel, label)
	}

	year := 5000 + sum
	if canonical := strings.NewReplacer(geresh, "", gershayim, "").Replace(FormatYear(year)); canonical != normalizeFinals(bare) {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidYearLabel, label)
	}
	return year, nil
}

func normalizeFinals(s string) string {
	return strings.NewReplacer("ך", "כ", "ם", "מ", "ן", "נ", "ף", "פ", "ץ", "צ").Replace(s)
}
