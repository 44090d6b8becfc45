// Package calendar defines the custom-year conversion contract used by the
// report engine and a per-request memo over it.
package calendar

import (
	"context"
	"fmt"
	"time"

	"donorbase/internal/core"
)

// Converter converts between Gregorian dates and custom calendar years.
type Converter interface {
	DateToYear(ctx context.Context, t time.Time) (int, error)
	YearToRange(ctx context.Context, year int) (core.DateRange, error)
	FormatYear(year int) string
	ParseYear(label string) (int, error)
}

// Bucketer memoizes conversions for the lifetime of one report run. It is not
// safe for concurrent use and must not outlive the request that created it.
type Bucketer struct {
	conv   Converter
	years  map[string]int
	ranges map[int]core.DateRange
	labels map[int]string
}

// NewBucketer creates a memo scoped to a single report invocation.
func NewBucketer(conv Converter) *Bucketer {
	return &Bucketer{
		conv:   conv,
		years:  make(map[string]int),
		ranges: make(map[int]core.DateRange),
		labels: make(map[int]string),
	}
}

func dayKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// YearOf returns the custom year number of a date.
func (b *Bucketer) YearOf(ctx context.Context, t time.Time) (int, error) {
	key := dayKey(t)
	if y, ok := b.years[key]; ok {
		return y, nil
	}
	y, err := b.conv.DateToYear(ctx, core.Day(t))
	if err != nil {
		return 0, fmt.Errorf("convert %s to custom year: %w", key, err)
	}
	b.years[key] = y
	return y, nil
}

// LabelFor returns the custom-year label of a date.
func (b *Bucketer) LabelFor(ctx context.Context, t time.Time) (string, error) {
	y, err := b.YearOf(ctx, t)
	if err != nil {
		return "", err
	}
	return b.Label(y), nil
}

// Label formats a year number.
func (b *Bucketer) Label(year int) string {
	if l, ok := b.labels[year]; ok {
		return l
	}
	l := b.conv.FormatYear(year)
	b.labels[year] = l
	return l
}

// Parse converts a label into a year number.
func (b *Bucketer) Parse(label string) (int, error) {
	return b.conv.ParseYear(label)
}

// RangeOf returns the Gregorian date range of a custom year.
func (b *Bucketer) RangeOf(ctx context.Context, year int) (core.DateRange, error) {
	if r, ok := b.ranges[year]; ok {
		return r, nil
	}
	r, err := b.conv.YearToRange(ctx, year)
	if err != nil {
		return core.DateRange{}, fmt.Errorf("date range of custom year %d: %w", year, err)
	}
	b.ranges[year] = r
	return r, nil
}

// Lookups reports how many distinct dates have been converted.
func (b *Bucketer) Lookups() int {
	return len(b.years)
}
