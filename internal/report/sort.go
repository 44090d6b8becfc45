package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"donorbase/internal/core"
)

// sortLanguage drives string collation for name and contact keys.
var sortLanguage = language.Hebrew

type rowCompare func(a, b core.GroupedReportRow) int

// ValidateSort rejects unknown sort keys.
func ValidateSort(specs []core.SortSpec) error {
	for _, s := range specs {
		switch {
		case s.Key == core.SortName, s.Key == core.SortAddress, s.Key == core.SortPhone,
			s.Key == core.SortEmail, s.Key == core.SortTotal:
		case strings.HasPrefix(s.Key, core.SortYearPrefix) && len(s.Key) > len(core.SortYearPrefix):
		default:
			return fmt.Errorf("%w: %q", core.ErrInvalidSort, s.Key)
		}
	}
	return nil
}

// SortRows orders rows by specs in priority order, ties broken by row key.
// Strings use locale-aware collation; totals compare in the reporting currency.
// No specs sorts by name.
func SortRows(rows []core.GroupedReportRow, specs []core.SortSpec, rates map[string]decimal.Decimal) error {
	if err := ValidateSort(specs); err != nil {
		return err
	}
	if len(specs) == 0 {
		specs = []core.SortSpec{{Key: core.SortName}}
	}

	// Collators are not safe for concurrent use; one per call.
	col := collate.New(sortLanguage, collate.IgnoreCase)
	cmps := make([]rowCompare, 0, len(specs))
	for _, s := range specs {
		cmp := comparator(s.Key, rows, col, rates)
		if s.Desc {
			asc := cmp
			cmp = func(a, b core.GroupedReportRow) int { return -asc(a, b) }
		}
		cmps = append(cmps, cmp)
	}

	slices.SortStableFunc(rows, func(a, b core.GroupedReportRow) int {
		for _, cmp := range cmps {
			if c := cmp(a, b); c != 0 {
				return c
			}
		}
		return strings.Compare(a.Key, b.Key)
	})
	return nil
}

func comparator(key string, rows []core.GroupedReportRow, col *collate.Collator, rates map[string]decimal.Decimal) rowCompare {
	byString := func(field func(core.GroupedReportRow) string) rowCompare {
		return func(a, b core.GroupedReportRow) int { return col.CompareString(field(a), field(b)) }
	}
	byAmount := func(year string) rowCompare {
		totals := make(map[string]decimal.Decimal, len(rows))
		for _, r := range rows {
			totals[r.Key] = r.YearlyTotals.Converted(year, rates)
		}
		return func(a, b core.GroupedReportRow) int { return totals[a.Key].Cmp(totals[b.Key]) }
	}

	switch key {
	case core.SortAddress:
		return byString(func(r core.GroupedReportRow) string { return r.Contact.Address })
	case core.SortPhone:
		return byString(func(r core.GroupedReportRow) string { return r.Contact.Phone })
	case core.SortEmail:
		return byString(func(r core.GroupedReportRow) string { return r.Contact.Email })
	case core.SortTotal:
		return byAmount("")
	case core.SortName:
		return byString(func(r core.GroupedReportRow) string { return r.Name })
	default:
		return byAmount(strings.TrimPrefix(key, core.SortYearPrefix))
	}
}
