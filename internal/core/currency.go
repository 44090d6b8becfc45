package core

import (
	"sort"
	"strings"
)

// CurrencyInfo describes a canonical currency and the free-text labels that
// legacy records use for it.
type CurrencyInfo struct {
	Code     string
	Symbol   string
	Synonyms []string
}

// currencyTable lists every known currency. New locales are added as synonyms here.
var currencyTable = []CurrencyInfo{
	{Code: "ILS", Symbol: "₪", Synonyms: []string{"₪", "NIS", "שקל", "שקלים", "ש\"ח", "ש״ח", "שח", "shekel", "shekels"}},
	{Code: "USD", Symbol: "$", Synonyms: []string{"$", "US$", "דולר", "דולרים", "dollar", "dollars"}},
	{Code: "EUR", Symbol: "€", Synonyms: []string{"€", "יורו", "euro", "euros"}},
	{Code: "GBP", Symbol: "£", Synonyms: []string{"£", "ליש\"ט", "ליש״ט", "פאונד", "pound", "pounds"}},
	{Code: "CAD", Symbol: "C$", Synonyms: []string{"C$", "CA$", "דולר קנדי"}},
	{Code: "AUD", Symbol: "A$", Synonyms: []string{"A$", "AU$", "דולר אוסטרלי"}},
	{Code: "CHF", Symbol: "Fr", Synonyms: []string{"פרנק", "franc"}},
}

// currencyIndex maps a folded label to its canonical code.
var currencyIndex = buildCurrencyIndex(currencyTable)

func buildCurrencyIndex(table []CurrencyInfo) map[string]string {
	idx := make(map[string]string, len(table)*4)
	for _, c := range table {
		idx[foldCurrency(c.Code)] = c.Code
		for _, s := range c.Synonyms {
			idx[foldCurrency(s)] = c.Code
		}
	}
	return idx
}

func foldCurrency(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeCurrency maps a currency label to its canonical code. Empty labels
// are the reporting default; unknown labels are upper-cased as-is.
func NormalizeCurrency(label string) string {
	key := foldCurrency(label)
	if key == "" {
		return DefaultReportingCurrency
	}
	if code, ok := currencyIndex[key]; ok {
		return code
	}
	return strings.ToUpper(strings.TrimSpace(label))
}

// CurrencySymbol returns the display symbol for a canonical code, or the code itself.
func CurrencySymbol(code string) string {
	for _, c := range currencyTable {
		if c.Code == code {
			return c.Symbol
		}
	}
	return code
}

// KnownCurrencies returns the canonical codes sorted alphabetically.
func KnownCurrencies() []string {
	out := make([]string, 0, len(currencyTable))
	for _, c := range currencyTable {
		out = append(out, c.Code)
	}
	sort.Strings(out)
	return out
}
