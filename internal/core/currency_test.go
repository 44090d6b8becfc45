package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ILS", "ILS"},
		{"ils", "ILS"},
		{" שקל ", "ILS"},
		{"ש\"ח", "ILS"},
		{"₪", "ILS"},
		{"", "ILS"},
		{"USD", "USD"},
		{"דולר", "USD"},
		{"$", "USD"},
		{"Euro", "EUR"},
		{"יורו", "EUR"},
		{"ליש\"ט", "GBP"},
		{"jpy", "JPY"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeCurrency(tt.in); got != tt.want {
				t.Errorf("NormalizeCurrency(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCurrencyTableHasNoConflicts(t *testing.T) {
	seen := map[string]string{}
	for _, c := range currencyTable {
		for _, s := range append([]string{c.Code}, c.Synonyms...) {
			k := foldCurrency(s)
			if prev, ok := seen[k]; ok && prev != c.Code {
				t.Fatalf("label %q maps to both %s and %s", s, prev, c.Code)
			}
			seen[k] = c.Code
		}
	}
}

func TestCurrencySymbol(t *testing.T) {
	if got := CurrencySymbol("ILS"); got != "₪" {
		t.Fatalf("CurrencySymbol(ILS) = %q", got)
	}
	if got := CurrencySymbol("XYZ"); got != "XYZ" {
		t.Fatalf("CurrencySymbol(XYZ) = %q", got)
	}
}

func TestNormalizeRates(t *testing.T) {
	rates := NormalizeRates(map[string]decimal.Decimal{
		"דולר": decimal.RequireFromString("3.5"),
		"eur":  decimal.RequireFromString("4"),
	}, "ILS")

	if r := rates["USD"]; !r.Equal(decimal.RequireFromString("3.5")) {
		t.Errorf("USD rate = %s", r)
	}
	if r := rates["EUR"]; !r.Equal(decimal.NewFromInt(4)) {
		t.Errorf("EUR rate = %s", r)
	}
	if r := rates["ILS"]; !r.Equal(decimal.NewFromInt(1)) {
		t.Errorf("ILS rate = %s", r)
	}
	if r := RateOf(rates, "GBP"); !r.Equal(decimal.NewFromInt(1)) {
		t.Errorf("unknown currency should convert 1:1, got %s", r)
	}
}
