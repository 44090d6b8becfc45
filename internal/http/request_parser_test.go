package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"donorbase/internal/core"
)

func TestParseReportQuery(t *testing.T) {
	q := url.Values{
		"userId":             {" u1 "},
		"groupBy":            {"campaign"},
		"years":              {"תשפ״ה"},
		"donorIds":           {"d1,d2", "d3"},
		"donationTypes":      {"full,commitment"},
		"dateFrom":           {"2024-01-01"},
		"amountMin":          {"10,5"},
		"rates":              {"usd:3.6"},
		"sort":               {"total:desc,name"},
		"page":               {"2"},
		"pageSize":           {"20"},
		"showDetails":        {"true"},
		"showActualPayments": {"1"},
		"asOf":               {"2024-09-01"},
	}

	f, err := ParseReportQuery(q)
	if err != nil {
		t.Fatalf("ParseReportQuery() error = %v", err)
	}

	if f.UserID != "u1" || f.GroupBy != core.GroupByCampaign || f.Years != "תשפ״ה" {
		t.Errorf("scalars = %q %q %q", f.UserID, f.GroupBy, f.Years)
	}
	if strings.Join(f.DonorIDs, ",") != "d1,d2,d3" {
		t.Errorf("DonorIDs = %v", f.DonorIDs)
	}
	if len(f.DonationTypes) != 2 || f.DonationTypes[1] != core.Commitment {
		t.Errorf("DonationTypes = %v", f.DonationTypes)
	}
	if f.AmountMin == nil || f.AmountMin.String() != "10.5" {
		t.Errorf("AmountMin = %v", f.AmountMin)
	}
	if f.AmountMax != nil {
		t.Errorf("AmountMax = %v, want nil", f.AmountMax)
	}
	if r, ok := f.ConversionRates["USD"]; !ok || r.String() != "3.6" {
		t.Errorf("ConversionRates = %v", f.ConversionRates)
	}
	if len(f.Sort) != 2 || f.Sort[0] != (core.SortSpec{Key: "total", Desc: true}) || f.Sort[1] != (core.SortSpec{Key: "name"}) {
		t.Errorf("Sort = %+v", f.Sort)
	}
	if f.Page != 2 || f.PageSize != 20 || !f.ShowDetails || !f.ShowActual {
		t.Errorf("paging/flags = %d %d %v %v", f.Page, f.PageSize, f.ShowDetails, f.ShowActual)
	}
	if !f.AsOf.Equal(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("AsOf = %v", f.AsOf)
	}
}

func TestParseReportQuery_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  url.Values
		target error
	}{
		{"page not a number", url.Values{"page": {"x"}}, errBadRequest},
		{"bad bool", url.Values{"showDetails": {"maybe"}}, errBadRequest},
		{"negative amount", url.Values{"amountMax": {"-5"}}, core.ErrInvalidAmount},
		{"junk amount", url.Values{"amountMin": {"lots"}}, core.ErrInvalidAmount},
		{"bad rates", url.Values{"rates": {"USD"}}, errBadRequest},
		{"bad asOf", url.Values{"asOf": {"yesterday"}}, core.ErrInvalidDateFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReportQuery(tt.query)
			if !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in   string
		want []core.SortSpec
	}{
		{"", nil},
		{"name", []core.SortSpec{{Key: "name"}}},
		{"phone:asc, email:desc", []core.SortSpec{{Key: "phone"}, {Key: "email", Desc: true}}},
		{"year:תשפ״ה:desc", []core.SortSpec{{Key: "year:תשפ״ה", Desc: true}}},
		{"year:5785", []core.SortSpec{{Key: "year:5785"}}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseSort(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSort(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSort(%q)[%d] = %+v, want %+v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"groupBy":"donor","years":"last4"}`, false},
		{"unknown field", `{"groupBy":"donor","color":"red"}`, true},
		{"empty", ``, true},
		{"malformed", `{"groupBy":`, true},
		{"trailing data", `{"groupBy":"donor"} {}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var f core.ReportFilters
			err := DecodeJSON(httptest.NewRecorder(), req, &f)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errBadRequest) {
				t.Errorf("error %v does not wrap errBadRequest", err)
			}
		})
	}
}

func TestSanitizeInputAndSplitList(t *testing.T) {
	if got := sanitizeInput("  a\x00b\tc  "); got != "ab\tc" {
		t.Errorf("sanitizeInput() = %q", got)
	}
	got := splitList([]string{"a, ,b", "", "c"})
	if strings.Join(got, "|") != "a|b|c" {
		t.Errorf("splitList() = %v", got)
	}
}
