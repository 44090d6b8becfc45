package report_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorbase/internal/core"
	"donorbase/internal/hebcal"
	"donorbase/internal/log"
	"donorbase/internal/report"
	"donorbase/internal/store"
	"donorbase/internal/store/memory"
	"donorbase/internal/store/mocks"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func quietLogger() *log.Logger {
	return log.New(log.Config{Component: log.ComponentReport, Handler: slog.NewTextHandler(io.Discard, nil)})
}

// 2024-09-01 falls in Hebrew year 5784.
var asOf = date(2024, 9, 1)

func dataset() store.Dataset {
	return store.Dataset{
		Donors: []core.Donor{
			{ID: "d1", FirstName: "Avi", LastName: "Cohen"},
			{ID: "d2", FirstName: "Dana", LastName: "Levi"},
			{ID: "d3", FirstName: "Moshe", LastName: "Katz"},
		},
		Places: []core.Place{
			{ID: "p1", CountryID: "IL", CityID: "jlm", City: "Jerusalem"},
			{ID: "p2", CountryID: "US", CityID: "nyc", City: "New York"},
		},
		DonorPlaces: []core.DonorPlace{
			{ID: "l1", DonorID: "d1", PlaceID: "p1", Active: true, Primary: true},
			{ID: "l2", DonorID: "d2", PlaceID: "p2", Active: true},
		},
		Campaigns: []core.Campaign{{ID: "c1", Name: "Winter"}},
		Donations: []core.Donation{
			{ID: "A", DonorID: "d1", Amount: amount("500"), Currency: "ILS", Date: date(2024, 6, 1), Type: core.OneTime},
			{ID: "B", DonorID: "d1", Amount: amount("1000"), Currency: "ILS", Date: date(2024, 7, 1), Type: core.Commitment},
			{ID: "C", DonorID: "d2", CampaignID: "c1", Amount: amount("100"), Currency: "USD", Date: date(2023, 5, 1), Type: core.OneTime},
			{ID: "D", DonorID: "d3", Amount: amount("50"), Currency: "ILS", Date: date(2019, 1, 1), Type: core.OneTime},
		},
		Payments: []core.Payment{
			{ID: "p1", DonationID: "B", Amount: amount("300"), Currency: "ILS", Date: date(2024, 8, 1), Type: "commitment", Active: true},
		},
	}
}

func newService(t *testing.T, st store.Reader) *report.Service {
	t.Helper()
	return report.NewService(st, hebcal.New(), report.Options{
		ConversionRates: map[string]decimal.Decimal{"USD": amount("3.5")},
		DefaultPageSize: 25,
		MaxPageSize:     100,
		Logger:          quietLogger(),
		Now:             func() time.Time { return asOf },
	})
}

func TestGroupedDonations_LastFourYears(t *testing.T) {
	svc := newService(t, memory.New(dataset()))

	got, err := svc.GroupedDonations(context.Background(), core.ReportFilters{ShowDetails: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		hebcal.FormatYear(5781), hebcal.FormatYear(5782), hebcal.FormatYear(5783), hebcal.FormatYear(5784),
	}, got.YearLabels)
	assert.Equal(t, 2, got.TotalRecords)
	assert.Equal(t, 1, got.TotalPages)
	assert.Equal(t, 1, got.CurrentPage)
	assert.Equal(t, "ILS", got.Currency)
	require.Len(t, got.Rows, 2)

	// sorted by name: Avi Cohen, Dana Levi
	avi, dana := got.Rows[0], got.Rows[1]
	assert.Equal(t, "Avi Cohen", avi.Name)
	assert.Equal(t, "Jerusalem", avi.Contact.Address)
	assert.Equal(t, "800", avi.YearlyTotals[hebcal.FormatYear(5784)]["ILS"].String())
	require.Len(t, avi.Donations, 2)
	assert.Equal(t, "1000", avi.Donations[1].Expected.String())
	assert.Equal(t, "300", avi.Donations[1].Actual.String())

	assert.Equal(t, "Dana Levi", dana.Name)
	assert.Equal(t, "100", dana.YearlyTotals[hebcal.FormatYear(5783)]["USD"].String())

	require.Len(t, got.CurrencySummary, 2)
	assert.Equal(t, "ILS", got.CurrencySummary[0].Currency)
	assert.Equal(t, "800", got.CurrencySummary[0].Total.String())
	assert.Equal(t, "350", got.CurrencySummary[1].TotalConverted.String())
	assert.Equal(t, "1150", got.GrandTotal.String())
}

func TestGroupedDonations_ExplicitYear(t *testing.T) {
	svc := newService(t, memory.New(dataset()))

	for _, label := range []string{hebcal.FormatYear(5783), "5783"} {
		got, err := svc.GroupedDonations(context.Background(), core.ReportFilters{Years: label})
		require.NoError(t, err, label)
		assert.Equal(t, []string{hebcal.FormatYear(5783)}, got.YearLabels)
		require.Len(t, got.Rows, 1, label)
		assert.Equal(t, "d2", got.Rows[0].Key)
	}

	_, err := svc.GroupedDonations(context.Background(), core.ReportFilters{Years: "not a year"})
	assert.ErrorIs(t, err, core.ErrInvalidYearLabel)
}

func TestGroupedDonations_GlobalFilters(t *testing.T) {
	ctx := context.Background()
	st := memory.New(dataset())
	svc := newService(t, st)

	require.NoError(t, st.SaveGlobalFilters(ctx, "u1", core.GlobalFilters{CountryIDs: []string{"IL"}}))
	got, err := svc.GroupedDonations(ctx, core.ReportFilters{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "d1", got.Rows[0].Key)

	require.NoError(t, st.SaveGlobalFilters(ctx, "u1", core.GlobalFilters{CityIDs: []string{"nowhere"}}))
	got, err = svc.GroupedDonations(ctx, core.ReportFilters{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, got.Rows)
	assert.Equal(t, 0, got.TotalRecords)
	assert.Len(t, got.YearLabels, 4)

	require.NoError(t, st.SaveGlobalFilters(ctx, "u1", core.GlobalFilters{DateFrom: "2024-06-15"}))
	got, err = svc.GroupedDonations(ctx, core.ReportFilters{UserID: "u1", ShowDetails: true})
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "300", got.Rows[0].YearlyTotals[hebcal.FormatYear(5784)]["ILS"].String())

	require.NoError(t, st.SaveGlobalFilters(ctx, "u1", core.GlobalFilters{DateFrom: "junk"}))
	_, err = svc.GroupedDonations(ctx, core.ReportFilters{UserID: "u1"})
	assert.ErrorIs(t, err, core.ErrInvalidDateFilter)
}

func TestGroupedDonations_LocalFiltersAndPaging(t *testing.T) {
	svc := newService(t, memory.New(dataset()))
	ctx := context.Background()

	got, err := svc.GroupedDonations(ctx, core.ReportFilters{DonationTypes: []core.DonationType{core.Commitment}})
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "300", got.Rows[0].YearlyTotals[hebcal.FormatYear(5784)]["ILS"].String())

	got, err = svc.GroupedDonations(ctx, core.ReportFilters{GroupBy: core.GroupByCampaign})
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, []string{report.UnassignedName, "Winter"}, []string{got.Rows[0].Name, got.Rows[1].Name})

	got, err = svc.GroupedDonations(ctx, core.ReportFilters{
		Page:     2,
		PageSize: 1,
		Sort:     []core.SortSpec{{Key: core.SortTotal, Desc: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalRecords)
	assert.Equal(t, 2, got.TotalPages)
	assert.Equal(t, 2, got.CurrentPage)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "d2", got.Rows[0].Key, "800 ILS outranks 350 ILS-equivalent")
}

func TestGroupedDonations_InvalidInput(t *testing.T) {
	svc := newService(t, memory.New(dataset()))
	ctx := context.Background()

	tests := []struct {
		name string
		f    core.ReportFilters
		want error
	}{
		{"group by", core.ReportFilters{GroupBy: "city"}, core.ErrInvalidGroupBy},
		{"sort", core.ReportFilters{Sort: []core.SortSpec{{Key: "shoe size"}}}, core.ErrInvalidSort},
		{"page", core.ReportFilters{Page: -1}, core.ErrInvalidPage},
		{"date", core.ReportFilters{DateFrom: "2024-13-01"}, core.ErrInvalidDateFilter},
		{"reversed dates", core.ReportFilters{DateFrom: "2024-02-01", DateTo: "2024-01-01"}, core.ErrInvalidDateFilter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GroupedDonations(ctx, tt.f)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPayments(t *testing.T) {
	svc := newService(t, memory.New(dataset()))

	rows, err := svc.Payments(context.Background(), core.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "d1", r.DonorID)
	assert.Equal(t, "Avi Cohen", r.DonorName)
	assert.Equal(t, "1000", r.Promised.String())
	assert.Equal(t, "300", r.Actual.String())
	assert.Equal(t, "700", r.Remaining.String())
	assert.Equal(t, core.PartiallyPaid, r.Status)
	assert.Equal(t, 1, r.Donations)
}

func TestYearlySummary(t *testing.T) {
	svc := newService(t, memory.New(dataset()))

	rows, err := svc.YearlySummary(context.Background(), core.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []int{5784, 5783, 5779}, []int{rows[0].YearNumber, rows[1].YearNumber, rows[2].YearNumber})
	assert.Equal(t, hebcal.FormatYear(5784), rows[0].Year)
	assert.Equal(t, "800", rows[0].Total.String())
	assert.Equal(t, 2, rows[0].Donations)
	assert.Equal(t, 1, rows[0].Donors)
	assert.Equal(t, "100", rows[1].ByCurrency["USD"].String())
	assert.Equal(t, "350", rows[1].Total.String())
}

func TestAvailableYears(t *testing.T) {
	svc := newService(t, memory.New(dataset()))

	got, err := svc.AvailableYears(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{hebcal.FormatYear(5784), hebcal.FormatYear(5783), hebcal.FormatYear(5779)}, got)
}

type mockReader struct {
	*mocks.MockDonationReader
	*mocks.MockPaymentReader
	*mocks.MockFilterSource
	*mocks.MockDirectory
	*mocks.MockGlobalFilterStore
}

func newMockReader(ctrl *gomock.Controller) mockReader {
	return mockReader{
		MockDonationReader:    mocks.NewMockDonationReader(ctrl),
		MockPaymentReader:     mocks.NewMockPaymentReader(ctrl),
		MockFilterSource:      mocks.NewMockFilterSource(ctrl),
		MockDirectory:         mocks.NewMockDirectory(ctrl),
		MockGlobalFilterStore: mocks.NewMockGlobalFilterStore(ctrl),
	}
}

func TestGroupedDonations_CollaboratorFailureCarriesStage(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := newMockReader(ctrl)
	boom := errors.New("ledger unavailable")

	st.MockGlobalFilterStore.EXPECT().GlobalFilters(gomock.Any(), "u1").Return(core.GlobalFilters{}, nil)
	st.MockDonationReader.EXPECT().QueryDonations(gomock.Any(), gomock.Any(), true).Return(dataset().Donations[:2], nil)
	st.MockPaymentReader.EXPECT().QueryPayments(gomock.Any(), []string{"B"}, true).Return(nil, boom)

	_, err := newService(t, st).GroupedDonations(context.Background(), core.ReportFilters{UserID: "u1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var stageErr *report.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, log.StageLoadPayments, stageErr.Stage)
}

func TestGroupedDonations_ZeroMatchSkipsLoading(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := newMockReader(ctrl)

	st.MockGlobalFilterStore.EXPECT().GlobalFilters(gomock.Any(), "u1").
		Return(core.GlobalFilters{SegmentIDs: []string{"s1"}}, nil)
	st.MockFilterSource.EXPECT().DonorIDsBySegments(gomock.Any(), []string{"s1"}).Return(nil, nil)
	// no donation, payment or directory calls are expected

	got, err := newService(t, st).GroupedDonations(context.Background(), core.ReportFilters{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, got.Rows)
	assert.Len(t, got.YearLabels, 4)
}

func TestGroupedDonations_DirectoryIsBulkLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := newMockReader(ctrl)
	ds := dataset()

	st.MockDonationReader.EXPECT().QueryDonations(gomock.Any(), gomock.Any(), true).Return(ds.Donations[:3], nil)
	st.MockPaymentReader.EXPECT().QueryPayments(gomock.Any(), []string{"B"}, true).Return(ds.Payments, nil)
	st.MockDirectory.EXPECT().Donors(gomock.Any(), []string{"d1", "d2"}).Times(1).
		Return(map[string]core.Donor{"d1": ds.Donors[0], "d2": ds.Donors[1]}, nil)
	st.MockDirectory.EXPECT().Contacts(gomock.Any(), []string{"d1", "d2"}).Times(1).
		Return(map[string]core.Contact{}, nil)

	got, err := newService(t, st).GroupedDonations(context.Background(), core.ReportFilters{})
	require.NoError(t, err)
	assert.Len(t, got.Rows, 2)
}
