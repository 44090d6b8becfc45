package report

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"

	"donorbase/internal/calendar"
	"donorbase/internal/core"
	"donorbase/internal/filters"
	"donorbase/internal/log"
	"donorbase/internal/store"
)

// lastYears is the size of the LastFourYears window.
const lastYears = 4

var allTime = core.DateRange{
	Start: time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC),
}

// StageError records the pipeline stage a report failed in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Stage + ": " + e.Err.Error() }
func (e *StageError) Unwrap() error { return e.Err }

type Options struct {
	ReportingCurrency string
	ConversionRates   map[string]decimal.Decimal
	DefaultPageSize   int
	MaxPageSize       int
	Logger            *log.Logger
	Now               func() time.Time
}

// Service exposes the report operations. It is safe for concurrent use: all
// per-run state, including the calendar memo, lives in a run value.
type Service struct {
	store    store.Reader
	conv     calendar.Converter
	resolver *filters.Resolver
	opts     Options
	logger   *log.StructuredLogger
}

func NewService(st store.Reader, conv calendar.Converter, opts Options) *Service {
	if opts.ReportingCurrency == "" {
		opts.ReportingCurrency = core.DefaultReportingCurrency
	}
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 50
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentReport)
	}
	return &Service{
		store:    st,
		conv:     conv,
		resolver: filters.NewResolver(st),
		opts:     opts,
		logger:   log.NewStructuredLogger(opts.Logger),
	}
}

// run is the state of one report invocation.
type run struct {
	filters   core.ReportFilters
	rates     map[string]decimal.Decimal
	bucketer  *calendar.Bucketer
	fields    log.LogFields
	eligible  filters.Resolution
	labels    []string
	donations []core.Donation
	payments  []core.Payment
	totals    map[string]decimal.Decimal
}

func (s *Service) fail(ctx context.Context, r *run, stage string, err error) error {
	s.logger.LogReportFailure(ctx, stage, err, r.fields)
	return &StageError{Stage: stage, Err: err}
}

// prepare validates f and applies defaults.
func (s *Service) prepare(f core.ReportFilters) (*run, error) {
	if f.GroupBy == "" {
		f.GroupBy = core.GroupByDonor
	}
	if !f.GroupBy.IsValid() {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidGroupBy, f.GroupBy)
	}
	if err := ValidateSort(f.Sort); err != nil {
		return nil, err
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.PageSize == 0 {
		f.PageSize = s.opts.DefaultPageSize
	}
	if f.Page < 0 || f.PageSize < 0 {
		return nil, fmt.Errorf("%w: page %d size %d", core.ErrInvalidPage, f.Page, f.PageSize)
	}
	f.PageSize = min(f.PageSize, s.opts.MaxPageSize)
	if _, _, err := f.Dates(); err != nil {
		return nil, err
	}
	if f.AsOf.IsZero() {
		f.AsOf = s.opts.Now()
	}
	if f.ReportingCurrency == "" {
		f.ReportingCurrency = s.opts.ReportingCurrency
	}

	rates := make(map[string]decimal.Decimal, len(s.opts.ConversionRates)+len(f.ConversionRates))
	for cur, r := range s.opts.ConversionRates {
		rates[cur] = r
	}
	for cur, r := range f.ConversionRates {
		rates[cur] = r
	}
	f.ConversionRates = core.NormalizeRates(rates, f.Currency())

	return &run{
		filters:  f,
		rates:    f.ConversionRates,
		bucketer: calendar.NewBucketer(s.conv),
		fields:   log.NewFields().WithReport(f.UserID, string(f.GroupBy), f.Years),
	}, nil
}

// load runs the shared pipeline: global filters, window, donations, payments.
// With allTimeDefault an empty year selection covers every donation instead
// of the last four years.
func (s *Service) load(ctx context.Context, r *run, allTimeDefault bool) error {
	f := r.filters

	var global core.GlobalFilters
	if f.UserID != "" {
		var err error
		if global, err = s.store.GlobalFilters(ctx, f.UserID); err != nil {
			return s.fail(ctx, r, log.StageResolveFilters, err)
		}
	}
	globalFrom, globalTo, err := global.Dates()
	if err != nil {
		return err
	}
	eligible, err := s.resolver.Resolve(ctx, global)
	if err != nil {
		return s.fail(ctx, r, log.StageResolveFilters, err)
	}
	if len(f.DonorIDs) > 0 {
		eligible = eligible.Intersect(filters.Matches(f.DonorIDs))
	}
	r.eligible = eligible

	window, years, err := s.window(ctx, r.bucketer, f.Years, f.AsOf, allTimeDefault)
	if err != nil {
		if errors.Is(err, core.ErrInvalidYearLabel) {
			return err
		}
		return s.fail(ctx, r, log.StageLoadWindow, err)
	}
	for _, y := range years {
		r.labels = append(r.labels, r.bucketer.Label(y))
	}
	localFrom, localTo, _ := f.Dates()
	window, ok := window.Intersect(globalFrom, globalTo)
	if ok {
		window, ok = window.Intersect(localFrom, localTo)
	}
	if !ok || eligible.Empty() {
		return nil
	}

	donations, err := s.store.QueryDonations(ctx, window, true)
	if err != nil {
		return s.fail(ctx, r, log.StageLoadDonations, err)
	}
	r.donations = narrow(donations, f, eligible)

	if years == nil {
		if r.labels, err = distinctLabels(ctx, r.bucketer, r.donations); err != nil {
			return s.fail(ctx, r, log.StageLoadWindow, err)
		}
	}

	var ids []string
	for _, d := range r.donations {
		if d.IsPaymentBased() {
			ids = append(ids, d.ID)
		}
	}
	if len(ids) > 0 {
		if r.payments, err = s.store.QueryPayments(ctx, ids, true); err != nil {
			return s.fail(ctx, r, log.StageLoadPayments, err)
		}
	}
	r.totals = core.PaymentTotals(r.donations, r.payments)
	return nil
}

// window resolves a year selection to a date range and the year numbers it
// covers in ascending order. Nil years mean all time.
func (s *Service) window(ctx context.Context, b *calendar.Bucketer, sel string, asOf time.Time, allTimeDefault bool) (core.DateRange, []int, error) {
	sel = strings.TrimSpace(sel)
	switch {
	case sel == "" && allTimeDefault:
		return allTime, nil, nil
	case sel == "" || sel == core.LastFourYears:
		current, err := b.YearOf(ctx, asOf)
		if err != nil {
			return core.DateRange{}, nil, err
		}
		first := current - lastYears + 1
		start, err := b.RangeOf(ctx, first)
		if err != nil {
			return core.DateRange{}, nil, err
		}
		end, err := b.RangeOf(ctx, current)
		if err != nil {
			return core.DateRange{}, nil, err
		}
		years := make([]int, 0, lastYears)
		for y := first; y <= current; y++ {
			years = append(years, y)
		}
		return core.DateRange{Start: start.Start, End: end.End}, years, nil
	default:
		year, err := b.Parse(sel)
		if err != nil {
			return core.DateRange{}, nil, err
		}
		r, err := b.RangeOf(ctx, year)
		if err != nil {
			return core.DateRange{}, nil, err
		}
		return r, []int{year}, nil
	}
}

// narrow applies the eligible donor set and the request's direct filters.
func narrow(donations []core.Donation, f core.ReportFilters, eligible filters.Resolution) []core.Donation {
	donors := eligible.Set()
	campaigns := make(map[string]bool, len(f.CampaignIDs))
	for _, id := range f.CampaignIDs {
		campaigns[id] = true
	}
	out := make([]core.Donation, 0, len(donations))
	for _, d := range donations {
		if donors != nil {
			if _, ok := donors[d.DonorID]; !ok {
				continue
			}
		}
		if len(campaigns) > 0 && !campaigns[d.CampaignID] {
			continue
		}
		if len(f.DonationTypes) > 0 && !slices.Contains(f.DonationTypes, d.Kind()) {
			continue
		}
		if !core.InAmountRange(d.Amount, f.AmountMin, f.AmountMax) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func distinctLabels(ctx context.Context, b *calendar.Bucketer, donations []core.Donation) ([]string, error) {
	seen := make(map[int]bool)
	var years []int
	for _, d := range donations {
		y, err := b.YearOf(ctx, d.Date)
		if err != nil {
			return nil, err
		}
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	slices.Sort(years)
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = b.Label(y)
	}
	return labels, nil
}

// lookup bulk-loads the directory records a report needs, one query per kind.
func (s *Service) lookup(ctx context.Context, r *run) (Directory, error) {
	var donorIDs, campaignIDs, methodIDs, fundraiserIDs []string
	seen := make(map[string]bool)
	add := func(list *[]string, kind, id string) {
		if id == "" || seen[kind+id] {
			return
		}
		seen[kind+id] = true
		*list = append(*list, id)
	}
	for _, d := range r.donations {
		add(&donorIDs, "d", d.DonorID)
		for _, p := range d.PartnerIDs {
			add(&donorIDs, "d", p)
		}
		add(&campaignIDs, "c", d.CampaignID)
		add(&methodIDs, "m", d.PaymentMethodID)
		add(&fundraiserIDs, "f", d.FundraiserID)
	}

	by := r.filters.GroupBy
	details := r.filters.ShowDetails
	var dir Directory
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dir.Donors, err = s.store.Donors(gctx, donorIDs)
		return err
	})
	if by == core.GroupByDonor {
		g.Go(func() (err error) {
			dir.Contacts, err = s.store.Contacts(gctx, donorIDs)
			return err
		})
	}
	if by == core.GroupByCampaign || details {
		g.Go(func() (err error) {
			dir.Campaigns, err = s.store.Campaigns(gctx, campaignIDs)
			return err
		})
	}
	if by == core.GroupByPaymentMethod {
		g.Go(func() (err error) {
			dir.Methods, err = s.store.PaymentMethods(gctx, methodIDs)
			return err
		})
	}
	if by == core.GroupByFundraiser {
		g.Go(func() (err error) {
			dir.Fundraisers, err = s.store.Fundraisers(gctx, fundraiserIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Directory{}, s.fail(ctx, r, log.StageLookupDirectory, err)
	}
	return dir, nil
}

// GroupedDonations builds the grouped report for the requested window.
func (s *Service) GroupedDonations(ctx context.Context, f core.ReportFilters) (core.GroupedReport, error) {
	r, err := s.prepare(f)
	if err != nil {
		return core.GroupedReport{}, err
	}
	if err := s.load(ctx, r, false); err != nil {
		return core.GroupedReport{}, err
	}
	f = r.filters

	report := core.GroupedReport{
		YearLabels:      r.labels,
		Rows:            []core.GroupedReportRow{},
		CurrencySummary: []core.CurrencySummaryRow{},
		GrandTotal:      decimal.Zero,
		Currency:        f.Currency(),
		CurrentPage:     f.Page,
	}
	if len(r.donations) == 0 {
		return report, nil
	}

	dir, err := s.lookup(ctx, r)
	if err != nil {
		return core.GroupedReport{}, err
	}

	rows, err := Group(ctx, r.bucketer, GroupInput{
		Donations:      r.donations,
		Payments:       r.payments,
		Totals:         r.totals,
		Filters:        f,
		Directory:      dir,
		YearLabels:     r.labels,
		PartnerAllowed: r.eligible.Allows,
	})
	if err != nil {
		return core.GroupedReport{}, s.fail(ctx, r, log.StageGroup, err)
	}

	summary, grand, err := Summarize(ctx, r.bucketer, r.donations, r.totals, r.rates, r.labels)
	if err != nil {
		return core.GroupedReport{}, s.fail(ctx, r, log.StageSummarize, err)
	}

	if err := SortRows(rows, f.Sort, r.rates); err != nil {
		return core.GroupedReport{}, s.fail(ctx, r, log.StagePaginate, err)
	}
	page, err := Paginate(rows, f.Page, f.PageSize)
	if err != nil {
		return core.GroupedReport{}, s.fail(ctx, r, log.StagePaginate, err)
	}

	report.Rows = page.Rows
	report.CurrencySummary = summary
	report.GrandTotal = grand
	report.TotalRecords = page.TotalRecords
	report.TotalPages = page.TotalPages

	s.logger.LogReportCompleted(ctx, r.fields.WithCounts(len(r.donations), len(r.payments), len(rows)))
	return report, nil
}

// Payments compares, per donor, what commitments and standing orders promised
// with what the ledger received, in the reporting currency. Without a year
// selection it covers all time.
func (s *Service) Payments(ctx context.Context, f core.ReportFilters) ([]core.PaymentReportRow, error) {
	r, err := s.prepare(f)
	if err != nil {
		return nil, err
	}
	if err := s.load(ctx, r, true); err != nil {
		return nil, err
	}
	f = r.filters

	byDonor := make(map[string]*core.PaymentReportRow)
	for _, d := range r.donations {
		if !d.IsPaymentBased() {
			continue
		}
		rate := core.RateOf(r.rates, d.Currency)
		row, ok := byDonor[d.DonorID]
		if !ok {
			row = &core.PaymentReportRow{DonorID: d.DonorID, Promised: decimal.Zero, Actual: decimal.Zero}
			byDonor[d.DonorID] = row
		}
		row.Promised = row.Promised.Add(core.Convert(core.ExpectedAmount(d, f.AsOf), rate))
		row.Actual = row.Actual.Add(core.Convert(r.totals[d.ID], rate))
		row.Donations++
	}
	if len(byDonor) == 0 {
		return []core.PaymentReportRow{}, nil
	}

	ids := make([]string, 0, len(byDonor))
	for id := range byDonor {
		ids = append(ids, id)
	}
	donors, err := s.store.Donors(ctx, ids)
	if err != nil {
		return nil, s.fail(ctx, r, log.StageLookupDirectory, err)
	}

	out := make([]core.PaymentReportRow, 0, len(byDonor))
	for id, row := range byDonor {
		row.DonorName = donors[id].FullName()
		if row.DonorName == "" {
			row.DonorName = id
		}
		row.Remaining = decimal.Max(row.Promised.Sub(row.Actual), decimal.Zero)
		row.Status = core.StatusOf(row.Promised, row.Actual)
		out = append(out, *row)
	}
	col := collate.New(sortLanguage, collate.IgnoreCase)
	slices.SortFunc(out, func(a, b core.PaymentReportRow) int {
		if c := col.CompareString(a.DonorName, b.DonorName); c != 0 {
			return c
		}
		return strings.Compare(a.DonorID, b.DonorID)
	})

	s.logger.LogReportCompleted(ctx, r.fields.WithCounts(len(r.donations), len(r.payments), len(out)))
	return out, nil
}

// YearlySummary totals effective amounts per custom year, newest first.
// Without a year selection it covers all time.
func (s *Service) YearlySummary(ctx context.Context, f core.ReportFilters) ([]core.YearlySummaryRow, error) {
	r, err := s.prepare(f)
	if err != nil {
		return nil, err
	}
	if err := s.load(ctx, r, true); err != nil {
		return nil, err
	}

	type bucket struct {
		row    *core.YearlySummaryRow
		donors map[string]bool
	}
	byYear := make(map[int]*bucket)
	for _, d := range r.donations {
		y, err := r.bucketer.YearOf(ctx, d.Date)
		if err != nil {
			return nil, s.fail(ctx, r, log.StageGroup, err)
		}
		b, ok := byYear[y]
		if !ok {
			b = &bucket{
				row: &core.YearlySummaryRow{
					Year:       r.bucketer.Label(y),
					YearNumber: y,
					ByCurrency: make(map[string]decimal.Decimal),
					Total:      decimal.Zero,
				},
				donors: make(map[string]bool),
			}
			byYear[y] = b
		}
		code := core.NormalizeCurrency(d.Currency)
		amt := core.EffectiveFrom(d, r.totals)
		b.row.ByCurrency[code] = b.row.ByCurrency[code].Add(amt)
		b.row.Total = b.row.Total.Add(core.Convert(amt, core.RateOf(r.rates, code)))
		b.row.Donations++
		b.donors[d.DonorID] = true
	}

	out := make([]core.YearlySummaryRow, 0, len(byYear))
	for _, b := range byYear {
		b.row.Donors = len(b.donors)
		out = append(out, *b.row)
	}
	slices.SortFunc(out, func(a, b core.YearlySummaryRow) int { return b.YearNumber - a.YearNumber })

	s.logger.LogReportCompleted(ctx, r.fields.WithCounts(len(r.donations), len(r.payments), len(out)))
	return out, nil
}

// AvailableYears lists the distinct custom-year labels present in the
// donation set, newest first.
func (s *Service) AvailableYears(ctx context.Context) ([]string, error) {
	fields := log.NewFields()
	dates, err := s.store.DonationDates(ctx)
	if err != nil {
		s.logger.LogReportFailure(ctx, log.StageLoadDonations, err, fields)
		return nil, &StageError{Stage: log.StageLoadDonations, Err: err}
	}

	b := calendar.NewBucketer(s.conv)
	seen := make(map[int]bool)
	var years []int
	for _, t := range dates {
		y, err := b.YearOf(ctx, t)
		if err != nil {
			s.logger.LogReportFailure(ctx, log.StageLoadWindow, err, fields)
			return nil, &StageError{Stage: log.StageLoadWindow, Err: err}
		}
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	slices.Sort(years)
	slices.Reverse(years)

	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = b.Label(y)
	}
	return labels, nil
}
