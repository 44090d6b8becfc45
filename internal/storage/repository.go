package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"donorbase/internal/core"
	"donorbase/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements store.Store. Id-set lookups bind at most
// maxInParams ids per IN (...) list, so a lookup costs ceil(n/maxInParams)
// queries however the ids are spread.
type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping is used by readiness checks.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const donationSelect = `SELECT d.id, d.donor_id, d.campaign_id, d.payment_method_id, d.fundraiser_id,
	d.amount, d.currency, d.donation_date, d.donation_type, d.frequency,
	d.number_of_payments, d.unlimited_payments,
	COALESCE(pm.name, ''), COALESCE(pm.is_standing_order, 0), pm.id IS NOT NULL
FROM donations d
LEFT JOIN payment_methods pm ON pm.id = d.payment_method_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonation(sc rowScanner, withRelations bool) (core.Donation, error) {
	var (
		d                              core.Donation
		amount, date, typ, freq        string
		methodName                     string
		standing, unlimited, hasMethod bool
	)
	err := sc.Scan(&d.ID, &d.DonorID, &d.CampaignID, &d.PaymentMethodID, &d.FundraiserID,
		&amount, &d.Currency, &date, &typ, &freq,
		&d.NumberOfPayments, &unlimited,
		&methodName, &standing, &hasMethod)
	if err != nil {
		return d, err
	}
	if d.Amount, err = decimal.NewFromString(amount); err != nil {
		return d, fmt.Errorf("donation %s amount %q: %w", d.ID, amount, err)
	}
	if d.Date, err = time.Parse(time.DateOnly, date); err != nil {
		return d, fmt.Errorf("donation %s date %q: %w", d.ID, date, err)
	}
	d.Type = core.DonationType(typ)
	d.Frequency = core.Frequency(freq)
	d.UnlimitedPayments = unlimited
	if withRelations && hasMethod {
		d.PaymentMethod = &core.PaymentMethod{ID: d.PaymentMethodID, Name: methodName, IsStandingOrder: standing}
	}
	return d, nil
}

func (r *SQLiteRepository) QueryDonations(ctx context.Context, dr core.DateRange, withRelations bool) ([]core.Donation, error) {
	rows, err := r.db.QueryContext(ctx,
		donationSelect+` WHERE d.donation_date BETWEEN ? AND ? ORDER BY d.donation_date, d.id`,
		dr.Start.Format(time.DateOnly), dr.End.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("query donations: %w", err)
	}
	defer rows.Close()

	var out []core.Donation
	for rows.Next() {
		d, err := scanDonation(rows, withRelations)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	if err := r.attachPartners(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteRepository) attachPartners(ctx context.Context, donations []core.Donation) error {
	if len(donations) == 0 {
		return nil
	}
	ids := make([]string, len(donations))
	for i, d := range donations {
		ids[i] = d.ID
	}

	partners := make(map[string][]string)
	err := r.queryIn(ctx, "donation partners", ids,
		func(in string) string {
			return `SELECT donation_id, donor_id FROM donation_partners WHERE donation_id IN (` + in + `) ORDER BY donor_id`
		},
		func(rows *sql.Rows) error {
			var donationID, donorID string
			if err := rows.Scan(&donationID, &donorID); err != nil {
				return err
			}
			partners[donationID] = append(partners[donationID], donorID)
			return nil
		})
	if err != nil {
		return err
	}
	for i := range donations {
		donations[i].PartnerIDs = partners[donations[i].ID]
	}
	return nil
}

func (r *SQLiteRepository) DonationDates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT donation_date FROM donations`)
	if err != nil {
		return nil, fmt.Errorf("query donation dates: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan donation date: %w", err)
		}
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, fmt.Errorf("parse donation date %q: %w", s, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) QueryPayments(ctx context.Context, donationIDs []string, activeOnly bool) ([]core.Payment, error) {
	if len(donationIDs) == 0 {
		return nil, nil
	}
	var out []core.Payment
	err := r.queryIn(ctx, "payments", donationIDs,
		func(in string) string {
			q := `SELECT id, donation_id, amount, currency, payment_date, type, is_active
FROM payments WHERE donation_id IN (` + in + `)`
			if activeOnly {
				q += ` AND is_active = 1`
			}
			return q
		},
		func(rows *sql.Rows) error {
			var (
				p            core.Payment
				amount, date string
				err          error
			)
			if err := rows.Scan(&p.ID, &p.DonationID, &amount, &p.Currency, &date, &p.Type, &p.Active); err != nil {
				return err
			}
			if p.Amount, err = decimal.NewFromString(amount); err != nil {
				return fmt.Errorf("payment %s amount %q: %w", p.ID, amount, err)
			}
			if p.Date, err = time.Parse(time.DateOnly, date); err != nil {
				return fmt.Errorf("payment %s date %q: %w", p.ID, date, err)
			}
			out = append(out, p)
			return nil
		})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b core.Payment) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

// DonorIDsByPlace ORs the place columns, so each column and chunk can be
// queried on its own and the results unioned.
func (r *SQLiteRepository) DonorIDsByPlace(ctx context.Context, countryIDs, cityIDs, neighborhoodIDs []string) ([]string, error) {
	var ids idSet
	for _, c := range []struct {
		column string
		ids    []string
	}{
		{"p.country_id", countryIDs},
		{"p.city_id", cityIDs},
		{"p.neighborhood_id", neighborhoodIDs},
	} {
		if len(c.ids) == 0 {
			continue
		}
		err := r.queryIn(ctx, "donors by place", c.ids, func(in string) string {
			return `SELECT DISTINCT dp.donor_id FROM donor_places dp
JOIN places p ON p.id = dp.place_id
WHERE dp.is_active = 1 AND ` + c.column + ` IN (` + in + `)`
		}, ids.scan)
		if err != nil {
			return nil, err
		}
	}
	return ids.list, nil
}

func (r *SQLiteRepository) DonorIDsBySegments(ctx context.Context, segmentIDs []string) ([]string, error) {
	var ids idSet
	err := r.queryIn(ctx, "donors by segment", segmentIDs, func(in string) string {
		return `SELECT DISTINCT donor_id FROM target_audience_donors WHERE audience_id IN (` + in + `)`
	}, ids.scan)
	return ids.list, err
}

// DonorIDsByCampaigns unions givers and invitees of the campaigns.
func (r *SQLiteRepository) DonorIDsByCampaigns(ctx context.Context, campaignIDs []string) ([]string, error) {
	var ids idSet
	for _, q := range []string{
		`SELECT DISTINCT donor_id FROM donations WHERE campaign_id IN (`,
		`SELECT DISTINCT donor_id FROM campaign_invitees WHERE campaign_id IN (`,
	} {
		err := r.queryIn(ctx, "donors by campaign", campaignIDs, func(in string) string { return q + in + `)` }, ids.scan)
		if err != nil {
			return nil, err
		}
	}
	return ids.list, nil
}

// DonorIDsByAmount compares in decimal after loading; amounts are stored as text.
func (r *SQLiteRepository) DonorIDsByAmount(ctx context.Context, min, max *decimal.Decimal) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT donor_id, amount FROM donations`)
	if err != nil {
		return nil, fmt.Errorf("query donors by amount: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var donorID, amount string
		if err := rows.Scan(&donorID, &amount); err != nil {
			return nil, fmt.Errorf("scan donor amount: %w", err)
		}
		v, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("donor %s amount %q: %w", donorID, amount, err)
		}
		if core.InAmountRange(v, min, max) {
			out = append(out, donorID)
		}
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Donors(ctx context.Context, ids []string) (map[string]core.Donor, error) {
	out := make(map[string]core.Donor, len(ids))
	err := r.queryIn(ctx, "donors", ids,
		func(in string) string {
			return `SELECT id, first_name, last_name, donor_type, fundraiser_id, phone, email
FROM donors WHERE id IN (` + in + `)`
		},
		func(rows *sql.Rows) error {
			var d core.Donor
			if err := rows.Scan(&d.ID, &d.FirstName, &d.LastName, &d.DonorType, &d.FundraiserID, &d.Phone, &d.Email); err != nil {
				return err
			}
			out[d.ID] = d
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Contacts takes the address from the donor's primary active place, or any
// active place when none is primary.
func (r *SQLiteRepository) Contacts(ctx context.Context, donorIDs []string) (map[string]core.Contact, error) {
	out := make(map[string]core.Contact, len(donorIDs))
	err := r.queryIn(ctx, "contacts", donorIDs,
		func(in string) string {
			return `SELECT d.id, d.phone, d.email,
	COALESCE(p.street, ''), COALESCE(p.house_number, ''), COALESCE(p.city, '')
FROM donors d
LEFT JOIN donor_places dp ON dp.donor_id = d.id AND dp.is_active = 1
LEFT JOIN places p ON p.id = dp.place_id
WHERE d.id IN (` + in + `)
ORDER BY d.id, COALESCE(dp.is_primary, 0) DESC, dp.id`
		},
		func(rows *sql.Rows) error {
			var (
				id, phone, email string
				place            core.Place
			)
			if err := rows.Scan(&id, &phone, &email, &place.Street, &place.HouseNumber, &place.City); err != nil {
				return err
			}
			if _, seen := out[id]; !seen {
				out[id] = core.Contact{Address: place.Line(), Phone: phone, Email: email}
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteRepository) Campaigns(ctx context.Context, ids []string) (map[string]core.Campaign, error) {
	out := make(map[string]core.Campaign, len(ids))
	err := r.queryIn(ctx, "campaigns", ids,
		func(in string) string { return `SELECT id, name FROM campaigns WHERE id IN (` + in + `)` },
		func(rows *sql.Rows) error {
			var c core.Campaign
			if err := rows.Scan(&c.ID, &c.Name); err != nil {
				return err
			}
			out[c.ID] = c
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = r.queryIn(ctx, "campaign invitees", ids,
		func(in string) string {
			return `SELECT campaign_id, donor_id FROM campaign_invitees WHERE campaign_id IN (` + in + `) ORDER BY donor_id`
		},
		func(rows *sql.Rows) error {
			var campaignID, donorID string
			if err := rows.Scan(&campaignID, &donorID); err != nil {
				return err
			}
			if c, ok := out[campaignID]; ok {
				c.InvitedDonorIDs = append(c.InvitedDonorIDs, donorID)
				out[campaignID] = c
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteRepository) PaymentMethods(ctx context.Context, ids []string) (map[string]core.PaymentMethod, error) {
	out := make(map[string]core.PaymentMethod, len(ids))
	err := r.queryIn(ctx, "payment methods", ids,
		func(in string) string {
			return `SELECT id, name, is_standing_order FROM payment_methods WHERE id IN (` + in + `)`
		},
		func(rows *sql.Rows) error {
			var m core.PaymentMethod
			if err := rows.Scan(&m.ID, &m.Name, &m.IsStandingOrder); err != nil {
				return err
			}
			out[m.ID] = m
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteRepository) Fundraisers(ctx context.Context, ids []string) (map[string]core.Fundraiser, error) {
	out := make(map[string]core.Fundraiser, len(ids))
	err := r.queryIn(ctx, "fundraisers", ids,
		func(in string) string { return `SELECT id, name FROM fundraisers WHERE id IN (` + in + `)` },
		func(rows *sql.Rows) error {
			var f core.Fundraiser
			if err := rows.Scan(&f.ID, &f.Name); err != nil {
				return err
			}
			out[f.ID] = f
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteRepository) GlobalFilters(ctx context.Context, userID string) (core.GlobalFilters, error) {
	var (
		f   core.GlobalFilters
		raw string
	)
	err := r.db.QueryRowContext(ctx, `SELECT filters FROM user_global_filters WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("query global filters: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return f, fmt.Errorf("decode global filters for %s: %w", userID, err)
	}
	return f, nil
}

func (r *SQLiteRepository) SaveGlobalFilters(ctx context.Context, userID string, f core.GlobalFilters) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode global filters: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO user_global_filters (user_id, filters) VALUES (?, ?)
ON CONFLICT(user_id) DO UPDATE SET filters = excluded.filters, updated_at = CURRENT_TIMESTAMP`,
		userID, string(raw))
	if err != nil {
		return fmt.Errorf("save global filters: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Donation(ctx context.Context, id string) (core.Donation, error) {
	d, err := scanDonation(r.db.QueryRowContext(ctx, donationSelect+` WHERE d.id = ?`, id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return d, store.ErrNotFound
	}
	if err != nil {
		return d, fmt.Errorf("get donation %s: %w", id, err)
	}
	return d, nil
}

// AppendPayment inserts a ledger entry, generating an id when empty.
func (r *SQLiteRepository) AppendPayment(ctx context.Context, p core.Payment) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := insertPayment(ctx, r.db, p); err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "Payment saved to SQLite",
		"id", p.ID,
		"donation_id", p.DonationID,
		"amount", p.Amount.String(),
		"currency", p.Currency,
		"type", p.Type)

	return p.ID, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertPayment(ctx context.Context, db execer, p core.Payment) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO payments (id, donation_id, amount, currency, payment_date, type, is_active)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.DonationID, p.Amount.String(), p.Currency, p.Date.Format(time.DateOnly), p.Type, p.Active)
	if err != nil {
		return fmt.Errorf("insert payment %s: %w", p.ID, err)
	}
	return nil
}

// maxInParams caps the ids bound into one IN (...) list. SQLite rejects
// statements with more host parameters than SQLITE_MAX_VARIABLE_NUMBER.
const maxInParams = 500

// queryIn runs build(placeholders) once per chunk of ids and hands every row
// to scan. No ids means no queries.
func (r *SQLiteRepository) queryIn(ctx context.Context, what string, ids []string, build func(in string) string, scan func(*sql.Rows) error) error {
	for chunk := range slices.Chunk(ids, maxInParams) {
		if err := r.queryChunk(ctx, what, build(placeholders(len(chunk))), anyArgs(chunk), scan); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) queryChunk(ctx context.Context, what, q string, args []any, scan func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("query %s: %w", what, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan %s: %w", what, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", what, err)
	}
	return nil
}

// idSet collects distinct ids in first-seen order.
type idSet struct {
	seen map[string]struct{}
	list []string
}

func (s *idSet) scan(rows *sql.Rows) error {
	var id string
	if err := rows.Scan(&id); err != nil {
		return err
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[id]; !ok {
		s.seen[id] = struct{}{}
		s.list = append(s.list, id)
	}
	return nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func anyArgs(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
