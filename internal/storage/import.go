package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"donorbase/internal/store"
)

// ImportDataset upserts every record of ds in one transaction.
func (r *SQLiteRepository) ImportDataset(ctx context.Context, ds store.Dataset) error {
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("validate dataset: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	exec := func(q string, args ...any) error {
		_, err := tx.ExecContext(ctx, q, args...)
		return err
	}

	for _, d := range ds.Donors {
		if err := exec(`INSERT OR REPLACE INTO donors (id, first_name, last_name, donor_type, fundraiser_id, phone, email)
VALUES (?, ?, ?, ?, ?, ?, ?)`, d.ID, d.FirstName, d.LastName, d.DonorType, d.FundraiserID, d.Phone, d.Email); err != nil {
			return fmt.Errorf("import donor %s: %w", d.ID, err)
		}
	}
	for _, p := range ds.Places {
		if err := exec(`INSERT OR REPLACE INTO places (id, country_id, city_id, neighborhood_id, street, house_number, city)
VALUES (?, ?, ?, ?, ?, ?, ?)`, p.ID, p.CountryID, p.CityID, p.NeighborhoodID, p.Street, p.HouseNumber, p.City); err != nil {
			return fmt.Errorf("import place %s: %w", p.ID, err)
		}
	}
	for _, l := range ds.DonorPlaces {
		if err := exec(`INSERT OR REPLACE INTO donor_places (id, donor_id, place_id, is_active, is_primary)
VALUES (?, ?, ?, ?, ?)`, l.ID, l.DonorID, l.PlaceID, l.Active, l.Primary); err != nil {
			return fmt.Errorf("import donor place %s: %w", l.ID, err)
		}
	}
	for _, c := range ds.Campaigns {
		if err := exec(`INSERT OR REPLACE INTO campaigns (id, name) VALUES (?, ?)`, c.ID, c.Name); err != nil {
			return fmt.Errorf("import campaign %s: %w", c.ID, err)
		}
		for _, donorID := range c.InvitedDonorIDs {
			if err := exec(`INSERT OR IGNORE INTO campaign_invitees (campaign_id, donor_id) VALUES (?, ?)`, c.ID, donorID); err != nil {
				return fmt.Errorf("import campaign invitee %s/%s: %w", c.ID, donorID, err)
			}
		}
	}
	for _, m := range ds.PaymentMethods {
		if err := exec(`INSERT OR REPLACE INTO payment_methods (id, name, is_standing_order) VALUES (?, ?, ?)`,
			m.ID, m.Name, m.IsStandingOrder); err != nil {
			return fmt.Errorf("import payment method %s: %w", m.ID, err)
		}
	}
	for _, f := range ds.Fundraisers {
		if err := exec(`INSERT OR REPLACE INTO fundraisers (id, name) VALUES (?, ?)`, f.ID, f.Name); err != nil {
			return fmt.Errorf("import fundraiser %s: %w", f.ID, err)
		}
	}
	for _, s := range ds.Segments {
		if err := exec(`INSERT OR REPLACE INTO target_audiences (id, name) VALUES (?, ?)`, s.ID, s.Name); err != nil {
			return fmt.Errorf("import target audience %s: %w", s.ID, err)
		}
		for _, donorID := range s.DonorIDs {
			if err := exec(`INSERT OR IGNORE INTO target_audience_donors (audience_id, donor_id) VALUES (?, ?)`, s.ID, donorID); err != nil {
				return fmt.Errorf("import target audience donor %s/%s: %w", s.ID, donorID, err)
			}
		}
	}
	for _, d := range ds.Donations {
		if err := exec(`INSERT OR REPLACE INTO donations (id, donor_id, campaign_id, payment_method_id, fundraiser_id,
	amount, currency, donation_date, donation_type, frequency, number_of_payments, unlimited_payments)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.DonorID, d.CampaignID, d.PaymentMethodID, d.FundraiserID,
			d.Amount.String(), d.Currency, d.Date.Format(time.DateOnly), string(d.Type), string(d.Frequency),
			d.NumberOfPayments, d.UnlimitedPayments); err != nil {
			return fmt.Errorf("import donation %s: %w", d.ID, err)
		}
		for _, partnerID := range d.PartnerIDs {
			if err := exec(`INSERT OR IGNORE INTO donation_partners (donation_id, donor_id) VALUES (?, ?)`, d.ID, partnerID); err != nil {
				return fmt.Errorf("import donation partner %s/%s: %w", d.ID, partnerID, err)
			}
		}
	}
	for _, p := range ds.Payments {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if err := insertPayment(ctx, tx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	for user, f := range ds.GlobalFilters {
		if err := r.SaveGlobalFilters(ctx, user, f); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "Dataset imported",
		"donors", len(ds.Donors),
		"donations", len(ds.Donations),
		"payments", len(ds.Payments))
	return nil
}
