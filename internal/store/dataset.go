package store

import (
	"encoding/json"
	"fmt"
	"os"

	"donorbase/internal/core"
)

// Dataset is the JSON seed shape shared by the memory backend and cmd/seed.
type Dataset struct {
	Donors         []core.Donor                  `json:"donors"`
	Places         []core.Place                  `json:"places"`
	DonorPlaces    []core.DonorPlace             `json:"donorPlaces"`
	Campaigns      []core.Campaign               `json:"campaigns"`
	PaymentMethods []core.PaymentMethod          `json:"paymentMethods"`
	Fundraisers    []core.Fundraiser             `json:"fundraisers"`
	Segments       []core.AudienceSegment        `json:"targetAudiences"`
	Donations      []core.Donation               `json:"donations"`
	Payments       []core.Payment                `json:"payments"`
	GlobalFilters  map[string]core.GlobalFilters `json:"globalFilters,omitempty"`
}

// LoadDataset reads and validates a seed file.
func LoadDataset(path string) (Dataset, error) {
	var ds Dataset
	b, err := os.ReadFile(path)
	if err != nil {
		return ds, fmt.Errorf("read seed file: %w", err)
	}
	if err := json.Unmarshal(b, &ds); err != nil {
		return ds, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	if err := ds.Validate(); err != nil {
		return ds, err
	}
	return ds, nil
}

// Validate checks every donation and payment record.
func (ds Dataset) Validate() error {
	for i, d := range ds.Donations {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("donation %d (%s): %w", i, d.ID, err)
		}
	}
	for i, p := range ds.Payments {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("payment %d (%s): %w", i, p.ID, err)
		}
	}
	return nil
}
