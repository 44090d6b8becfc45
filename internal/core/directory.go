package core

import "strings"

type (
	Donor struct {
		ID           string `json:"id"`
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
		DonorType    string `json:"donorType,omitempty"`
		FundraiserID string `json:"fundraiserId,omitempty"`
		Phone        string `json:"phone,omitempty"`
		Email        string `json:"email,omitempty"`
	}

	// Contact is the first-contact data shown next to a donor row.
	Contact struct {
		Address string `json:"address"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
	}

	Campaign struct {
		ID              string   `json:"id"`
		Name            string   `json:"name"`
		InvitedDonorIDs []string `json:"invitedDonorIds,omitempty"`
	}

	PaymentMethod struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		IsStandingOrder bool   `json:"isStandingOrder"`
	}

	Fundraiser struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Place struct {
		ID             string `json:"id"`
		CountryID      string `json:"countryId,omitempty"`
		CityID         string `json:"cityId,omitempty"`
		NeighborhoodID string `json:"neighborhoodId,omitempty"`
		Street         string `json:"street,omitempty"`
		HouseNumber    string `json:"houseNumber,omitempty"`
		City           string `json:"city,omitempty"`
	}

	// DonorPlace links a donor to a place. Inactive links are ignored by filters.
	DonorPlace struct {
		ID      string `json:"id"`
		DonorID string `json:"donorId"`
		PlaceID string `json:"placeId"`
		Active  bool   `json:"isActive"`
		Primary bool   `json:"isPrimary"`
	}

	AudienceSegment struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		DonorIDs []string `json:"donorIds"`
	}
)

// FullName joins first and last name.
func (d Donor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// Line renders the place as a single address line.
func (p Place) Line() string {
	parts := make([]string, 0, 2)
	if street := strings.TrimSpace(p.Street + " " + p.HouseNumber); street != "" {
		parts = append(parts, street)
	}
	if p.City != "" {
		parts = append(parts, p.City)
	}
	return strings.Join(parts, ", ")
}
