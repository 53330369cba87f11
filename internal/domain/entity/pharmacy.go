package entity

import (
	"strings"
	"time"
)

// Pharmacy is a pharmacy location. PharmacyID always equals its record key.
type Pharmacy struct {
	PharmacyID   string    `firestore:"pharmacyId" json:"pharmacyId"`
	PharmacyName string    `firestore:"pharmacyName" json:"pharmacyName"`
	Address1     string    `firestore:"address1" json:"address1"`
	Address2     string    `firestore:"address2,omitempty" json:"address2,omitempty"`
	Town         string    `firestore:"town" json:"town"`
	City         string    `firestore:"city" json:"city"`
	State        string    `firestore:"state" json:"state"`
	ZipCode      string    `firestore:"zipCode,omitempty" json:"zipCode,omitempty"`
	Country      string    `firestore:"country" json:"country"`
	ImageURL     string    `firestore:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
}

// FormattedAddress joins the non-empty address parts in postal order.
func (p *Pharmacy) FormattedAddress() string {
	parts := make([]string, 0, 7)
	for _, part := range []string{p.Address1, p.Address2, p.Town, p.City, p.State, p.ZipCode, p.Country} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}

// Snapshot copies the fields a pharmacist record denormalizes.
func (p *Pharmacy) Snapshot(at time.Time) PharmacySnapshot {
	return PharmacySnapshot{
		PharmacyName: p.PharmacyName,
		Address:      p.FormattedAddress(),
		SnapshotAt:   at,
	}
}

// Fields returns the record store representation of the pharmacy.
func (p *Pharmacy) Fields() map[string]any {
	fields := map[string]any{
		"pharmacyId":   p.PharmacyID,
		"pharmacyName": p.PharmacyName,
		"address1":     p.Address1,
		"town":         p.Town,
		"city":         p.City,
		"state":        p.State,
		"country":      p.Country,
		"createdAt":    p.CreatedAt,
	}
	putIfSet(fields, "address2", p.Address2)
	putIfSet(fields, "zipCode", p.ZipCode)
	putIfSet(fields, "imageUrl", p.ImageURL)

	return fields
}

// PharmacyFromFields decodes a pharmacy record.
func PharmacyFromFields(fields map[string]any) (*Pharmacy, error) {
	pharmacy := &Pharmacy{}
	if err := decodeFields(fields, pharmacy); err != nil {
		return nil, err
	}

	return pharmacy, nil
}
