package entity

import "time"

// Pharmacist is the role record of a pharmacist, keyed by identity id.
type Pharmacist struct {
	UserID        string           `firestore:"userId" json:"userId"`
	Name          string           `firestore:"name" json:"name"`
	Email         string           `firestore:"email" json:"email"`
	Role          Role             `firestore:"role" json:"role"`
	PharmacyID    string           `firestore:"pharmacyId" json:"pharmacyId"`
	Pharmacy      PharmacySnapshot `firestore:"pharmacy" json:"pharmacy"`
	Phone         string           `firestore:"phone,omitempty" json:"phone,omitempty"`
	LicenseNumber string           `firestore:"licenseNumber,omitempty" json:"licenseNumber,omitempty"`
	CreatedAt     time.Time        `firestore:"createdAt" json:"createdAt"`
}

// PharmacySnapshot is the copy of pharmacy data embedded in a pharmacist record.
// It is not kept in sync with the pharmacy; SnapshotAt tells readers how old it is.
type PharmacySnapshot struct {
	PharmacyName string    `firestore:"pharmacyName" json:"pharmacyName"`
	Address      string    `firestore:"address" json:"address"`
	SnapshotAt   time.Time `firestore:"snapshotAt" json:"snapshotAt"`
}

// Fields returns the record store representation of the snapshot.
func (s PharmacySnapshot) Fields() map[string]any {
	return map[string]any{
		"pharmacyName": s.PharmacyName,
		"address":      s.Address,
		"snapshotAt":   s.SnapshotAt,
	}
}

// Fields returns the record store representation of the pharmacist.
func (p *Pharmacist) Fields() map[string]any {
	fields := map[string]any{
		"userId":     p.UserID,
		"name":       p.Name,
		"email":      p.Email,
		"role":       RolePharmacist.String(),
		"pharmacyId": p.PharmacyID,
		"pharmacy":   p.Pharmacy.Fields(),
		"createdAt":  p.CreatedAt,
	}
	putIfSet(fields, "phone", p.Phone)
	putIfSet(fields, "licenseNumber", p.LicenseNumber)

	return fields
}

// PharmacistFromFields decodes a pharmacist record.
func PharmacistFromFields(fields map[string]any) (*Pharmacist, error) {
	pharmacist := &Pharmacist{}
	if err := decodeFields(fields, pharmacist); err != nil {
		return nil, err
	}

	return pharmacist, nil
}
