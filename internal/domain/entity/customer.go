package entity

import "time"

// Customer is the role record of a registered customer, keyed by identity id.
type Customer struct {
	UID          string    `firestore:"uid" json:"uid"`
	Email        string    `firestore:"email" json:"email"`
	FullName     string    `firestore:"fullName" json:"fullName"`
	PhoneNumber  string    `firestore:"phoneNumber" json:"phoneNumber"`
	DOB          string    `firestore:"dob" json:"dob"` // Calendar date, YYYY-MM-DD.
	Gender       string    `firestore:"gender" json:"gender"`
	Address      string    `firestore:"address" json:"address"`
	City         string    `firestore:"city" json:"city"`
	Country      string    `firestore:"country" json:"country"`
	PostalCode   string    `firestore:"postalCode" json:"postalCode"`
	ProfileImage string    `firestore:"profileImage,omitempty" json:"profileImage,omitempty"`
	Role         Role      `firestore:"role" json:"role"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
}

// Fields returns the record store representation of the customer.
func (c *Customer) Fields() map[string]any {
	fields := map[string]any{
		"uid":         c.UID,
		"email":       c.Email,
		"fullName":    c.FullName,
		"phoneNumber": c.PhoneNumber,
		"dob":         c.DOB,
		"gender":      c.Gender,
		"address":     c.Address,
		"city":        c.City,
		"country":     c.Country,
		"postalCode":  c.PostalCode,
		"role":        RoleUser.String(),
		"createdAt":   c.CreatedAt,
	}
	putIfSet(fields, "profileImage", c.ProfileImage)

	return fields
}

// CustomerFromFields decodes a customer record.
func CustomerFromFields(fields map[string]any) (*Customer, error) {
	customer := &Customer{}
	if err := decodeFields(fields, customer); err != nil {
		return nil, err
	}

	return customer, nil
}
