package entity

import "time"

// Category groups products of a single pharmacy.
type Category struct {
	ID           string    `firestore:"id" json:"id"`
	Name         string    `firestore:"name" json:"name"`
	Description  string    `firestore:"description" json:"description"`
	ImageURL     string    `firestore:"imageUrl" json:"imageUrl"`
	PharmacyID   string    `firestore:"pharmacyId" json:"pharmacyId"`
	ProductCount int       `firestore:"productCount" json:"productCount"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Fields returns the record store representation of the category.
func (c *Category) Fields() map[string]any {
	return map[string]any{
		"id":           c.ID,
		"name":         c.Name,
		"description":  c.Description,
		"imageUrl":     c.ImageURL,
		"pharmacyId":   c.PharmacyID,
		"productCount": c.ProductCount,
		"createdAt":    c.CreatedAt,
		"updatedAt":    c.UpdatedAt,
	}
}

// CategoryFromFields decodes a category record.
func CategoryFromFields(fields map[string]any) (*Category, error) {
	category := &Category{}
	if err := decodeFields(fields, category); err != nil {
		return nil, err
	}

	return category, nil
}
