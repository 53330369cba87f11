package client

import (
	"context"
	"net/http"

	"pharmanet/internal/domain/entity"
)

// CreateCategory adds a category to the signed-in pharmacist's pharmacy.
func (c *Client) CreateCategory(ctx context.Context, name, description string, image *Image) (*entity.Category, error) {
	body, contentType, err := multipartBody(map[string]string{
		"name":        name,
		"description": description,
	}, "image", image)
	if err != nil {
		return nil, err
	}

	var category entity.Category
	if err := c.do(ctx, request{method: http.MethodPost, path: "/pharmacist/categories", body: body, contentType: contentType, auth: true}, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var categories []*entity.Category
	if err := c.do(ctx, request{method: http.MethodGet, path: "/pharmacist/categories", auth: true}, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// GetOwnPharmacy returns the pharmacy the signed-in pharmacist works for.
func (c *Client) GetOwnPharmacy(ctx context.Context) (*entity.Pharmacy, error) {
	var pharmacy entity.Pharmacy
	if err := c.do(ctx, request{method: http.MethodGet, path: "/pharmacist/pharmacy", auth: true}, &pharmacy); err != nil {
		return nil, err
	}

	return &pharmacy, nil
}

// AddressPatch is a partial update of the pharmacy's name and address. Nil fields are left untouched.
type AddressPatch struct {
	PharmacyName *string `json:"pharmacyName,omitempty"`
	Address1     *string `json:"address1,omitempty"`
	Address2     *string `json:"address2,omitempty"`
	Town         *string `json:"town,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	ZipCode      *string `json:"zipCode,omitempty"`
	Country      *string `json:"country,omitempty"`
}

func (c *Client) UpdatePharmacyAddress(ctx context.Context, patch AddressPatch) error {
	body, err := jsonBody(patch)
	if err != nil {
		return err
	}

	return c.do(ctx, request{method: http.MethodPatch, path: "/pharmacist/pharmacy/address", body: body, contentType: "application/json", auth: true}, nil)
}

func (c *Client) RefreshPharmacySnapshot(ctx context.Context) (*entity.PharmacySnapshot, error) {
	var snapshot entity.PharmacySnapshot
	if err := c.do(ctx, request{method: http.MethodPost, path: "/pharmacist/pharmacy/snapshot", auth: true}, &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
