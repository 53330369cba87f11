package client

import (
	"context"
	"net/http"

	"pharmanet/internal/domain/entity"
)

// Directory is the administrators and pharmacists listing.
type Directory struct {
	Administrators []*entity.Administrator `json:"administrators"`
	Pharmacists    []*entity.Pharmacist    `json:"pharmacists"`
}

// NewAdministrator is the input for ProvisionAdministrator.
type NewAdministrator struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// NewPharmacist is the input for ProvisionPharmacist.
type NewPharmacist struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	PharmacyID    string `json:"pharmacyId"`
	Phone         string `json:"phone,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
}

// NewPharmacy is the input for ProvisionPharmacy.
type NewPharmacy struct {
	PharmacyName string
	Address1     string
	Address2     string
	Town         string
	City         string
	State        string
	ZipCode      string
	Country      string
	Image        *Image
}

type created struct {
	ID string `json:"id"`
}

func (c *Client) ProvisionAdministrator(ctx context.Context, in NewAdministrator) (string, error) {
	return c.provision(ctx, "/admin/administrators", in)
}

func (c *Client) ProvisionPharmacist(ctx context.Context, in NewPharmacist) (string, error) {
	return c.provision(ctx, "/admin/pharmacists", in)
}

func (c *Client) provision(ctx context.Context, path string, in any) (string, error) {
	body, err := jsonBody(in)
	if err != nil {
		return "", err
	}

	var out created
	if err := c.do(ctx, request{method: http.MethodPost, path: path, body: body, contentType: "application/json", auth: true}, &out); err != nil {
		return "", err
	}

	return out.ID, nil
}

// ProvisionPharmacy creates a pharmacy, uploading its image when one is given.
func (c *Client) ProvisionPharmacy(ctx context.Context, in NewPharmacy) (*entity.Pharmacy, error) {
	body, contentType, err := multipartBody(map[string]string{
		"pharmacyName": in.PharmacyName,
		"address1":     in.Address1,
		"address2":     in.Address2,
		"town":         in.Town,
		"city":         in.City,
		"state":        in.State,
		"zipCode":      in.ZipCode,
		"country":      in.Country,
	}, "image", in.Image)
	if err != nil {
		return nil, err
	}

	var pharmacy entity.Pharmacy
	if err := c.do(ctx, request{method: http.MethodPost, path: "/admin/pharmacies", body: body, contentType: contentType, auth: true}, &pharmacy); err != nil {
		return nil, err
	}

	return &pharmacy, nil
}

// ListDirectory fetches administrators and pharmacists in one call.
func (c *Client) ListDirectory(ctx context.Context) (*Directory, error) {
	var directory Directory
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/directory", auth: true}, &directory); err != nil {
		return nil, err
	}

	return &directory, nil
}

func (c *Client) ListPharmacies(ctx context.Context) ([]*entity.Pharmacy, error) {
	var pharmacies []*entity.Pharmacy
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/pharmacies", auth: true}, &pharmacies); err != nil {
		return nil, err
	}

	return pharmacies, nil
}

func (c *Client) GetPharmacy(ctx context.Context, pharmacyID string) (*entity.Pharmacy, error) {
	var pharmacy entity.Pharmacy
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/pharmacies/" + escape(pharmacyID), auth: true}, &pharmacy); err != nil {
		return nil, err
	}

	return &pharmacy, nil
}
