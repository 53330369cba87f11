package client

import (
	"context"
	"net/http"
	"time"

	"pharmanet/internal/domain/entity"
	"pharmanet/pkg/session"
)

type loginResponse struct {
	AccessToken string          `json:"accessToken"`
	ExpiresAt   time.Time       `json:"expiresAt"`
	Profile     *entity.Profile `json:"profile"`
}

// LoginAdministrator signs in and caches the administrator session.
func (c *Client) LoginAdministrator(ctx context.Context, email, password string) (*entity.Profile, error) {
	return c.login(ctx, "/auth/admin/login", email, password)
}

// LoginPharmacist signs in and caches the pharmacist session.
func (c *Client) LoginPharmacist(ctx context.Context, email, password string) (*entity.Profile, error) {
	return c.login(ctx, "/auth/pharmacist/login", email, password)
}

// LoginCustomer signs in and caches the customer session.
func (c *Client) LoginCustomer(ctx context.Context, email, password string) (*entity.Profile, error) {
	return c.login(ctx, "/auth/customer/login", email, password)
}

func (c *Client) login(ctx context.Context, path, email, password string) (*entity.Profile, error) {
	body, err := jsonBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	var out loginResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: path, body: body, contentType: "application/json"}, &out); err != nil {
		return nil, err
	}

	c.sessions.Set(&session.Session{
		Profile:     out.Profile,
		AccessToken: out.AccessToken,
		ExpiresAt:   out.ExpiresAt,
	})

	return out.Profile, nil
}

// Logout ends the identity session on the server and clears the cache.
// The cache is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.sessions.Clear()

	return c.do(ctx, request{method: http.MethodPost, path: "/auth/logout", auth: true}, nil)
}

// ChangePassword rotates the signed-in account's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body, err := jsonBody(map[string]string{"currentPassword": currentPassword, "newPassword": newPassword})
	if err != nil {
		return err
	}

	return c.do(ctx, request{method: http.MethodPut, path: "/account/password", body: body, contentType: "application/json", auth: true}, nil)
}

// CustomerRegistration is the customer sign-up form.
type CustomerRegistration struct {
	Email       string
	Password    string
	FullName    string
	PhoneNumber string
	DOB         string // YYYY-MM-DD
	Gender      string
	Address     string
	City        string
	Country     string
	PostalCode  string
	Photo       *Image
}

// RegisterCustomer creates a customer account and returns its id. It does not sign in.
func (c *Client) RegisterCustomer(ctx context.Context, reg CustomerRegistration) (string, error) {
	body, contentType, err := multipartBody(map[string]string{
		"email":       reg.Email,
		"password":    reg.Password,
		"fullName":    reg.FullName,
		"phoneNumber": reg.PhoneNumber,
		"dob":         reg.DOB,
		"gender":      reg.Gender,
		"address":     reg.Address,
		"city":        reg.City,
		"country":     reg.Country,
		"postalCode":  reg.PostalCode,
	}, "photo", reg.Photo)
	if err != nil {
		return "", err
	}

	var out struct {
		AccountID string `json:"accountId"`
	}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/customer/register", body: body, contentType: contentType}, &out); err != nil {
		return "", err
	}

	return out.AccountID, nil
}
