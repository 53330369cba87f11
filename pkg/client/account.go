package client

import (
	"context"
	"net/http"

	"pharmanet/internal/domain/entity"
	"pharmanet/pkg/session"
)

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	LicenseNumber *string `json:"licenseNumber,omitempty"`
}

// GetProfile fetches the current role record and refreshes the cached profile.
func (c *Client) GetProfile(ctx context.Context) (*entity.Profile, error) {
	var profile entity.Profile
	if err := c.do(ctx, request{method: http.MethodGet, path: "/account/profile", auth: true}, &profile); err != nil {
		return nil, err
	}

	if current := c.sessions.Current(); current != nil {
		c.sessions.Set(&session.Session{
			Profile:     &profile,
			AccessToken: current.AccessToken,
			ExpiresAt:   current.ExpiresAt,
		})
	}

	return &profile, nil
}

// UpdateProfile merge-patches the role record of accountID.
func (c *Client) UpdateProfile(ctx context.Context, accountID string, patch ProfilePatch) error {
	body, err := jsonBody(patch)
	if err != nil {
		return err
	}

	return c.do(ctx, request{method: http.MethodPatch, path: "/account/profiles/" + escape(accountID), body: body, contentType: "application/json", auth: true}, nil)
}
