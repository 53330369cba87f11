package service

import (
	"time"

	"pharmanet/internal/domain/entity"
)

// TokenService issues and verifies access tokens that carry a Principal.
type TokenService interface {
	// IssueAccessToken signs a token for principal and returns it with its expiry.
	IssueAccessToken(principal entity.Principal) (token string, expiresAt time.Time, err error)

	// ParseAccessToken verifies a token and rebuilds the Principal it carries.
	ParseAccessToken(token string) (*entity.Principal, error)
}
