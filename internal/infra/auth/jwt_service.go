package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pharmanet/config"
	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/service"
	"pharmanet/internal/errors"
)

const tokenTypeAccess = "access"

// accessClaims carries a Principal inside a signed token.
type accessClaims struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	PharmacyID string `json:"pharmacyId,omitempty"`
	Type       string `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    []byte        // Secret key for signing access tokens.
	accessTTL time.Duration // Time-to-live for access tokens.
	issuer    string
	now       func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	ttl := 15 * time.Minute
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret:    []byte(cfg.SecretKey.Access),
		accessTTL: ttl,
		issuer:    cfg.Env.ServiceName,
		now:       time.Now,
	}, nil
}

// IssueAccessToken signs a token carrying the principal.
func (s *jwtService) IssueAccessToken(principal entity.Principal) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL)

	claims := accessClaims{
		Email:      principal.Email,
		Role:       principal.Role.String(),
		PharmacyID: principal.PharmacyID,
		Type:       tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        principal.SessionID,
			Subject:   principal.AccountID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign access token")
	}

	return signed, expiresAt, nil
}

// ParseAccessToken verifies the signature and expiry and rebuilds the principal.
func (s *jwtService) ParseAccessToken(tokenString string) (*entity.Principal, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized.WithDetails(err.Error()), "invalid access token")
	}

	role := entity.Role(claims.Role)
	if claims.Type != tokenTypeAccess || claims.Subject == "" || !role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized.WithDetails("malformed claims"), "invalid access token")
	}

	return &entity.Principal{
		AccountID:  claims.Subject,
		Email:      claims.Email,
		Role:       role,
		PharmacyID: claims.PharmacyID,
		SessionID:  claims.ID,
	}, nil
}
