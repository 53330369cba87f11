package middleware

import (
	"strings"

	deliverycontext "pharmanet/internal/delivery/context"
	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	Identity     service.IdentityProvider
}

// AuthMiddleware authenticates bearer access tokens and authorizes roles.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	sessions service.SessionVerifier
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: params.TokenService, sessions: params.Identity}
}

// Authenticate rebuilds the Principal from the access token, checks that its
// session was not ended by a logout, and stores it on the request.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WrapMessage("authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrUnauthorized.WrapMessage("authorization header must be a bearer token")
		}

		principal, err := m.tokenSvc.ParseAccessToken(tokenString)
		if err != nil {
			return err
		}

		if err := m.sessions.VerifySession(c.Request().Context(), principal.AccountID, principal.SessionID); err != nil {
			return err
		}

		deliverycontext.SetPrincipal(c, *principal)

		return next(c)
	}
}

// RequireRole admits principals holding one of roles. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := deliverycontext.GetPrincipal(c)
			if !ok {
				return domainerrors.ErrUnauthorized.WrapMessage("principal missing from context")
			}

			for _, role := range roles {
				if principal.Is(role) {
					return next(c)
				}
			}

			return domainerrors.ErrForbidden.WrapMessage("role " + principal.Role.String() + " may not access this resource")
		}
	}
}
