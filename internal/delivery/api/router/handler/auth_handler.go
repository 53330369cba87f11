package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"pharmanet/config"
	"pharmanet/internal/delivery/api/response"
	"pharmanet/internal/domain/entity"
	"pharmanet/internal/domain/service"
	"pharmanet/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AccessUC       usecase.AccessUsecase
	ProvisioningUC usecase.ProvisioningUsecase
	TokenService   service.TokenService
	Config         *config.Config
	Logger         *slog.Logger
}

// AuthHandler serves sign-in, sign-out and customer registration.
type AuthHandler struct {
	accessUC       usecase.AccessUsecase
	provisioningUC usecase.ProvisioningUsecase
	tokenSvc       service.TokenService
	maxImageBytes  int64
	logger         *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		accessUC:       params.AccessUC,
		provisioningUC: params.ProvisioningUC,
		tokenSvc:       params.TokenService,
		maxImageBytes:  params.Config.Blob.MaxImageBytes,
		logger:         params.Logger,
	}
}

// LoginResponse is returned by every login endpoint.
type LoginResponse struct {
	AccessToken string          `json:"accessToken"`
	TokenType   string          `json:"tokenType"`
	ExpiresAt   time.Time       `json:"expiresAt"`
	Profile     *entity.Profile `json:"profile"`
}

// RegisterResponse carries the id of a newly registered account.
type RegisterResponse struct {
	AccountID string `json:"accountId"`
}

type loginFunc func(ctx context.Context, input usecase.LoginInput) (*entity.Profile, error)

// LoginAdministrator signs in an administrator.
func (h *AuthHandler) LoginAdministrator(c echo.Context) error {
	return h.login(c, h.accessUC.LoginAdministrator)
}

// LoginPharmacist signs in a pharmacist.
func (h *AuthHandler) LoginPharmacist(c echo.Context) error {
	return h.login(c, h.accessUC.LoginPharmacist)
}

// LoginCustomer signs in a customer.
func (h *AuthHandler) LoginCustomer(c echo.Context) error {
	return h.login(c, h.accessUC.LoginCustomer)
}

func (h *AuthHandler) login(c echo.Context, fn loginFunc) error {
	var input usecase.LoginInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	profile, err := fn(c.Request().Context(), input)
	if err != nil {
		return err
	}

	token, expiresAt, err := h.tokenSvc.IssueAccessToken(profile.Principal())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Profile:     profile,
	})
}

// RegisterCustomer handles multipart customer registration with an optional photo.
func (h *AuthHandler) RegisterCustomer(c echo.Context) error {
	var input usecase.ProvisionCustomerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}

	photo, err := readImage(c, "photo", h.maxImageBytes)
	if err != nil {
		return err
	}
	input.Photo = photo

	if err := c.Validate(&input); err != nil {
		return err
	}

	accountID, err := h.provisioningUC.ProvisionCustomer(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, RegisterResponse{AccountID: accountID})
}

// Logout ends the caller's identity session.
func (h *AuthHandler) Logout(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	if err := h.accessUC.Logout(c.Request().Context(), principal); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
