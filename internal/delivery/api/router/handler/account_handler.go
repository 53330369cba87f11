package handler

import (
	"net/http"

	"pharmanet/internal/delivery/api/response"
	"pharmanet/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	AccessUC  usecase.AccessUsecase
}

// AccountHandler serves the signed-in account's own profile and credentials.
type AccountHandler struct {
	profileUC usecase.ProfileUsecase
	accessUC  usecase.AccessUsecase
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		profileUC: params.ProfileUC,
		accessUC:  params.AccessUC,
	}
}

func (h *AccountHandler) GetProfile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	profile, err := h.profileUC.GetProfile(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, profile)
}

// UpdateProfile merge-patches the role record named by :accountId.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateProfileInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	if err := h.profileUC.UpdateProfile(c.Request().Context(), principal, c.Param("accountId"), input); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) ChangePassword(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var input usecase.ChangePasswordInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	if err := h.accessUC.ChangePassword(c.Request().Context(), principal, input); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
