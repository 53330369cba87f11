package handler

import (
	"net/http"

	"pharmanet/config"
	"pharmanet/internal/delivery/api/response"
	"pharmanet/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PharmacistHandlerParams holds dependencies for PharmacistHandler, injected by Fx.
type PharmacistHandlerParams struct {
	fx.In

	ProvisioningUC usecase.ProvisioningUsecase
	DirectoryUC    usecase.DirectoryUsecase
	ProfileUC      usecase.ProfileUsecase
	Config         *config.Config
}

// PharmacistHandler serves the pharmacist console. Every action is scoped to
// the pharmacy carried by the caller's principal.
type PharmacistHandler struct {
	provisioningUC usecase.ProvisioningUsecase
	directoryUC    usecase.DirectoryUsecase
	profileUC      usecase.ProfileUsecase
	maxImageBytes  int64
}

// NewPharmacistHandler is the constructor for PharmacistHandler
func NewPharmacistHandler(params PharmacistHandlerParams) *PharmacistHandler {
	return &PharmacistHandler{
		provisioningUC: params.ProvisioningUC,
		directoryUC:    params.DirectoryUC,
		profileUC:      params.ProfileUC,
		maxImageBytes:  params.Config.Blob.MaxImageBytes,
	}
}

// CreateCategory accepts a multipart form with a required "image" file.
func (h *PharmacistHandler) CreateCategory(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var input usecase.ProvisionCategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid category input")
	}

	image, err := readImage(c, "image", h.maxImageBytes)
	if err != nil {
		return err
	}
	input.Image = image

	category, err := h.provisioningUC.ProvisionCategory(c.Request().Context(), principal, input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, category)
}

func (h *PharmacistHandler) ListCategories(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	categories, err := h.directoryUC.ListCategories(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, categories)
}

// GetOwnPharmacy returns the pharmacy named by the caller's token.
func (h *PharmacistHandler) GetOwnPharmacy(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	pharmacy, err := h.profileUC.GetOwnPharmacy(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, pharmacy)
}

func (h *PharmacistHandler) UpdatePharmacyAddress(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var input usecase.UpdatePharmacyAddressInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	if err := h.profileUC.UpdatePharmacyAddress(c.Request().Context(), principal, input); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// RefreshPharmacySnapshot re-copies the pharmacy name and address into the caller's record.
func (h *PharmacistHandler) RefreshPharmacySnapshot(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	snapshot, err := h.profileUC.RefreshPharmacySnapshot(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, snapshot)
}
