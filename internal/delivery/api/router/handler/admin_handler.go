package handler

import (
	"net/http"

	"pharmanet/config"
	"pharmanet/internal/delivery/api/response"
	"pharmanet/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	ProvisioningUC usecase.ProvisioningUsecase
	DirectoryUC    usecase.DirectoryUsecase
	Config         *config.Config
}

// AdminHandler serves the administrator console.
type AdminHandler struct {
	provisioningUC usecase.ProvisioningUsecase
	directoryUC    usecase.DirectoryUsecase
	maxImageBytes  int64
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		provisioningUC: params.ProvisioningUC,
		directoryUC:    params.DirectoryUC,
		maxImageBytes:  params.Config.Blob.MaxImageBytes,
	}
}

// CreatedResponse carries the id of a newly provisioned record.
type CreatedResponse struct {
	ID string `json:"id"`
}

func (h *AdminHandler) ProvisionAdministrator(c echo.Context) error {
	var input usecase.ProvisionAdministratorInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	id, err := h.provisioningUC.ProvisionAdministrator(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, CreatedResponse{ID: id})
}

func (h *AdminHandler) ProvisionPharmacist(c echo.Context) error {
	var input usecase.ProvisionPharmacistInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	id, err := h.provisioningUC.ProvisionPharmacist(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, CreatedResponse{ID: id})
}

// ProvisionPharmacy accepts a multipart form with an optional "image" file.
func (h *AdminHandler) ProvisionPharmacy(c echo.Context) error {
	var input usecase.ProvisionPharmacyInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid pharmacy input")
	}

	image, err := readImage(c, "image", h.maxImageBytes)
	if err != nil {
		return err
	}
	input.Image = image

	if err := c.Validate(&input); err != nil {
		return err
	}

	pharmacy, err := h.provisioningUC.ProvisionPharmacy(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, pharmacy)
}

func (h *AdminHandler) ListAdministrators(c echo.Context) error {
	admins, err := h.directoryUC.ListAdministrators(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, admins)
}

func (h *AdminHandler) ListPharmacists(c echo.Context) error {
	pharmacists, err := h.directoryUC.ListPharmacists(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, pharmacists)
}

// ListDirectory returns administrators and pharmacists together.
func (h *AdminHandler) ListDirectory(c echo.Context) error {
	listing, err := h.directoryUC.ListDirectory(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, listing)
}

func (h *AdminHandler) ListPharmacies(c echo.Context) error {
	pharmacies, err := h.directoryUC.ListPharmacies(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, pharmacies)
}

func (h *AdminHandler) GetPharmacy(c echo.Context) error {
	pharmacy, err := h.directoryUC.GetPharmacy(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, pharmacy)
}
