// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"pharmanet/internal/domain/entity"
)

// --- Input DTOs ---

// ImageUpload is a named binary image supplied with a provisioning request.
type ImageUpload struct {
	FileName string `validate:"required"`
	Data     []byte `validate:"required,min=1"`
}

// ProvisionAdministratorInput defines the data required to create an administrator.
type ProvisionAdministratorInput struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
}

// ProvisionPharmacistInput defines the data required to create a pharmacist.
type ProvisionPharmacistInput struct {
	Name          string `json:"name" validate:"required,notblank"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	PharmacyID    string `json:"pharmacyId" validate:"required"`
	Phone         string `json:"phone,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
}

// ProvisionPharmacyInput defines the data required to create a pharmacy.
type ProvisionPharmacyInput struct {
	PharmacyName string       `json:"pharmacyName" form:"pharmacyName" validate:"required,notblank"`
	Address1     string       `json:"address1" form:"address1" validate:"required"`
	Address2     string       `json:"address2,omitempty" form:"address2"`
	Town         string       `json:"town" form:"town" validate:"required"`
	City         string       `json:"city" form:"city" validate:"required"`
	State        string       `json:"state" form:"state" validate:"required"`
	ZipCode      string       `json:"zipCode,omitempty" form:"zipCode"`
	Country      string       `json:"country" form:"country" validate:"required"`
	Image        *ImageUpload `json:"-" validate:"omitempty"`
}

// ProvisionCategoryInput defines the data required to create a category.
// The owning pharmacy comes from the acting principal.
type ProvisionCategoryInput struct {
	Name        string       `json:"name" form:"name" validate:"required,notblank"`
	Description string       `json:"description" form:"description" validate:"required,notblank"`
	Image       *ImageUpload `json:"-" validate:"required"`
}

// ProvisionCustomerInput defines the data required to register a customer.
type ProvisionCustomerInput struct {
	Email       string       `json:"email" form:"email" validate:"required,email"`
	Password    string       `json:"password" form:"password" validate:"required,min=6"`
	FullName    string       `json:"fullName" form:"fullName" validate:"required,notblank"`
	PhoneNumber string       `json:"phoneNumber" form:"phoneNumber" validate:"required"`
	DOB         string       `json:"dob" form:"dob" validate:"required,datetime=2006-01-02"`
	Gender      string       `json:"gender" form:"gender" validate:"required"`
	Address     string       `json:"address" form:"address" validate:"required"`
	City        string       `json:"city" form:"city" validate:"required"`
	Country     string       `json:"country" form:"country" validate:"required"`
	PostalCode  string       `json:"postalCode" form:"postalCode" validate:"required"`
	Photo       *ImageUpload `json:"-" validate:"omitempty"`
}

// ProvisioningUsecase creates identities, role records, pharmacies and categories.
type ProvisioningUsecase interface {
	ProvisionAdministrator(ctx context.Context, input ProvisionAdministratorInput) (string, error)
	ProvisionPharmacist(ctx context.Context, input ProvisionPharmacistInput) (string, error)
	ProvisionPharmacy(ctx context.Context, input ProvisionPharmacyInput) (*entity.Pharmacy, error)
	ProvisionCategory(ctx context.Context, principal entity.Principal, input ProvisionCategoryInput) (*entity.Category, error)
	ProvisionCustomer(ctx context.Context, input ProvisionCustomerInput) (string, error)
}
