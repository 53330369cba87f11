package usecase

import (
	"context"

	"pharmanet/internal/domain/entity"
)

// UpdateProfileInput is a partial update of a role record. Nil fields are left untouched.
// A new Email is applied to the identity before the role record.
type UpdateProfileInput struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,notblank"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty"`
	LicenseNumber *string `json:"licenseNumber,omitempty"`
}

// UpdatePharmacyAddressInput is a partial update of a pharmacy's name and address.
type UpdatePharmacyAddressInput struct {
	PharmacyName *string `json:"pharmacyName,omitempty" validate:"omitempty,notblank"`
	Address1     *string `json:"address1,omitempty" validate:"omitempty,notblank"`
	Address2     *string `json:"address2,omitempty"`
	Town         *string `json:"town,omitempty" validate:"omitempty,notblank"`
	City         *string `json:"city,omitempty" validate:"omitempty,notblank"`
	State        *string `json:"state,omitempty" validate:"omitempty,notblank"`
	ZipCode      *string `json:"zipCode,omitempty"`
	Country      *string `json:"country,omitempty" validate:"omitempty,notblank"`
}

// ProfileUsecase reads and patches the signed-in account's own records.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, principal entity.Principal) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, principal entity.Principal, accountID string, input UpdateProfileInput) error
	GetOwnPharmacy(ctx context.Context, principal entity.Principal) (*entity.Pharmacy, error)
	UpdatePharmacyAddress(ctx context.Context, principal entity.Principal, input UpdatePharmacyAddressInput) error
	RefreshPharmacySnapshot(ctx context.Context, principal entity.Principal) (*entity.PharmacySnapshot, error)
}
