package client

import (
	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
)

// Records returned by the API. The aliases let code outside this module name
// them without importing internal packages.
type (
	Role             = entity.Role
	Principal        = entity.Principal
	Profile          = entity.Profile
	Administrator    = entity.Administrator
	Pharmacist       = entity.Pharmacist
	PharmacySnapshot = entity.PharmacySnapshot
	Pharmacy         = entity.Pharmacy
	Category         = entity.Category
	Customer         = entity.Customer
)

const (
	RoleAdmin      = entity.RoleAdmin
	RolePharmacist = entity.RolePharmacist
	RoleUser       = entity.RoleUser
)

// Error kinds an APIError unwraps to.
var (
	ErrInvalidCredentials     = domainerrors.ErrInvalidCredentials
	ErrNotAuthorizedForRole   = domainerrors.ErrNotAuthorizedForRole
	ErrReauthenticationFailed = domainerrors.ErrReauthenticationFailed
	ErrUnauthorized           = domainerrors.ErrUnauthorized
	ErrEmailInUse             = domainerrors.ErrEmailInUse
	ErrValidationFailed       = domainerrors.ErrValidationFailed
	ErrNotFound               = domainerrors.ErrNotFound
	ErrForbidden              = domainerrors.ErrForbidden
)
