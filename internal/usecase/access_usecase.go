package usecase

import (
	"context"

	"pharmanet/internal/domain/entity"
)

// LoginInput defines the credentials presented at sign-in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput defines the data required to rotate a password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,nefield=CurrentPassword"`
}

// AccessUsecase gates sign-in by identity and role and manages credentials.
type AccessUsecase interface {
	LoginAdministrator(ctx context.Context, input LoginInput) (*entity.Profile, error)
	LoginPharmacist(ctx context.Context, input LoginInput) (*entity.Profile, error)
	LoginCustomer(ctx context.Context, input LoginInput) (*entity.Profile, error)
	Logout(ctx context.Context, principal entity.Principal) error
	ChangePassword(ctx context.Context, principal entity.Principal, input ChangePasswordInput) error
}
