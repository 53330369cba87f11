package usecase

import (
	"context"

	"pharmanet/internal/domain/entity"
)

// DirectoryListing is the operator directory shown to administrators.
type DirectoryListing struct {
	Administrators []*entity.Administrator `json:"administrators"`
	Pharmacists    []*entity.Pharmacist    `json:"pharmacists"`
}

// DirectoryUsecase lists directory records.
type DirectoryUsecase interface {
	ListAdministrators(ctx context.Context) ([]*entity.Administrator, error)
	ListPharmacists(ctx context.Context) ([]*entity.Pharmacist, error)
	ListDirectory(ctx context.Context) (*DirectoryListing, error)
	ListPharmacies(ctx context.Context) ([]*entity.Pharmacy, error)
	GetPharmacy(ctx context.Context, pharmacyID string) (*entity.Pharmacy, error)
	ListCategories(ctx context.Context, principal entity.Principal) ([]*entity.Category, error)
}
