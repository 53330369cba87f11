package impl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	deliverycontext "pharmanet/internal/delivery/context"
	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/repository"
	"pharmanet/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// directoryService implements the DirectoryUsecase interface.
type directoryService struct {
	store  repository.RecordStore
	logger *slog.Logger
}

// DirectoryServiceParams holds dependencies for DirectoryService, injected by Fx.
type DirectoryServiceParams struct {
	fx.In

	Store  repository.RecordStore
	Logger *slog.Logger
}

// NewDirectoryService is the constructor for directoryService.
func NewDirectoryService(params DirectoryServiceParams) usecase.DirectoryUsecase {
	return &directoryService{
		store:  params.Store,
		logger: params.Logger,
	}
}

func (srv *directoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListAdministrators returns every administrator ordered by name.
func (srv *directoryService) ListAdministrators(ctx context.Context) ([]*entity.Administrator, error) {
	admins, err := listCollection(ctx, srv.store, entity.CollectionAdministrators, entity.AdministratorFromFields)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(admins, func(a, b *entity.Administrator) int { return cmp.Compare(a.Name, b.Name) })

	return admins, nil
}

// ListPharmacists returns every pharmacist ordered by name.
func (srv *directoryService) ListPharmacists(ctx context.Context) ([]*entity.Pharmacist, error) {
	pharmacists, err := listCollection(ctx, srv.store, entity.CollectionPharmacists, entity.PharmacistFromFields)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(pharmacists, func(a, b *entity.Pharmacist) int { return cmp.Compare(a.Name, b.Name) })

	return pharmacists, nil
}

// ListDirectory fetches administrators and pharmacists concurrently.
func (srv *directoryService) ListDirectory(ctx context.Context) (*usecase.DirectoryListing, error) {
	listing := &usecase.DirectoryListing{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		admins, err := srv.ListAdministrators(groupCtx)
		listing.Administrators = admins

		return err
	})
	group.Go(func() error {
		pharmacists, err := srv.ListPharmacists(groupCtx)
		listing.Pharmacists = pharmacists

		return err
	})

	if err := group.Wait(); err != nil {
		srv.log(ctx).Error("Failed to list directory", errorAttr(err))

		return nil, err
	}

	return listing, nil
}

// ListPharmacies returns every pharmacy ordered by name.
func (srv *directoryService) ListPharmacies(ctx context.Context) ([]*entity.Pharmacy, error) {
	pharmacies, err := listCollection(ctx, srv.store, entity.CollectionPharmacies, entity.PharmacyFromFields)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(pharmacies, func(a, b *entity.Pharmacy) int { return cmp.Compare(a.PharmacyName, b.PharmacyName) })

	return pharmacies, nil
}

// GetPharmacy returns one pharmacy or ErrNotFound.
func (srv *directoryService) GetPharmacy(ctx context.Context, pharmacyID string) (*entity.Pharmacy, error) {
	return loadPharmacy(ctx, srv.store, pharmacyID)
}

// ListCategories returns the categories owned by the principal's pharmacy, newest first.
// Categories are only ever found by pharmacy filter.
func (srv *directoryService) ListCategories(ctx context.Context, principal entity.Principal) ([]*entity.Category, error) {
	if err := requirePharmacist(principal); err != nil {
		return nil, err
	}

	records, err := srv.store.Query(ctx, entity.CollectionCategories, "pharmacyId", principal.PharmacyID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrStoreReadFailed.WithDetails(err.Error()), "failed to query categories")
	}

	categories, err := decodeRecords(records, entity.CategoryFromFields)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(categories, func(a, b *entity.Category) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return categories, nil
}

func listCollection[T any](ctx context.Context, store repository.RecordStore, collection string, decode func(map[string]any) (*T, error)) ([]*T, error) {
	records, err := store.List(ctx, collection)
	if err != nil {
		return nil, errors.Wrapf(domainerrors.ErrStoreReadFailed.WithDetails(err.Error()), "failed to list %s", collection)
	}

	return decodeRecords(records, decode)
}

func decodeRecords[T any](records []*repository.Record, decode func(map[string]any) (*T, error)) ([]*T, error) {
	items := make([]*T, 0, len(records))
	for _, record := range records {
		item, err := decode(record.Fields)
		if err != nil {
			return nil, errors.Wrapf(domainerrors.ErrInternalError.WithDetails(err.Error()), "failed to decode record %s", record.ID)
		}
		items = append(items, item)
	}

	return items, nil
}
