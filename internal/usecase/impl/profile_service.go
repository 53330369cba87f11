package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "pharmanet/internal/delivery/context"
	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/repository"
	"pharmanet/internal/domain/service"
	"pharmanet/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	store    repository.RecordStore
	identity service.IdentityProvider
	logger   *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	Store    repository.RecordStore
	Identity service.IdentityProvider
	Logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		store:    params.Store,
		identity: params.Identity,
		logger:   params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the principal's role record merged with its identity.
func (srv *profileService) GetProfile(ctx context.Context, principal entity.Principal) (*entity.Profile, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}

	record, err := loadRoleRecord(ctx, srv.store, principal.Role, principal.AccountID)
	if err != nil {
		return nil, err
	}

	// The record's email wins over the token's after an email change.
	email := principal.Email
	if stored, ok := record.Fields["email"].(string); ok && stored != "" {
		email = stored
	}

	profile, err := entity.NewProfile(entity.Identity{ID: principal.AccountID, Email: email}, principal.Role, record.Fields)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError.WithDetails(err.Error()), "failed to decode role record")
	}

	return profile, nil
}

// UpdateProfile merges the provided fields into the principal's own role record.
// Concurrent updates are last-writer-wins per field.
func (srv *profileService) UpdateProfile(ctx context.Context, principal entity.Principal, accountID string, input usecase.UpdateProfileInput) error {
	if err := requirePrincipal(principal); err != nil {
		return err
	}
	if principal.AccountID != accountID {
		return errors.Wrap(domainerrors.ErrForbidden, "profiles can only be updated by their owner")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	patch, err := profilePatch(principal.Role, input)
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Updating profile", slog.Any("role", principal.Role), slog.String("accountID", accountID))

	// 1. Make sure the record exists
	if _, err := loadRoleRecord(ctx, srv.store, principal.Role, accountID); err != nil {
		return err
	}

	// 2. Move the identity to the new email before any record mentions it
	if input.Email != nil {
		if err := srv.identity.UpdateEmail(ctx, accountID, *input.Email); err != nil {
			srv.log(ctx).Warn("Failed to update identity email", slog.String("accountID", accountID), errorAttr(err))

			return errors.Wrap(err, "failed to update email")
		}
	}

	// 3. Merge the patch
	if err := srv.store.Merge(ctx, principal.Role.Collection(), accountID, patch); err != nil {
		srv.log(ctx).Error("Failed to merge profile", slog.String("accountID", accountID), errorAttr(err))

		return storeWriteError(err, "failed to update profile")
	}

	// 4. Keep the account index in step with the identity
	if input.Email != nil {
		if err := srv.store.Merge(ctx, entity.CollectionAccounts, accountID, map[string]any{"email": *input.Email}); err != nil {
			return storeWriteError(err, "failed to update account email")
		}
	}

	return nil
}

// profilePatch maps the input onto the field names of the role's record.
func profilePatch(role entity.Role, input usecase.UpdateProfileInput) (map[string]any, error) {
	nameField, phoneField := "name", "phone"
	if role == entity.RoleUser {
		nameField, phoneField = "fullName", "phoneNumber"
	}

	patch := make(map[string]any)
	if input.Name != nil {
		patch[nameField] = *input.Name
	}
	if input.Email != nil {
		patch["email"] = *input.Email
	}
	if input.Phone != nil {
		patch[phoneField] = *input.Phone
	}
	if input.LicenseNumber != nil {
		if role != entity.RolePharmacist {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("licenseNumber applies to pharmacists only"), "invalid profile patch")
		}
		patch["licenseNumber"] = *input.LicenseNumber
	}

	if len(patch) == 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("no fields to update"), "invalid profile patch")
	}

	return patch, nil
}

// GetOwnPharmacy returns the pharmacy the signed-in pharmacist works for.
func (srv *profileService) GetOwnPharmacy(ctx context.Context, principal entity.Principal) (*entity.Pharmacy, error) {
	if err := requirePharmacist(principal); err != nil {
		return nil, err
	}

	return loadPharmacy(ctx, srv.store, principal.PharmacyID)
}

// UpdatePharmacyAddress merges name and address fields into the principal's pharmacy.
// Pharmacist snapshots are not touched; see RefreshPharmacySnapshot.
func (srv *profileService) UpdatePharmacyAddress(ctx context.Context, principal entity.Principal, input usecase.UpdatePharmacyAddressInput) error {
	if err := requirePharmacist(principal); err != nil {
		return err
	}
	if err := validateInput(input); err != nil {
		return err
	}

	patch := make(map[string]any)
	for field, value := range map[string]*string{
		"pharmacyName": input.PharmacyName,
		"address1":     input.Address1,
		"address2":     input.Address2,
		"town":         input.Town,
		"city":         input.City,
		"state":        input.State,
		"zipCode":      input.ZipCode,
		"country":      input.Country,
	} {
		if value != nil {
			patch[field] = *value
		}
	}
	if len(patch) == 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("no fields to update"), "invalid pharmacy patch")
	}

	srv.log(ctx).Info("Updating pharmacy address", slog.String("pharmacyID", principal.PharmacyID))

	if _, err := loadPharmacy(ctx, srv.store, principal.PharmacyID); err != nil {
		return err
	}

	if err := srv.store.Merge(ctx, entity.CollectionPharmacies, principal.PharmacyID, patch); err != nil {
		return storeWriteError(err, "failed to update pharmacy address")
	}

	return nil
}

// RefreshPharmacySnapshot re-copies pharmacy data into the principal's pharmacist record.
func (srv *profileService) RefreshPharmacySnapshot(ctx context.Context, principal entity.Principal) (*entity.PharmacySnapshot, error) {
	if err := requirePharmacist(principal); err != nil {
		return nil, err
	}

	record, err := loadRoleRecord(ctx, srv.store, entity.RolePharmacist, principal.AccountID)
	if err != nil {
		return nil, err
	}

	pharmacist, err := entity.PharmacistFromFields(record.Fields)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError.WithDetails(err.Error()), "failed to decode pharmacist")
	}

	pharmacy, err := loadPharmacy(ctx, srv.store, pharmacist.PharmacyID)
	if err != nil {
		return nil, err
	}

	snapshot := pharmacy.Snapshot(time.Now().UTC())
	if err := srv.store.Merge(ctx, entity.CollectionPharmacists, principal.AccountID, map[string]any{"pharmacy": snapshot.Fields()}); err != nil {
		return nil, storeWriteError(err, "failed to refresh pharmacy snapshot")
	}

	srv.log(ctx).Info("Refreshed pharmacy snapshot", slog.String("accountID", principal.AccountID), slog.String("pharmacyID", pharmacist.PharmacyID))

	return &snapshot, nil
}
