// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/repository"
	"pharmanet/internal/usecase"
	"pharmanet/internal/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// validateInput runs struct tag validation and reports failures as ErrValidationFailed.
func validateInput(input any) error {
	return errors.Wrap(usecase.ValidateInput(input), "invalid input")
}

// checkImage verifies that an upload sniffs as an image and fits the size limit.
func checkImage(upload *usecase.ImageUpload, maxBytes int64) error {
	if maxBytes > 0 && int64(len(upload.Data)) > maxBytes {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("image is %s, limit is %s", util.FormatBytes(int64(len(upload.Data))), util.FormatBytes(maxBytes))), "invalid image")
	}

	detected := mimetype.Detect(upload.Data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("unsupported content type "+detected.String()), "invalid image")
	}

	return nil
}

// blobName strips directories from a client supplied file name.
func blobName(fileName string) string {
	return path.Base(path.Clean("/" + fileName))
}

// loadPharmacy fetches a pharmacy, reporting a missing one as ErrNotFound.
func loadPharmacy(ctx context.Context, store repository.RecordStore, pharmacyID string) (*entity.Pharmacy, error) {
	record, err := store.Get(ctx, entity.CollectionPharmacies, pharmacyID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound.WithDetails("pharmacy "+pharmacyID), "pharmacy not found")
		}

		return nil, errors.Wrap(domainerrors.ErrStoreReadFailed.WithDetails(err.Error()), "failed to read pharmacy")
	}

	pharmacy, err := entity.PharmacyFromFields(record.Fields)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError.WithDetails(err.Error()), "failed to decode pharmacy")
	}

	return pharmacy, nil
}

// loadRoleRecord fetches the role record of an account.
func loadRoleRecord(ctx context.Context, store repository.RecordStore, role entity.Role, accountID string) (*repository.Record, error) {
	collection := role.Collection()
	if collection == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("unknown role "+role.String()), "invalid role")
	}

	record, err := store.Get(ctx, collection, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound.WithDetails(role.String()+" "+accountID), "role record not found")
		}

		return nil, errors.Wrap(domainerrors.ErrStoreReadFailed.WithDetails(err.Error()), "failed to read role record")
	}

	return record, nil
}

func storeWriteError(err error, message string) error {
	if errors.Is(err, repository.ErrRecordNotFound) {
		return errors.Wrap(domainerrors.ErrNotFound.WithDetails(err.Error()), message)
	}

	return errors.Wrap(domainerrors.ErrStoreWriteFailed.WithDetails(err.Error()), message)
}

func requirePrincipal(principal entity.Principal) error {
	if principal.AccountID == "" || !principal.Role.IsValid() {
		return errors.Wrap(domainerrors.ErrUnauthorized, "missing principal")
	}

	return nil
}

// requirePharmacist checks that the principal is a pharmacist attached to a pharmacy.
func requirePharmacist(principal entity.Principal) error {
	if !principal.Is(entity.RolePharmacist) {
		return errors.Wrap(domainerrors.ErrNotAuthorizedForRole, "pharmacist principal required")
	}
	if principal.PharmacyID == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("principal has no pharmacy"), "pharmacist principal required")
	}

	return nil
}

func errorAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
