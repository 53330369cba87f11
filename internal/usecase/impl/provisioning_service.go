package impl

import (
	"context"
	"log/slog"
	"path"
	"time"

	"pharmanet/config"
	deliverycontext "pharmanet/internal/delivery/context"
	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/repository"
	"pharmanet/internal/domain/service"
	"pharmanet/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// provisioningService implements the ProvisioningUsecase interface.
type provisioningService struct {
	store         repository.RecordStore
	identity      service.IdentityProvider
	blob          service.BlobStore
	publisher     service.EventPublisher
	maxImageBytes int64
	logger        *slog.Logger
}

// accountProvisioning describes how one role turns a fresh identity into records.
type accountProvisioning struct {
	Role       entity.Role
	Email      string
	Password   string
	PharmacyID string
	// Prepare runs after the identity exists and before anything is written.
	Prepare func(ctx context.Context, identity *entity.Identity) error
	// Build returns the role record for the identity.
	Build func(identity *entity.Identity, now time.Time) map[string]any
}

// ProvisioningServiceParams holds dependencies for ProvisioningService, injected by Fx.
type ProvisioningServiceParams struct {
	fx.In

	Store     repository.RecordStore
	Identity  service.IdentityProvider
	Blob      service.BlobStore
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewProvisioningService is the constructor for provisioningService.
func NewProvisioningService(params ProvisioningServiceParams) usecase.ProvisioningUsecase {
	var maxImageBytes int64
	if params.Config != nil && params.Config.Blob != nil {
		maxImageBytes = params.Config.Blob.MaxImageBytes
	}

	return &provisioningService{
		store:         params.Store,
		identity:      params.Identity,
		blob:          params.Blob,
		publisher:     params.Publisher,
		maxImageBytes: maxImageBytes,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *provisioningService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ProvisionAdministrator creates an administrator identity and its role record.
func (srv *provisioningService) ProvisionAdministrator(ctx context.Context, input usecase.ProvisionAdministratorInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}

	return srv.executeProvisioning(ctx, &accountProvisioning{
		Role:     entity.RoleAdmin,
		Email:    input.Email,
		Password: input.Password,
		Build: func(identity *entity.Identity, now time.Time) map[string]any {
			admin := &entity.Administrator{
				UserID:    identity.ID,
				Name:      input.Name,
				Email:     identity.Email,
				Role:      entity.RoleAdmin,
				Phone:     input.Phone,
				CreatedAt: now,
			}

			return admin.Fields()
		},
	})
}

// ProvisionPharmacist creates a pharmacist identity whose record embeds a snapshot of its pharmacy.
// The pharmacy is resolved after the identity exists; a missing pharmacy rolls the identity back.
func (srv *provisioningService) ProvisionPharmacist(ctx context.Context, input usecase.ProvisionPharmacistInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}

	var pharmacy *entity.Pharmacy

	return srv.executeProvisioning(ctx, &accountProvisioning{
		Role:       entity.RolePharmacist,
		Email:      input.Email,
		Password:   input.Password,
		PharmacyID: input.PharmacyID,
		Prepare: func(ctx context.Context, _ *entity.Identity) error {
			found, err := loadPharmacy(ctx, srv.store, input.PharmacyID)
			if err != nil {
				return err
			}
			pharmacy = found

			return nil
		},
		Build: func(identity *entity.Identity, now time.Time) map[string]any {
			pharmacist := &entity.Pharmacist{
				UserID:        identity.ID,
				Name:          input.Name,
				Email:         identity.Email,
				Role:          entity.RolePharmacist,
				PharmacyID:    input.PharmacyID,
				Pharmacy:      pharmacy.Snapshot(now),
				Phone:         input.Phone,
				LicenseNumber: input.LicenseNumber,
				CreatedAt:     now,
			}

			return pharmacist.Fields()
		},
	})
}

// ProvisionCustomer registers a customer, storing the optional profile photo under the new account.
func (srv *provisioningService) ProvisionCustomer(ctx context.Context, input usecase.ProvisionCustomerInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}
	if input.Photo != nil {
		if err := checkImage(input.Photo, srv.maxImageBytes); err != nil {
			return "", err
		}
	}

	var photoURL string

	return srv.executeProvisioning(ctx, &accountProvisioning{
		Role:     entity.RoleUser,
		Email:    input.Email,
		Password: input.Password,
		Prepare: func(ctx context.Context, identity *entity.Identity) error {
			if input.Photo == nil {
				return nil
			}

			url, err := srv.upload(ctx, path.Join(entity.BlobPrefixCustomerPhoto, identity.ID, blobName(input.Photo.FileName)), input.Photo.Data)
			if err != nil {
				return err
			}
			photoURL = url

			return nil
		},
		Build: func(identity *entity.Identity, now time.Time) map[string]any {
			customer := &entity.Customer{
				UID:          identity.ID,
				Email:        identity.Email,
				FullName:     input.FullName,
				PhoneNumber:  input.PhoneNumber,
				DOB:          input.DOB,
				Gender:       input.Gender,
				Address:      input.Address,
				City:         input.City,
				Country:      input.Country,
				PostalCode:   input.PostalCode,
				ProfileImage: photoURL,
				Role:         entity.RoleUser,
				CreatedAt:    now,
			}

			return customer.Fields()
		},
	})
}

func (srv *provisioningService) executeProvisioning(ctx context.Context, p *accountProvisioning) (string, error) {
	srv.log(ctx).Info("Starting account provisioning", slog.Any("role", p.Role), slog.String("email", p.Email))

	identity, err := srv.identity.CreateIdentity(ctx, p.Email, p.Password)
	if err != nil {
		srv.log(ctx).Warn("Failed to create identity", slog.Any("role", p.Role), slog.String("email", p.Email), errorAttr(err))

		return "", errors.Wrap(err, "failed to create identity")
	}

	if err := srv.completeProvisioning(ctx, identity, p); err != nil {
		srv.log(ctx).Error("Account provisioning failed after identity creation", slog.Any("role", p.Role), slog.String("accountID", identity.ID), errorAttr(err))
		srv.compensate(ctx, identity)

		return "", err
	}

	srv.publish(ctx, &service.DirectoryEvent{
		Type:       service.EventIdentityProvisioned,
		SubjectID:  identity.ID,
		Role:       p.Role.String(),
		PharmacyID: p.PharmacyID,
	})
	srv.log(ctx).Info("Account provisioned", slog.Any("role", p.Role), slog.String("accountID", identity.ID))

	return identity.ID, nil
}

func (srv *provisioningService) completeProvisioning(ctx context.Context, identity *entity.Identity, p *accountProvisioning) error {
	if p.Prepare != nil {
		if err := p.Prepare(ctx, identity); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	fields := p.Build(identity, now)
	account := &entity.Account{AccountID: identity.ID, Email: identity.Email, Role: p.Role, CreatedAt: now}

	return srv.writeAccountRecords(ctx, p.Role.Collection(), identity.ID, fields, account)
}

// writeAccountRecords writes the role record and the account index in one transaction.
// An existing index record means the identity already holds a role.
func (srv *provisioningService) writeAccountRecords(ctx context.Context, collection, id string, fields map[string]any, account *entity.Account) error {
	err := srv.store.RunInTransaction(ctx, func(tx repository.RecordTx) error {
		existing, err := tx.Get(entity.CollectionAccounts, id)
		if err == nil {
			return errors.Wrapf(domainerrors.ErrEmailInUse, "account already registered as %v", existing.Fields["role"])
		}
		if !errors.Is(err, repository.ErrRecordNotFound) {
			return errors.Wrap(domainerrors.ErrStoreReadFailed.WithDetails(err.Error()), "failed to read account index")
		}

		if err := tx.Create(collection, id, fields); err != nil {
			return errors.Wrap(err, "failed to create role record")
		}
		if err := tx.Create(entity.CollectionAccounts, id, account.Fields()); err != nil {
			return errors.Wrap(err, "failed to create account index")
		}

		return nil
	})
	if err == nil {
		return nil
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, repository.ErrRecordExists) {
		return errors.Wrap(domainerrors.ErrEmailInUse.WithDetails(err.Error()), "account records already exist")
	}

	return storeWriteError(err, "failed to write account records")
}

// compensate removes an identity whose records could not be written.
func (srv *provisioningService) compensate(ctx context.Context, identity *entity.Identity) {
	if err := srv.identity.DeleteIdentity(context.WithoutCancel(ctx), identity.ID); err != nil {
		srv.log(ctx).Error("Failed to delete identity after provisioning failure", slog.String("accountID", identity.ID), slog.String("email", identity.Email), errorAttr(err))

		return
	}

	srv.log(ctx).Warn("Deleted identity after provisioning failure", slog.String("accountID", identity.ID))
}

// ProvisionPharmacy creates a pharmacy, uploading its image first so that a failed
// upload leaves nothing behind.
func (srv *provisioningService) ProvisionPharmacy(ctx context.Context, input usecase.ProvisionPharmacyInput) (*entity.Pharmacy, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Image != nil {
		if err := checkImage(input.Image, srv.maxImageBytes); err != nil {
			return nil, err
		}
	}

	id := srv.store.NewID(entity.CollectionPharmacies)
	srv.log(ctx).Info("Starting pharmacy provisioning", slog.String("pharmacyID", id), slog.String("pharmacyName", input.PharmacyName))

	pharmacy := &entity.Pharmacy{
		PharmacyID:   id,
		PharmacyName: input.PharmacyName,
		Address1:     input.Address1,
		Address2:     input.Address2,
		Town:         input.Town,
		City:         input.City,
		State:        input.State,
		ZipCode:      input.ZipCode,
		Country:      input.Country,
		CreatedAt:    time.Now().UTC(),
	}

	if input.Image != nil {
		url, err := srv.upload(ctx, path.Join(entity.BlobPrefixPharmacies, id, blobName(input.Image.FileName)), input.Image.Data)
		if err != nil {
			return nil, err
		}
		pharmacy.ImageURL = url
	}

	if _, err := srv.store.Create(ctx, entity.CollectionPharmacies, id, pharmacy.Fields()); err != nil {
		srv.log(ctx).Error("Failed to create pharmacy record", slog.String("pharmacyID", id), errorAttr(err))

		return nil, storeWriteError(err, "failed to create pharmacy")
	}

	srv.publish(ctx, &service.DirectoryEvent{
		Type:       service.EventPharmacyProvisioned,
		SubjectID:  id,
		PharmacyID: id,
	})

	return pharmacy, nil
}

// ProvisionCategory creates a category owned by the acting pharmacist's pharmacy.
func (srv *provisioningService) ProvisionCategory(ctx context.Context, principal entity.Principal, input usecase.ProvisionCategoryInput) (*entity.Category, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := requirePharmacist(principal); err != nil {
		return nil, err
	}
	if err := checkImage(input.Image, srv.maxImageBytes); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	srv.log(ctx).Info("Starting category provisioning", slog.String("categoryID", id), slog.String("pharmacyID", principal.PharmacyID))

	url, err := srv.upload(ctx, path.Join(entity.BlobPrefixCategories, id+"-"+blobName(input.Image.FileName)), input.Image.Data)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &entity.Category{
		ID:           id,
		Name:         input.Name,
		Description:  input.Description,
		ImageURL:     url,
		PharmacyID:   principal.PharmacyID,
		ProductCount: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := srv.store.Create(ctx, entity.CollectionCategories, id, category.Fields()); err != nil {
		srv.log(ctx).Error("Failed to create category record", slog.String("categoryID", id), errorAttr(err))

		return nil, storeWriteError(err, "failed to create category")
	}

	srv.publish(ctx, &service.DirectoryEvent{
		Type:       service.EventCategoryProvisioned,
		SubjectID:  id,
		PharmacyID: principal.PharmacyID,
	})

	return category, nil
}

func (srv *provisioningService) upload(ctx context.Context, blobPath string, data []byte) (string, error) {
	url, err := srv.blob.Upload(ctx, blobPath, data)
	if err != nil {
		srv.log(ctx).Error("Failed to upload image", slog.String("path", blobPath), errorAttr(err))

		return "", errors.Wrap(domainerrors.ErrUploadFailed.WithDetails(err.Error()), "failed to upload image")
	}

	return url, nil
}

// publish announces an event. Failures are logged and never fail the flow.
func (srv *provisioningService) publish(ctx context.Context, event *service.DirectoryEvent) {
	if srv.publisher == nil {
		return
	}

	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	event.OccurredAt = time.Now().UTC()

	if err := srv.publisher.PublishDirectoryEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish directory event", slog.String("type", event.Type), slog.String("subjectID", event.SubjectID), errorAttr(err))
	}
}
