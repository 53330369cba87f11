package impl

import (
	"context"
	"log/slog"

	deliverycontext "pharmanet/internal/delivery/context"
	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/repository"
	"pharmanet/internal/domain/service"
	"pharmanet/internal/errors"
	"pharmanet/internal/usecase"

	"go.uber.org/fx"
)

// accessService implements the AccessUsecase interface.
type accessService struct {
	store    repository.RecordStore
	identity service.IdentityProvider
	logger   *slog.Logger
}

// AccessServiceParams holds dependencies for AccessService, injected by Fx.
type AccessServiceParams struct {
	fx.In

	Store    repository.RecordStore
	Identity service.IdentityProvider
	Logger   *slog.Logger
}

// NewAccessService is the constructor for accessService.
func NewAccessService(params AccessServiceParams) usecase.AccessUsecase {
	return &accessService{
		store:    params.Store,
		identity: params.Identity,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// LoginAdministrator signs in an identity that holds an administrator record.
func (srv *accessService) LoginAdministrator(ctx context.Context, input usecase.LoginInput) (*entity.Profile, error) {
	return srv.login(ctx, entity.RoleAdmin, input)
}

// LoginPharmacist signs in an identity that holds a pharmacist record.
func (srv *accessService) LoginPharmacist(ctx context.Context, input usecase.LoginInput) (*entity.Profile, error) {
	return srv.login(ctx, entity.RolePharmacist, input)
}

// LoginCustomer signs in an identity that holds a customer record.
func (srv *accessService) LoginCustomer(ctx context.Context, input usecase.LoginInput) (*entity.Profile, error) {
	return srv.login(ctx, entity.RoleUser, input)
}

// login passes the identity gate and then the role gate. When the role gate
// rejects, the session opened by the identity gate is ended before returning.
func (srv *accessService) login(ctx context.Context, role entity.Role, input usecase.LoginInput) (*entity.Profile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting login", slog.Any("role", role), slog.String("email", input.Email))

	identity, err := srv.identity.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		srv.log(ctx).Warn("Identity gate rejected login", slog.Any("role", role), slog.String("email", input.Email), errorAttr(err))

		return nil, errors.Wrap(err, "failed to authenticate")
	}

	record, err := srv.store.Get(ctx, role.Collection(), identity.ID)
	if err != nil {
		gateErr := errors.Wrapf(domainerrors.ErrNotAuthorizedForRole, "no %s record for account", role)
		if !errors.Is(err, repository.ErrRecordNotFound) {
			gateErr = errors.Wrap(domainerrors.ErrStoreReadFailed.WithDetails(err.Error()), "failed to read role record")
		}

		return nil, srv.rejectSession(ctx, identity, gateErr)
	}

	profile, err := entity.NewProfile(*identity, role, record.Fields)
	if err != nil {
		return nil, srv.rejectSession(ctx, identity, errors.Wrap(domainerrors.ErrInternalError.WithDetails(err.Error()), "failed to decode role record"))
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("role", role), slog.String("accountID", identity.ID))

	return profile, nil
}

// rejectSession ends the identity session and returns the gate error.
func (srv *accessService) rejectSession(ctx context.Context, identity *entity.Identity, gateErr error) error {
	srv.log(ctx).Warn("Role gate rejected login", slog.String("accountID", identity.ID), errorAttr(gateErr))

	if err := srv.identity.EndSession(ctx, identity.ID); err != nil {
		srv.log(ctx).Error("Failed to end rejected session", slog.String("accountID", identity.ID), errorAttr(err))

		return errors.Join(gateErr, errors.Wrap(err, "failed to end session"))
	}

	return gateErr
}

// Logout ends every session of the principal's identity.
func (srv *accessService) Logout(ctx context.Context, principal entity.Principal) error {
	if err := requirePrincipal(principal); err != nil {
		return err
	}

	if err := srv.identity.EndSession(ctx, principal.AccountID); err != nil {
		return errors.Wrap(err, "failed to end session")
	}

	srv.log(ctx).Info("Logged out", slog.String("accountID", principal.AccountID))

	return nil
}

// ChangePassword re-verifies the current password before replacing it.
func (srv *accessService) ChangePassword(ctx context.Context, principal entity.Principal, input usecase.ChangePasswordInput) error {
	if err := requirePrincipal(principal); err != nil {
		return err
	}
	if err := validateInput(input); err != nil {
		return err
	}

	srv.log(ctx).Info("Changing password", slog.String("accountID", principal.AccountID))

	if err := srv.identity.Reauthenticate(ctx, principal.AccountID, input.CurrentPassword); err != nil {
		srv.log(ctx).Warn("Reauthentication failed", slog.String("accountID", principal.AccountID), errorAttr(err))

		return errors.Wrap(err, "failed to reauthenticate")
	}

	if err := srv.identity.SetPassword(ctx, principal.AccountID, input.NewPassword); err != nil {
		return errors.Wrap(err, "failed to set password")
	}

	return nil
}
