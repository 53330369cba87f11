package postgres

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/service"
	"pharmanet/internal/infra/persistence/model"
	"pharmanet/internal/infra/persistence/postgres/query"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// identityProvider is the self-hosted IdentityProvider: bcrypt credentials in
// 'identities' and open sessions in 'identity_sessions'.
type identityProvider struct {
	db     *gorm.DB
	hasher service.PasswordHasher
	logger *slog.Logger
}

// IdentityProviderParams holds dependencies for the local identity provider, injected by Fx.
type IdentityProviderParams struct {
	fx.In

	DB     *gorm.DB
	Hasher service.PasswordHasher
	Logger *slog.Logger
}

// NewIdentityProvider is the constructor for identityProvider.
func NewIdentityProvider(params IdentityProviderParams) service.IdentityProvider {
	return &identityProvider{
		db:     params.DB,
		hasher: params.Hasher,
		logger: params.Logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateIdentity stores a new identity with a hashed password.
func (p *identityProvider) CreateIdentity(ctx context.Context, email, password string) (*entity.Identity, error) {
	hash, err := p.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	row := &model.IdentityModel{
		ID:           uuid.New(),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
	}

	q := query.Use(p.db)
	if err := q.IdentityModel.WithContext(ctx).Create(row); err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, domainerrors.ErrEmailInUse.WrapMessage("identity already exists")
		}

		return nil, errors.Wrap(err, "failed to create identity")
	}

	return &entity.Identity{ID: row.ID.String(), Email: row.Email}, nil
}

// Authenticate checks the password and opens a session.
func (p *identityProvider) Authenticate(ctx context.Context, email, password string) (*entity.Identity, error) {
	q := query.Use(p.db)
	row, err := q.IdentityModel.WithContext(ctx).Where(q.IdentityModel.Email.Eq(normalizeEmail(email))).Take()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to find identity")
	}

	if !p.hasher.Check(password, row.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	session := &model.SessionModel{ID: uuid.New(), IdentityID: row.ID, CreatedAt: time.Now().UTC()}
	if err := q.SessionModel.WithContext(ctx).Create(session); err != nil {
		return nil, errors.Wrap(err, "failed to open session")
	}

	return &entity.Identity{ID: row.ID.String(), Email: row.Email, SessionID: session.ID.String()}, nil
}

// VerifySession requires an open session row owned by the identity.
func (p *identityProvider) VerifySession(ctx context.Context, id, sessionID string) error {
	identityID, err := uuid.Parse(id)
	if err != nil {
		return domainerrors.ErrUnauthorized.WrapMessage("invalid identity id")
	}
	sessionUUID, err := uuid.Parse(sessionID)
	if err != nil {
		return domainerrors.ErrUnauthorized.WrapMessage("invalid session id")
	}

	q := query.Use(p.db)
	s := q.SessionModel
	count, err := s.WithContext(ctx).
		Where(s.ID.Eq(sessionUUID), s.IdentityID.Eq(identityID), s.EndedAt.IsNull()).
		Count()
	if err != nil {
		return errors.Wrap(err, "failed to look up session")
	}
	if count == 0 {
		return domainerrors.ErrUnauthorized.WrapMessage("session ended")
	}

	return nil
}

// EndSession closes every open session of the identity.
func (p *identityProvider) EndSession(ctx context.Context, id string) error {
	identityID, err := uuid.Parse(id)
	if err != nil {
		// Ids that cannot exist have no sessions to end.
		return nil
	}

	q := query.Use(p.db)
	s := q.SessionModel
	_, err = s.WithContext(ctx).
		Where(s.IdentityID.Eq(identityID), s.EndedAt.IsNull()).
		Update(s.EndedAt, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "failed to end sessions")
	}

	return nil
}

// Reauthenticate re-checks the password of an identity by id.
func (p *identityProvider) Reauthenticate(ctx context.Context, id, password string) error {
	row, err := p.findByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrReauthenticationFailed.WrapMessage("unknown identity")
		}

		return err
	}

	if !p.hasher.Check(password, row.PasswordHash) {
		return domainerrors.ErrReauthenticationFailed.WrapMessage("password mismatch")
	}

	return nil
}

// SetPassword replaces the stored hash.
func (p *identityProvider) SetPassword(ctx context.Context, id, newPassword string) error {
	row, err := p.findByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := p.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	q := query.Use(p.db)
	i := q.IdentityModel
	if _, err := i.WithContext(ctx).Where(i.ID.Eq(row.ID)).Update(i.PasswordHash, hash); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	return nil
}

// UpdateEmail changes the login email. A taken email reports ErrEmailInUse.
func (p *identityProvider) UpdateEmail(ctx context.Context, id, email string) error {
	row, err := p.findByID(ctx, id)
	if err != nil {
		return err
	}

	q := query.Use(p.db)
	i := q.IdentityModel
	if _, err := i.WithContext(ctx).Where(i.ID.Eq(row.ID)).Update(i.Email, normalizeEmail(email)); err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailInUse.WrapMessage("email belongs to another identity")
		}

		return errors.Wrap(err, "failed to update email")
	}

	return nil
}

// DeleteIdentity removes the identity and its sessions.
func (p *identityProvider) DeleteIdentity(ctx context.Context, id string) error {
	identityID, err := uuid.Parse(id)
	if err != nil {
		return errors.Wrap(domainerrors.ErrNotFound.WithDetails(id), "invalid identity id")
	}

	return execute(ctx, p.db, func(tx *gorm.DB) error {
		q := query.Use(tx)
		if _, err := q.SessionModel.WithContext(ctx).Where(q.SessionModel.IdentityID.Eq(identityID)).Delete(); err != nil {
			return errors.Wrap(err, "failed to delete sessions")
		}
		if _, err := q.IdentityModel.WithContext(ctx).Where(q.IdentityModel.ID.Eq(identityID)).Delete(); err != nil {
			return errors.Wrap(err, "failed to delete identity")
		}

		p.logger.Info("Deleted identity", slog.String("accountID", id))

		return nil
	})
}

func (p *identityProvider) findByID(ctx context.Context, id string) (*model.IdentityModel, error) {
	identityID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound.WithDetails(id), "invalid identity id")
	}

	q := query.Use(p.db)
	row, err := q.IdentityModel.WithContext(ctx).Where(q.IdentityModel.ID.Eq(identityID)).Take()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound.WithDetails(id), "identity not found")
		}

		return nil, errors.Wrap(err, "failed to find identity")
	}

	return row, nil
}
