package firebase

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pharmanet/config"
	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// authClient is the part of the Firebase admin auth client the provider uses.
type authClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	DeleteUser(ctx context.Context, uid string) error
}

// passwordVerifier checks an email/password pair and returns the identity's uid.
type passwordVerifier interface {
	VerifyPassword(ctx context.Context, email, password string) (string, error)
}

// identityProvider implements service.IdentityProvider on Firebase Authentication.
// The admin SDK cannot check passwords, so sign-in goes through the Identity Toolkit API.
type identityProvider struct {
	auth     authClient
	verifier passwordVerifier
	logger   *slog.Logger
}

// IdentityProviderParams holds dependencies for the Firebase identity provider, injected by Fx.
type IdentityProviderParams struct {
	fx.In

	Ctx    context.Context
	App    *firebase.App
	Config *config.Config
	Logger *slog.Logger
}

// NewIdentityProvider builds the provider from the Firebase app and the web API key.
func NewIdentityProvider(params IdentityProviderParams) (service.IdentityProvider, error) {
	client, err := params.App.Auth(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open firebase auth client")
	}

	toolkit, err := identitytoolkit.NewService(params.Ctx, option.WithAPIKey(params.Config.Identity.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open identity toolkit client")
	}

	return &identityProvider{
		auth:     client,
		verifier: &toolkitVerifier{relyingParty: toolkit.Relyingparty},
		logger:   params.Logger,
	}, nil
}

func (p *identityProvider) CreateIdentity(ctx context.Context, email, password string) (*entity.Identity, error) {
	user, err := p.auth.CreateUser(ctx, (&auth.UserToCreate{}).Email(email).Password(password))
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, domainerrors.ErrEmailInUse.WrapMessage("identity already exists")
		}

		return nil, errors.Wrap(err, "failed to create firebase user")
	}

	return &entity.Identity{ID: user.UID, Email: user.Email}, nil
}

func (p *identityProvider) Authenticate(ctx context.Context, email, password string) (*entity.Identity, error) {
	uid, err := p.verifier.VerifyPassword(ctx, email, password)
	if err != nil {
		if isCredentialRejection(err) {
			return nil, domainerrors.ErrInvalidCredentials.WithDetails(err.Error())
		}

		return nil, errors.Wrap(err, "failed to verify password")
	}

	// Firebase has no server-side session ids; the login second stands in for one
	// and is compared against the user's token revocation time.
	return &entity.Identity{
		ID:        uid,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		SessionID: strconv.FormatInt(time.Now().Unix(), 10),
	}, nil
}

// VerifySession rejects sessions that started before the user's refresh tokens were revoked.
func (p *identityProvider) VerifySession(ctx context.Context, id, sessionID string) error {
	startedAt, err := strconv.ParseInt(sessionID, 10, 64)
	if err != nil {
		return domainerrors.ErrUnauthorized.WrapMessage("invalid session id")
	}

	user, err := p.auth.GetUser(ctx, id)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return domainerrors.ErrUnauthorized.WrapMessage("identity not found")
		}

		return errors.Wrap(err, "failed to load firebase user")
	}
	if startedAt*1000 < user.TokensValidAfterMillis {
		return domainerrors.ErrUnauthorized.WrapMessage("session revoked")
	}

	return nil
}

// EndSession revokes the identity's refresh tokens. An unknown identity has no session to end.
func (p *identityProvider) EndSession(ctx context.Context, id string) error {
	if err := p.auth.RevokeRefreshTokens(ctx, id); err != nil {
		if auth.IsUserNotFound(err) {
			return nil
		}

		return errors.Wrap(err, "failed to revoke refresh tokens")
	}

	return nil
}

func (p *identityProvider) Reauthenticate(ctx context.Context, id, password string) error {
	user, err := p.auth.GetUser(ctx, id)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return domainerrors.ErrReauthenticationFailed.WrapMessage("identity not found")
		}

		return errors.Wrap(err, "failed to load firebase user")
	}

	uid, err := p.verifier.VerifyPassword(ctx, user.Email, password)
	if err != nil {
		if isCredentialRejection(err) {
			return domainerrors.ErrReauthenticationFailed.WithDetails(err.Error())
		}

		return errors.Wrap(err, "failed to verify password")
	}
	if uid != id {
		return domainerrors.ErrReauthenticationFailed.WrapMessage("identity mismatch")
	}

	return nil
}

func (p *identityProvider) SetPassword(ctx context.Context, id, newPassword string) error {
	if _, err := p.auth.UpdateUser(ctx, id, (&auth.UserToUpdate{}).Password(newPassword)); err != nil {
		return errors.Wrap(err, "failed to update firebase user password")
	}

	return nil
}

func (p *identityProvider) UpdateEmail(ctx context.Context, id, email string) error {
	if _, err := p.auth.UpdateUser(ctx, id, (&auth.UserToUpdate{}).Email(email)); err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return domainerrors.ErrEmailInUse.WrapMessage("email belongs to another identity")
		}

		return errors.Wrap(err, "failed to update firebase user email")
	}

	return nil
}

func (p *identityProvider) DeleteIdentity(ctx context.Context, id string) error {
	if err := p.auth.DeleteUser(ctx, id); err != nil {
		if auth.IsUserNotFound(err) {
			p.logger.Warn("Identity already absent", slog.String("identity_id", id))

			return nil
		}

		return errors.Wrap(err, "failed to delete firebase user")
	}

	return nil
}

// isCredentialRejection reports whether the toolkit refused the credentials
// rather than failing to answer.
func isCredentialRejection(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.Code == http.StatusBadRequest || apiErr.Code == http.StatusUnauthorized
}

// toolkitVerifier checks passwords with the relyingparty verifyPassword endpoint.
type toolkitVerifier struct {
	relyingParty *identitytoolkit.RelyingpartyService
}

func (v *toolkitVerifier) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	resp, err := v.relyingParty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return "", err
	}

	return resp.LocalId, nil
}
