package firebase

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"testing"
	"time"

	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/repository"

	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type mockAuthClient struct {
	mock.Mock
}

func (m *mockAuthClient) CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
	args := m.Called(ctx, user)
	record, _ := args.Get(0).(*auth.UserRecord)

	return record, args.Error(1)
}

func (m *mockAuthClient) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	args := m.Called(ctx, uid)
	record, _ := args.Get(0).(*auth.UserRecord)

	return record, args.Error(1)
}

func (m *mockAuthClient) UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error) {
	args := m.Called(ctx, uid, user)
	record, _ := args.Get(0).(*auth.UserRecord)

	return record, args.Error(1)
}

func (m *mockAuthClient) RevokeRefreshTokens(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *mockAuthClient) DeleteUser(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

type stubVerifier struct {
	uid string
	err error
}

func (v *stubVerifier) VerifyPassword(context.Context, string, string) (string, error) {
	return v.uid, v.err
}

func newTestProvider(client authClient, verifier passwordVerifier) *identityProvider {
	return &identityProvider{
		auth:     client,
		verifier: verifier,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func userRecord(uid, email string) *auth.UserRecord {
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid, Email: email}}
}

func TestIdentityProvider_CreateIdentity(t *testing.T) {
	client := new(mockAuthClient)
	client.On("CreateUser", mock.Anything, mock.Anything).Return(userRecord("uid-1", "a@example.com"), nil)

	identity, err := newTestProvider(client, &stubVerifier{}).CreateIdentity(context.Background(), "a@example.com", "Secret#123")

	require.NoError(t, err)
	assert.Equal(t, "uid-1", identity.ID)
	assert.Equal(t, "a@example.com", identity.Email)
	client.AssertExpectations(t)
}

func TestIdentityProvider_Authenticate(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		provider := newTestProvider(new(mockAuthClient), &stubVerifier{uid: "uid-1"})

		identity, err := provider.Authenticate(context.Background(), " A@Example.com ", "pw")

		require.NoError(t, err)
		assert.Equal(t, "uid-1", identity.ID)
		assert.Equal(t, "a@example.com", identity.Email)
		assert.NotEmpty(t, identity.SessionID)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		provider := newTestProvider(new(mockAuthClient), &stubVerifier{
			err: &googleapi.Error{Code: http.StatusBadRequest, Message: "INVALID_PASSWORD"},
		})

		_, err := provider.Authenticate(context.Background(), "a@example.com", "wrong")

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("transport failure", func(t *testing.T) {
		provider := newTestProvider(new(mockAuthClient), &stubVerifier{
			err: &googleapi.Error{Code: http.StatusServiceUnavailable},
		})

		_, err := provider.Authenticate(context.Background(), "a@example.com", "pw")

		require.Error(t, err)
		assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestIdentityProvider_Reauthenticate(t *testing.T) {
	tests := []struct {
		name     string
		verifier *stubVerifier
		wantErr  error
	}{
		{name: "matching identity", verifier: &stubVerifier{uid: "uid-1"}},
		{name: "wrong password", verifier: &stubVerifier{err: &googleapi.Error{Code: http.StatusBadRequest}}, wantErr: domainerrors.ErrReauthenticationFailed},
		{name: "different identity", verifier: &stubVerifier{uid: "uid-2"}, wantErr: domainerrors.ErrReauthenticationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockAuthClient)
			client.On("GetUser", mock.Anything, "uid-1").Return(userRecord("uid-1", "a@example.com"), nil)

			err := newTestProvider(client, tt.verifier).Reauthenticate(context.Background(), "uid-1", "pw")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIdentityProvider_SetPasswordAndDelete(t *testing.T) {
	client := new(mockAuthClient)
	client.On("UpdateUser", mock.Anything, "uid-1", mock.Anything).Return(userRecord("uid-1", "a@example.com"), nil)
	client.On("DeleteUser", mock.Anything, "uid-1").Return(nil)
	client.On("RevokeRefreshTokens", mock.Anything, "uid-1").Return(errors.New("backend down"))
	provider := newTestProvider(client, &stubVerifier{})

	require.NoError(t, provider.SetPassword(context.Background(), "uid-1", "N3w#Password"))
	require.NoError(t, provider.DeleteIdentity(context.Background(), "uid-1"))
	assert.Error(t, provider.EndSession(context.Background(), "uid-1"))
	client.AssertExpectations(t)
}

func TestIdentityProvider_VerifySession(t *testing.T) {
	now := time.Now()
	startedAt := strconv.FormatInt(now.Unix(), 10)

	tests := []struct {
		name         string
		sessionID    string
		revokedAfter time.Time
		wantErr      error
	}{
		{name: "session after revocation", sessionID: startedAt, revokedAfter: now.Add(-time.Hour)},
		{name: "session before revocation", sessionID: startedAt, revokedAfter: now.Add(time.Hour), wantErr: domainerrors.ErrUnauthorized},
		{name: "malformed session id", sessionID: "not-a-time", wantErr: domainerrors.ErrUnauthorized},
		{name: "missing session id", sessionID: "", wantErr: domainerrors.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := userRecord("uid-1", "a@example.com")
			record.TokensValidAfterMillis = tt.revokedAfter.UnixMilli()
			client := new(mockAuthClient)
			client.On("GetUser", mock.Anything, "uid-1").Return(record, nil).Maybe()

			err := newTestProvider(client, &stubVerifier{}).VerifySession(context.Background(), "uid-1", tt.sessionID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIdentityProvider_UpdateEmail(t *testing.T) {
	client := new(mockAuthClient)
	client.On("UpdateUser", mock.Anything, "uid-1", mock.Anything).Return(userRecord("uid-1", "b@example.com"), nil).Once()
	client.On("UpdateUser", mock.Anything, "uid-2", mock.Anything).Return(nil, errors.New("backend down")).Once()
	provider := newTestProvider(client, &stubVerifier{})

	require.NoError(t, provider.UpdateEmail(context.Background(), "uid-1", "b@example.com"))

	err := provider.UpdateEmail(context.Background(), "uid-2", "c@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrEmailInUse)
	client.AssertExpectations(t)
}

func TestTranslateErrors(t *testing.T) {
	assert.ErrorIs(t, translateReadError(status.Error(codes.NotFound, "missing"), "users", "u1"), repository.ErrRecordNotFound)
	assert.NotErrorIs(t, translateReadError(status.Error(codes.Unavailable, "down"), "users", "u1"), repository.ErrRecordNotFound)
	assert.ErrorIs(t, translateWriteError(status.Error(codes.AlreadyExists, "taken"), "accounts", "a1"), repository.ErrRecordExists)
	assert.NotErrorIs(t, translateWriteError(status.Error(codes.Internal, "boom"), "accounts", "a1"), repository.ErrRecordExists)
}
