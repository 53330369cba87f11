// Package service defines interfaces for the external collaborators the use cases orchestrate.
package service

import (
	"context"

	"pharmanet/internal/domain/entity"
)

// SessionVerifier checks that a session opened by Authenticate is still live.
type SessionVerifier interface {
	// VerifySession reports ErrUnauthorized when the session was ended or
	// the identity no longer exists.
	VerifySession(ctx context.Context, id, sessionID string) error
}

// IdentityProvider manages email/password identities. Implementations translate
// provider failures into domain errors: ErrEmailInUse, ErrInvalidCredentials
// and ErrReauthenticationFailed.
type IdentityProvider interface {
	SessionVerifier

	// CreateIdentity registers a new identity and returns its stable id.
	CreateIdentity(ctx context.Context, email, password string) (*entity.Identity, error)

	// Authenticate verifies credentials and opens a session for the identity.
	// The returned identity carries the new session's id.
	Authenticate(ctx context.Context, email, password string) (*entity.Identity, error)

	// EndSession terminates every session of the identity. Ending an already
	// ended session is not an error.
	EndSession(ctx context.Context, id string) error

	// Reauthenticate re-checks the current password of a signed-in identity.
	Reauthenticate(ctx context.Context, id, password string) error

	// SetPassword replaces the identity's credential.
	SetPassword(ctx context.Context, id, newPassword string) error

	// UpdateEmail moves the identity to a new login email.
	UpdateEmail(ctx context.Context, id, email string) error

	// DeleteIdentity removes the identity. Only used to compensate a failed provisioning.
	DeleteIdentity(ctx context.Context, id string) error
}
