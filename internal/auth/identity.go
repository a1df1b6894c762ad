package auth

import (
	"context"
	"errors"
)

var (
	ErrEmailInUse         = errors.New("identity already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// IdentityProvider is the external authentication collaborator: it owns the
// (email, secret) credential records and nothing else. Identity records are
// never hard-deleted; revocation happens on the profile.
type IdentityProvider interface {
	Create(ctx context.Context, email, secret string) error
	SignIn(ctx context.Context, email, secret string) error
	SignOut(ctx context.Context, email string) error
}
