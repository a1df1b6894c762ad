package auth

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the profile data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	SetDeleted(ctx context.Context, id string, deleted bool) error
	ListActive(ctx context.Context) ([]User, error)
	DeleteAll(ctx context.Context) error
}
