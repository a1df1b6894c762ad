package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mshoaibkhan0786/Mess-Site/internal/audit"
)

var ErrAccountRevoked = errors.New("access denied: account has been revoked")

// Config carries the named secrets the login machine branches on. The owner
// recovery code is a single privilege-escalation bypass inherited from the
// original system; it lives here, not in string literals.
type Config struct {
	EmailDomain       string
	OwnerRecoveryCode string
	OwnerName         string
}

// Session is the outcome of a successful login.
type Session struct {
	Token    string `json:"token"`
	User     *User  `json:"user"`
	Repaired bool   `json:"repaired"`
}

type Service struct {
	users      UserRepository
	identities IdentityProvider
	logs       audit.Repository
	cfg        Config
	now        func() time.Time
}

func NewService(users UserRepository, identities IdentityProvider, logs audit.Repository, cfg Config) *Service {
	return &Service{users: users, identities: identities, logs: logs, cfg: cfg, now: time.Now}
}

// Repairs happen during login, so the repaired account is its own actor.
func (s *Service) auditRepair(ctx context.Context, user *User, detail string) {
	err := s.logs.Append(ctx, &audit.Entry{
		Timestamp:  s.now(),
		Action:     audit.ActionProfileRepaired,
		Detail:     detail,
		MessID:     user.MessID,
		ActorEmail: user.Email,
		ActorName:  user.Name,
	})
	if err != nil {
		log.Printf("audit append failed (profile repair): %v", err)
	}
}

// Login runs the access-code state machine: derive the identity, verify the
// secret with the provider, then reconcile the profile record. Inconsistent
// states (missing profile, soft-deleted owner) are healed in place; a
// revoked non-owner account ends the just-established provider session and
// fails.
func (s *Service) Login(ctx context.Context, code string) (*Session, error) {
	email := DeriveEmail(code, s.cfg.EmailDomain)

	if err := s.identities.SignIn(ctx, email, code); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	repaired := false
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		// Identity exists but the profile is gone. Recreate it rather
		// than locking the account out.
		isOwner := code == s.cfg.OwnerRecoveryCode
		user = &User{
			ID:         uuid.New().String(),
			Email:      email,
			Name:       "Recovered Admin",
			Role:       RoleMessAdmin,
			MessID:     nil,
			AccessCode: code,
			Recovered:  true,
			CreatedAt:  s.now(),
		}
		if isOwner {
			user.Name = s.cfg.OwnerName
			user.Role = RoleSuperAdmin
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		repaired = true
		log.Printf("profile missing for %s, recreated (role=%s)", email, user.Role)
		s.auditRepair(ctx, user, fmt.Sprintf("profile missing for %s, recreated (role=%s)", email, user.Role))

	case err != nil:
		return nil, err

	case user.Deleted:
		if code != s.cfg.OwnerRecoveryCode {
			_ = s.identities.SignOut(ctx, email)
			return nil, ErrAccountRevoked
		}
		// Owner bypass: the fixed owner account reactivates itself.
		if err := s.users.SetDeleted(ctx, user.ID, false); err != nil {
			return nil, err
		}
		user.Deleted = false
		repaired = true
		log.Printf("owner account %s was deleted, reactivated", email)
		s.auditRepair(ctx, user, fmt.Sprintf("owner account %s was deleted, reactivated on login", email))
	}

	messID := ""
	if user.MessID != nil {
		messID = *user.MessID
	}
	token, err := GenerateToken(user.ID, user.Email, user.Name, user.Role, messID)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: user, Repaired: repaired}, nil
}

// CheckSession is the passive revocation check run against an existing
// session: if the profile has been soft-deleted (or removed) since the token
// was issued, the session must not survive.
func (s *Service) CheckSession(ctx context.Context, userID string) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrAccountRevoked
	}
	if err != nil {
		return nil, err
	}
	if user.Deleted {
		_ = s.identities.SignOut(ctx, user.Email)
		return nil, ErrAccountRevoked
	}
	return user, nil
}
