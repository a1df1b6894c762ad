package accounts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mshoaibkhan0786/Mess-Site/internal/audit"
	"github.com/mshoaibkhan0786/Mess-Site/internal/auth"
	"github.com/mshoaibkhan0786/Mess-Site/internal/mess"
)

var (
	ErrValidation     = errors.New("missing required fields")
	ErrInvalidMess    = errors.New("mess not found")
	ErrInvalidRole    = errors.New("invalid role")
	ErrOwnerProtected = errors.New("owner account cannot be deleted")
)

// Actor identifies the admin performing an operation, for audit entries.
type Actor struct {
	Email string
	Name  string
}

// Account is a profile annotated with its resolved mess name for listing.
type Account struct {
	auth.User
	MessName string `json:"messName,omitempty"`
}

// CreateResult reports what the create operation actually did. Creating an
// account replaces the caller's provider session, so relogin is always
// required afterwards.
type CreateResult struct {
	User            *auth.User `json:"user"`
	Reactivated     bool       `json:"reactivated"`
	ReloginRequired bool       `json:"reloginRequired"`
}

type Service struct {
	users      auth.UserRepository
	identities auth.IdentityProvider
	messes     mess.Repository
	logs       audit.Repository
	cfg        auth.Config
	now        func() time.Time
}

func NewService(users auth.UserRepository, identities auth.IdentityProvider, messes mess.Repository, logs audit.Repository, cfg auth.Config) *Service {
	return &Service{
		users:      users,
		identities: identities,
		messes:     messes,
		logs:       logs,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *Service) audit(ctx context.Context, actor Actor, action, detail string, messID *string) {
	err := s.logs.Append(ctx, &audit.Entry{
		Timestamp:  s.now(),
		Action:     action,
		Detail:     detail,
		MessID:     messID,
		ActorEmail: actor.Email,
		ActorName:  actor.Name,
	})
	if err != nil {
		log.Printf("audit append failed (%s): %v", action, err)
	}
}

// Create registers a new admin account bound to a role, or repairs an
// existing one when the derived email is already known to the identity
// provider. Both writes in the repair path are sequential: the profile
// update depends on knowing whether the profile exists.
func (s *Service) Create(ctx context.Context, actor Actor, code, name, role string, messID *string) (*CreateResult, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" || name == "" {
		return nil, ErrValidation
	}

	switch role {
	case auth.RoleSuperAdmin:
		messID = nil
	case auth.RoleMessAdmin:
		if messID == nil || *messID == "" {
			return nil, ErrValidation
		}
		if _, err := s.messes.GetByID(ctx, *messID); err != nil {
			if errors.Is(err, mess.ErrNotFound) {
				return nil, ErrInvalidMess
			}
			return nil, err
		}
	default:
		return nil, ErrInvalidRole
	}

	email := auth.DeriveEmail(code, s.cfg.EmailDomain)

	err := s.identities.Create(ctx, email, code)
	switch {
	case errors.Is(err, auth.ErrEmailInUse):
		return s.repairExisting(ctx, actor, email, code, name, role, messID)
	case err != nil:
		return nil, err
	}

	user := &auth.User{
		ID:         uuid.New().String(),
		Email:      email,
		Name:       name,
		Role:       role,
		MessID:     messID,
		AccessCode: code,
		Deleted:    false,
		CreatedAt:  s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, audit.ActionAccountCreated,
		fmt.Sprintf("created account %s (role=%s)", email, role), messID)

	// The provider's create call authenticates as the new account; the
	// caller's session does not survive it.
	_ = s.identities.SignOut(ctx, actor.Email)

	return &CreateResult{User: user, ReloginRequired: true}, nil
}

// repairExisting handles the identity-already-registered branch: update the
// profile in place if it exists (reactivation), recreate it if it vanished.
func (s *Service) repairExisting(ctx context.Context, actor Actor, email, code, name, role string, messID *string) (*CreateResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		user = &auth.User{
			ID:         uuid.New().String(),
			Email:      email,
			Name:       name,
			Role:       role,
			MessID:     messID,
			AccessCode: code,
			Deleted:    false,
			Recovered:  true,
			CreatedAt:  s.now(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		s.audit(ctx, actor, audit.ActionAccountCreated,
			fmt.Sprintf("recreated missing profile for %s (role=%s)", email, role), messID)

	case err != nil:
		return nil, err

	default:
		user.Name = name
		user.Role = role
		user.MessID = messID
		user.Deleted = false
		user.AccessCode = code
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
		s.audit(ctx, actor, audit.ActionAccountUpdated,
			fmt.Sprintf("reactivated account %s (role=%s)", email, role), messID)
	}

	_ = s.identities.SignOut(ctx, actor.Email)

	return &CreateResult{User: user, Reactivated: true, ReloginRequired: true}, nil
}

// Delete soft-deletes an account. The identity record and the account's
// mess data are untouched, so the account can later be reactivated. The
// fixed owner account is refused.
func (s *Service) Delete(ctx context.Context, actor Actor, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.AccessCode == s.cfg.OwnerRecoveryCode {
		return ErrOwnerProtected
	}

	if err := s.users.SetDeleted(ctx, userID, true); err != nil {
		return err
	}

	s.audit(ctx, actor, audit.ActionAccountDeleted,
		fmt.Sprintf("revoked account %s", user.Email), user.MessID)
	return nil
}

// List returns all non-deleted accounts, each annotated with its resolved
// mess name when bound to one.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, len(users))
	for _, u := range users {
		acc := Account{User: u}
		if u.MessID != nil {
			if m, err := s.messes.GetByID(ctx, *u.MessID); err == nil {
				acc.MessName = m.Name
			}
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// RecentAudit returns the newest audit entries for display.
func (s *Service) RecentAudit(ctx context.Context) ([]audit.Entry, error) {
	return s.logs.Recent(ctx)
}

// Reset is the emergency recovery path: wipe every profile and bootstrap a
// fresh super-admin from the given code. An already-registered identity is
// reused, permissions restored.
func (s *Service) Reset(ctx context.Context, actor Actor, code string) (*auth.User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrValidation
	}

	if err := s.users.DeleteAll(ctx); err != nil {
		return nil, err
	}

	email := auth.DeriveEmail(code, s.cfg.EmailDomain)
	user := &auth.User{
		ID:         uuid.New().String(),
		Email:      email,
		Name:       s.cfg.OwnerName,
		Role:       auth.RoleSuperAdmin,
		MessID:     nil,
		AccessCode: code,
		CreatedAt:  s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.identities.Create(ctx, email, code); err != nil && !errors.Is(err, auth.ErrEmailInUse) {
		return nil, err
	}

	s.audit(ctx, actor, audit.ActionSystemReset,
		fmt.Sprintf("system reset, super admin bootstrapped as %s", email), nil)

	return user, nil
}
