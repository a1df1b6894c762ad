package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mshoaibkhan0786/Mess-Site/internal/audit"
)

func newTestService(t *testing.T) (*Service, *InMemoryUserRepository, *InMemoryIdentityProvider) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	users := NewInMemoryUserRepository()
	identities := NewInMemoryIdentityProvider()
	cfg := Config{
		EmailDomain:       "mitmess.com",
		OwnerRecoveryCode: "LALA HI LALA",
		OwnerName:         "M Shoaib Khan",
	}
	return NewService(users, identities, audit.NewInMemoryRepository(), cfg), users, identities
}

func seedAccount(t *testing.T, users *InMemoryUserRepository, identities *InMemoryIdentityProvider, code, role string) *User {
	t.Helper()
	ctx := context.Background()
	email := DeriveEmail(code, "mitmess.com")
	if err := identities.Create(ctx, email, code); err != nil {
		t.Fatalf("seed identity: %v", err)
	}
	user := &User{
		ID:         "uid-" + Sanitize(code),
		Email:      email,
		Name:       "Seeded",
		Role:       role,
		AccessCode: code,
		CreatedAt:  time.Now(),
	}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	svc, users, identities := newTestService(t)
	seedAccount(t, users, identities, "Boss Man", RoleMessAdmin)

	session, err := svc.Login(context.Background(), "Boss Man")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a signed token")
	}
	if session.Repaired {
		t.Fatal("consistent account must not report a repair")
	}

	claims, err := ValidateToken(session.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "boss_man@mitmess.com" || claims.Role != RoleMessAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody here")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginHealsMissingProfile(t *testing.T) {
	svc, users, identities := newTestService(t)
	// Identity exists, profile record does not.
	email := DeriveEmail("Ghost Admin", "mitmess.com")
	if err := identities.Create(context.Background(), email, "Ghost Admin"); err != nil {
		t.Fatal(err)
	}

	session, err := svc.Login(context.Background(), "Ghost Admin")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !session.Repaired {
		t.Fatal("expected the profile to be repaired")
	}
	if session.User.Role != RoleMessAdmin || session.User.Name != "Recovered Admin" {
		t.Fatalf("recovered profile = %+v", session.User)
	}
	if !session.User.Recovered {
		t.Fatal("recovered flag not set")
	}

	if _, err := users.FindByEmail(context.Background(), email); err != nil {
		t.Fatalf("repaired profile not persisted: %v", err)
	}
}

func TestLoginRepairIsAudited(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := NewInMemoryUserRepository()
	identities := NewInMemoryIdentityProvider()
	logs := audit.NewInMemoryRepository()
	svc := NewService(users, identities, logs, Config{EmailDomain: "mitmess.com"})

	email := DeriveEmail("Ghost Admin", "mitmess.com")
	if err := identities.Create(context.Background(), email, "Ghost Admin"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login(context.Background(), "Ghost Admin"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if len(logs.Entries) != 1 || logs.Entries[0].Action != audit.ActionProfileRepaired {
		t.Fatalf("audit entries = %+v", logs.Entries)
	}
	if logs.Entries[0].ActorEmail != email {
		t.Fatalf("repair actor = %q, want %q", logs.Entries[0].ActorEmail, email)
	}
}

func TestLoginHealsMissingOwnerProfile(t *testing.T) {
	svc, _, identities := newTestService(t)
	email := DeriveEmail("LALA HI LALA", "mitmess.com")
	if err := identities.Create(context.Background(), email, "LALA HI LALA"); err != nil {
		t.Fatal(err)
	}

	session, err := svc.Login(context.Background(), "LALA HI LALA")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.User.Role != RoleSuperAdmin {
		t.Fatalf("owner recovered as %s, want super_admin", session.User.Role)
	}
	if session.User.Name != "M Shoaib Khan" {
		t.Fatalf("owner name = %q", session.User.Name)
	}
}

func TestLoginRevokedAccount(t *testing.T) {
	svc, users, identities := newTestService(t)
	user := seedAccount(t, users, identities, "Fired Admin", RoleMessAdmin)
	if err := users.SetDeleted(context.Background(), user.ID, true); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Login(context.Background(), "Fired Admin")
	if !errors.Is(err, ErrAccountRevoked) {
		t.Fatalf("err = %v, want ErrAccountRevoked", err)
	}
	if identities.SignedIn[user.Email] {
		t.Fatal("revoked login left a provider session behind")
	}
}

func TestLoginReactivatesDeletedOwner(t *testing.T) {
	svc, users, identities := newTestService(t)
	owner := seedAccount(t, users, identities, "LALA HI LALA", RoleSuperAdmin)
	if err := users.SetDeleted(context.Background(), owner.ID, true); err != nil {
		t.Fatal(err)
	}

	session, err := svc.Login(context.Background(), "LALA HI LALA")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.User.Deleted {
		t.Fatal("owner still marked deleted")
	}
	if !session.Repaired {
		t.Fatal("owner reactivation must report a repair")
	}

	stored, err := users.GetByID(context.Background(), owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Deleted {
		t.Fatal("reactivation not persisted")
	}
}

func TestCheckSessionRevoked(t *testing.T) {
	svc, users, identities := newTestService(t)
	user := seedAccount(t, users, identities, "Boss Man", RoleMessAdmin)

	if _, err := svc.Login(context.Background(), "Boss Man"); err != nil {
		t.Fatal(err)
	}
	if err := users.SetDeleted(context.Background(), user.ID, true); err != nil {
		t.Fatal(err)
	}

	_, err := svc.CheckSession(context.Background(), user.ID)
	if !errors.Is(err, ErrAccountRevoked) {
		t.Fatalf("err = %v, want ErrAccountRevoked", err)
	}
	if identities.SignedIn[user.Email] {
		t.Fatal("revoked session left a provider session behind")
	}
}

func TestCheckSessionMissingProfile(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CheckSession(context.Background(), "no-such-id")
	if !errors.Is(err, ErrAccountRevoked) {
		t.Fatalf("err = %v, want ErrAccountRevoked", err)
	}
}
