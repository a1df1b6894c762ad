package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshoaibkhan0786/Mess-Site/internal/audit"
	"github.com/mshoaibkhan0786/Mess-Site/internal/auth"
	"github.com/mshoaibkhan0786/Mess-Site/internal/mess"
)

type fixture struct {
	service    *Service
	users      *auth.InMemoryUserRepository
	identities *auth.InMemoryIdentityProvider
	messes     *mess.InMemoryRepository
	logs       *audit.InMemoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:      auth.NewInMemoryUserRepository(),
		identities: auth.NewInMemoryIdentityProvider(),
		messes:     mess.NewInMemoryRepository(),
		logs:       audit.NewInMemoryRepository(),
	}
	cfg := auth.Config{
		EmailDomain:       "mitmess.com",
		OwnerRecoveryCode: "LALA HI LALA",
		OwnerName:         "M Shoaib Khan",
	}
	f.service = NewService(f.users, f.identities, f.messes, f.logs, cfg)

	require.NoError(t, f.messes.Create(context.Background(), &mess.Mess{
		ID:   "food-court-1",
		Name: "Food Court 1",
		Menu: mess.PlaceholderMenu(),
	}))
	return f
}

var superActor = Actor{Email: "owner@mitmess.com", Name: "M Shoaib Khan"}

func strPtr(s string) *string { return &s }

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, superActor, "", "Name", auth.RoleMessAdmin, strPtr("food-court-1"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.Create(ctx, superActor, "Code", "", auth.RoleMessAdmin, strPtr("food-court-1"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.Create(ctx, superActor, "Code", "Name", auth.RoleMessAdmin, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.Create(ctx, superActor, "Code", "Name", "janitor", nil)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = f.service.Create(ctx, superActor, "Code", "Name", auth.RoleMessAdmin, strPtr("no-such-mess"))
	assert.ErrorIs(t, err, ErrInvalidMess)
}

func TestCreateMessAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.service.Create(ctx, superActor, "FC One Boss", "Ravi", auth.RoleMessAdmin, strPtr("food-court-1"))
	require.NoError(t, err)

	assert.False(t, res.Reactivated)
	assert.True(t, res.ReloginRequired, "creating an account always replaces the caller's session")
	assert.Equal(t, "fc_one_boss@mitmess.com", res.User.Email)
	require.NotNil(t, res.User.MessID)
	assert.Equal(t, "food-court-1", *res.User.MessID)

	require.Len(t, f.logs.Entries, 1)
	assert.Equal(t, audit.ActionAccountCreated, f.logs.Entries[0].Action)
	assert.Equal(t, superActor.Email, f.logs.Entries[0].ActorEmail)
}

func TestCreateSuperAdminIgnoresMess(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.Create(context.Background(), superActor, "Second Owner", "Asha", auth.RoleSuperAdmin, strPtr("food-court-1"))
	require.NoError(t, err)
	assert.Nil(t, res.User.MessID, "super admins are never bound to a mess")
}

func TestCreateReactivatesRevokedAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Create(ctx, superActor, "FC One Boss", "Ravi", auth.RoleMessAdmin, strPtr("food-court-1"))
	require.NoError(t, err)
	require.NoError(t, f.service.Delete(ctx, superActor, first.User.ID))

	res, err := f.service.Create(ctx, superActor, "FC One Boss", "Ravi Kumar", auth.RoleMessAdmin, strPtr("food-court-1"))
	require.NoError(t, err)

	assert.True(t, res.Reactivated)
	assert.Equal(t, first.User.ID, res.User.ID, "reactivation keeps the original profile id")
	assert.False(t, res.User.Deleted)
	assert.Equal(t, "Ravi Kumar", res.User.Name)

	active, err := f.users.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1, "reactivation must not duplicate the profile")
}

func TestCreateRepairsVanishedProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Identity registered, but no profile record exists.
	email := auth.DeriveEmail("FC One Boss", "mitmess.com")
	require.NoError(t, f.identities.Create(ctx, email, "FC One Boss"))

	res, err := f.service.Create(ctx, superActor, "FC One Boss", "Ravi", auth.RoleMessAdmin, strPtr("food-court-1"))
	require.NoError(t, err)

	assert.True(t, res.Reactivated)
	assert.True(t, res.User.Recovered)

	stored, err := f.users.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", stored.Name)
}

func TestDeleteSoftDeletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.service.Create(ctx, superActor, "FC One Boss", "Ravi", auth.RoleMessAdmin, strPtr("food-court-1"))
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, superActor, res.User.ID))

	stored, err := f.users.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.True(t, stored.Deleted, "delete is a soft flag, not a removal")

	// Identity survives so the account can be reactivated later.
	err = f.identities.SignIn(ctx, res.User.Email, "FC One Boss")
	assert.NoError(t, err)

	last := f.logs.Entries[len(f.logs.Entries)-1]
	assert.Equal(t, audit.ActionAccountDeleted, last.Action)
}

func TestDeleteOwnerProtected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner, err := f.service.Reset(ctx, superActor, "LALA HI LALA")
	require.NoError(t, err)

	err = f.service.Delete(ctx, superActor, owner.ID)
	assert.ErrorIs(t, err, ErrOwnerProtected)

	stored, err := f.users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.False(t, stored.Deleted)
}

func TestListAnnotatesMessName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, superActor, "FC One Boss", "Ravi", auth.RoleMessAdmin, strPtr("food-court-1"))
	require.NoError(t, err)
	deleted, err := f.service.Create(ctx, superActor, "Old Boss", "Gone", auth.RoleMessAdmin, strPtr("food-court-1"))
	require.NoError(t, err)
	require.NoError(t, f.service.Delete(ctx, superActor, deleted.User.ID))

	accounts, err := f.service.List(ctx)
	require.NoError(t, err)

	require.Len(t, accounts, 1, "revoked accounts stay out of the listing")
	assert.Equal(t, "Food Court 1", accounts[0].MessName)
}

func TestResetBootstrapsSuperAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, superActor, "FC One Boss", "Ravi", auth.RoleMessAdmin, strPtr("food-court-1"))
	require.NoError(t, err)

	owner, err := f.service.Reset(ctx, superActor, "LALA HI LALA")
	require.NoError(t, err)

	assert.Equal(t, auth.RoleSuperAdmin, owner.Role)
	assert.Equal(t, "M Shoaib Khan", owner.Name)

	active, err := f.users.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1, "reset wipes every other profile")
	assert.Equal(t, owner.Email, active[0].Email)

	// Resetting again reuses the registered identity.
	_, err = f.service.Reset(ctx, superActor, "LALA HI LALA")
	require.NoError(t, err)
}
