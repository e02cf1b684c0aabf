package authstate

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/storefront-admin/internal/admins"
	"github.com/angelmondragon/storefront-admin/internal/users"
	"github.com/angelmondragon/storefront-admin/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/angelmondragon/storefront-admin/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateConstructors(t *testing.T) {
	assert.True(t, Pending().Loading())
	assert.False(t, Authenticated(Pending()))
	assert.False(t, Authenticated(Anonymous()))
	assert.False(t, Authenticated(nil))

	user := &users.UserDTO{ID: uuid.New()}
	state := Resolved(user, true)
	assert.Same(t, user, state.User())
	assert.True(t, state.IsAdmin())
	assert.True(t, Authenticated(state))

	assert.Equal(t, Anonymous(), Resolved(nil, true))
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	store := NewStore(Pending())
	var seen []bool
	store.Subscribe(func(c Context) { seen = append(seen, c.Loading()) })
	store.Set(Anonymous())

	assert.Equal(t, []bool{true, false}, seen)
	assert.False(t, store.Current().Loading())
}

func TestFromContextDefaultsToAnonymous(t *testing.T) {
	c := FromContext(context.Background())
	assert.Nil(t, c.User())
	assert.False(t, c.Loading())

	state := Resolved(&users.UserDTO{Username: "ada"}, false)
	got := FromContext(WithContext(context.Background(), state))
	assert.Equal(t, "ada", got.User().Username)
}

func TestResolverDerivesPrivilege(t *testing.T) {
	conn := dbtest.DB(t)
	ctx := context.Background()
	resolver := NewResolver(users.NewRepository(conn), admins.NewRepository(conn))

	shopper := &models.User{Username: "shopper", Email: "s@example.com", PasswordHash: "x", Role: enums.UserRoleUser}
	granted := &models.User{Username: "granted", Email: "g@example.com", PasswordHash: "x", Role: enums.UserRoleUser}
	moderator := &models.User{Username: "mod", Email: "m@example.com", PasswordHash: "x", Role: enums.UserRoleModerator}
	reason := "fraud"
	blocked := &models.User{Username: "blocked", Email: "b@example.com", PasswordHash: "x", Role: enums.UserRoleAdmin, IsBlocked: true, BlockedReason: &reason}
	for _, u := range []*models.User{shopper, granted, moderator, blocked} {
		require.NoError(t, conn.Create(u).Error)
	}
	require.NoError(t, conn.Create(&models.Admin{UserID: granted.ID}).Error)

	cases := []struct {
		name    string
		id      uuid.UUID
		user    bool
		isAdmin bool
	}{
		{"plain shopper", shopper.ID, true, false},
		{"admins row", granted.ID, true, true},
		{"legacy moderator role", moderator.ID, true, true},
		{"blocked", blocked.ID, false, false},
		{"unknown", uuid.New(), false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state, err := resolver.Resolve(ctx, tc.id)
			require.NoError(t, err)
			assert.False(t, state.Loading())
			assert.Equal(t, tc.user, state.User() != nil)
			assert.Equal(t, tc.isAdmin, state.IsAdmin())
		})
	}
}

type failingAdmins struct{}

func (failingAdmins) IsAdmin(context.Context, uuid.UUID) (bool, error) {
	return false, errors.New("timeout")
}

type fixedUser struct{ user *models.User }

func (f fixedUser) FindByID(context.Context, uuid.UUID) (*models.User, error) { return f.user, nil }

func TestResolverPropagatesAdminLookupFailure(t *testing.T) {
	resolver := NewResolver(fixedUser{&models.User{ID: uuid.New(), Role: enums.UserRoleUser}}, failingAdmins{})
	_, err := resolver.Resolve(context.Background(), uuid.New())
	assert.Error(t, err)
}
