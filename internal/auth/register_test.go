package auth

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront-admin/internal/users"
	"github.com/angelmondragon/storefront-admin/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/angelmondragon/storefront-admin/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegisterService(t *testing.T) (RegisterService, *users.Repository) {
	t.Helper()
	repo := users.NewRepository(dbtest.DB(t))
	svc, err := NewRegisterService(RegisterServiceParams{UserRepo: repo, PasswordConfig: testPasswordConfig})
	require.NoError(t, err)
	return svc, repo
}

func TestRegisterCreatesShopper(t *testing.T) {
	svc, repo := newRegisterService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, RegisterRequest{Username: "ada", Email: " Ada@Example.com ", Password: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", dto.Email)
	assert.Equal(t, enums.UserRoleUser, dto.Role)

	stored, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	ok, err := security.VerifyPassword("long-enough", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newRegisterService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "long-enough"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Username: "ada2", Email: "ADA@example.com", Password: "long-enough"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestRegisterRequiresFields(t *testing.T) {
	svc, _ := newRegisterService(t)
	_, err := svc.Register(context.Background(), RegisterRequest{Email: "ada@example.com", Password: "long-enough"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
