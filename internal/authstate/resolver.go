package authstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront-admin/internal/users"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type adminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Resolver turns an authenticated user id into a resolved State.
type Resolver struct {
	users  userFinder
	admins adminChecker
}

func NewResolver(users userFinder, admins adminChecker) *Resolver {
	return &Resolver{users: users, admins: admins}
}

// Resolve loads the user and derives the privilege flag: an admins row, or the admin/moderator role.
// Unknown or blocked users resolve to Anonymous.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (State, error) {
	user, err := r.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Anonymous(), nil
	}
	if err != nil {
		return Anonymous(), fmt.Errorf("load user: %w", err)
	}
	if user.IsBlocked {
		return Anonymous(), nil
	}

	privileged := user.Role.IsPrivileged()
	if !privileged {
		privileged, err = r.admins.IsAdmin(ctx, user.ID)
		if err != nil {
			return Anonymous(), fmt.Errorf("check admin: %w", err)
		}
	}
	return Resolved(users.FromModel(user), privileged), nil
}
