package admins

import (
	"time"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/google/uuid"
)

// AdminRecord is an admin association joined with the holder's username.
type AdminRecord struct {
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
}

func fromJoined(row models.AdminWithUsername) AdminRecord {
	return AdminRecord{UserID: row.UserID, CreatedAt: row.CreatedAt, Username: row.Username}
}

// AdminList is the observable result of ListAdmins.
type AdminList struct {
	Loading bool          `json:"loading"`
	Err     error         `json:"-"`
	Admins  []AdminRecord `json:"admins"`
}

// ProvisionRequest names the account to promote by its exact email.
type ProvisionRequest struct {
	Email string `json:"email" validate:"required"`
}

// ProvisionResult reports whether the admin association was created.
type ProvisionResult struct {
	Success bool `json:"success"`
}
