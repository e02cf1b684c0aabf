package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdminTab(t *testing.T) {
	tab, err := ParseAdminTab("products")
	require.NoError(t, err)
	assert.Equal(t, AdminTabProducts, tab)
	assert.Equal(t, "Products", tab.Label())

	_, err = ParseAdminTab("Products")
	assert.Error(t, err)
	assert.Equal(t, []AdminTab{AdminTabServices, AdminTabProducts}, AdminTabs())
}

func TestUserRolePrivilege(t *testing.T) {
	assert.True(t, UserRoleAdmin.IsPrivileged())
	assert.True(t, UserRoleModerator.IsPrivileged())
	assert.False(t, UserRoleUser.IsPrivileged())
	assert.False(t, UserRole("owner").IsValid())

	role, err := ParseUserRole("moderator")
	require.NoError(t, err)
	assert.Equal(t, UserRoleModerator, role)
}
