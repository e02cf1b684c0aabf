// Package dbtest opens in-memory sqlite databases carrying the storefront schema for repository tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/angelmondragon/storefront-admin/pkg/db"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  is_blocked INTEGER NOT NULL DEFAULT 0,
  blocked_reason TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS admins (
  user_id TEXT NOT NULL UNIQUE,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS services (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  category TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  category TEXT NOT NULL,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  image_url TEXT,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, product_id)
);`, `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total NUMERIC NOT NULL,
  created_at DATETIME
);`, `
CREATE VIEW IF NOT EXISTS admin_user_profiles AS
SELECT
  u.id,
  u.username,
  u.email,
  u.created_at,
  u.is_blocked,
  u.blocked_reason,
  COALESCE(o.order_count, 0) AS order_count,
  COALESCE(o.total_spent, 0) AS total_spent,
  (a.user_id IS NOT NULL OR u.role IN ('admin', 'moderator')) AS is_admin
FROM users u
LEFT JOIN (
  SELECT user_id, COUNT(*) AS order_count, SUM(total) AS total_spent
  FROM orders
  GROUP BY user_id
) o ON o.user_id = u.id
LEFT JOIN admins a ON a.user_id = u.id;`,
}

// Open returns a client on a private in-memory database with every storefront table created.
func Open(t *testing.T) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	client, err := db.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	for _, stmt := range schema {
		require.NoError(t, client.DB().Exec(stmt).Error)
	}
	return client
}

// DB is Open for callers that only need the gorm handle.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	return Open(t).DB()
}
