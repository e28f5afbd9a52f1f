package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	// One connection keeps concurrent writers serialized on sqlite.
	sqlDB, err := db.DB()
	require.NoError(t, err, "generic db")
	sqlDB.SetMaxOpenConns(1)

	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createDealTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE deals (
		id TEXT PRIMARY KEY,
		title_en TEXT NOT NULL,
		title_zh TEXT,
		description_en TEXT,
		description_zh TEXT,
		original_price REAL,
		sale_price REAL,
		currency TEXT NOT NULL DEFAULT 'USD',
		discount_percentage INTEGER NOT NULL DEFAULT 0,
		affiliate_url TEXT NOT NULL,
		image_url TEXT,
		coupon_code TEXT,
		category_id TEXT,
		store_id TEXT,
		start_date DATETIME,
		end_date DATETIME,
		is_active BOOLEAN NOT NULL DEFAULT true,
		is_featured BOOLEAN NOT NULL DEFAULT false,
		click_count INTEGER NOT NULL DEFAULT 0,
		view_count INTEGER NOT NULL DEFAULT 0,
		conversion_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createCategoryTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		name_en TEXT NOT NULL,
		name_zh TEXT,
		slug TEXT NOT NULL UNIQUE,
		parent_id TEXT,
		display_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createStoreTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE stores (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		website_url TEXT,
		description_en TEXT,
		description_zh TEXT,
		country TEXT,
		currency TEXT NOT NULL DEFAULT 'USD',
		commission_rate REAL,
		affiliate_network TEXT,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name TEXT,
		last_name TEXT,
		preferred_language TEXT NOT NULL DEFAULT 'en',
		preferred_currency TEXT NOT NULL DEFAULT 'USD',
		timezone TEXT,
		is_active BOOLEAN NOT NULL DEFAULT true,
		email_verified BOOLEAN NOT NULL DEFAULT false,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAffiliateClickTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE affiliate_clicks (
		click_id TEXT PRIMARY KEY,
		deal_id TEXT NOT NULL,
		user_id TEXT,
		ip_address TEXT NOT NULL,
		user_agent TEXT,
		referrer TEXT,
		click_timestamp DATETIME NOT NULL,
		converted BOOLEAN NOT NULL DEFAULT false,
		conversion_timestamp DATETIME,
		commission_amount REAL
	);`)
}
