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
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'buyer',
		is_verified INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createCatalogTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT UNIQUE NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE products (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL,
		category_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		specs TEXT DEFAULT '{}',
		price DECIMAL(12,2) NOT NULL,
		stock INTEGER NOT NULL DEFAULT 1,
		status TEXT NOT NULL,
		is_auction INTEGER NOT NULL DEFAULT 0,
		minimum_bid DECIMAL(12,2) DEFAULT 0,
		current_bid DECIMAL(12,2),
		bid_count INTEGER NOT NULL DEFAULT 0,
		auction_end_date DATETIME,
		buy_now_price DECIMAL(12,2),
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE bids (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		amount DECIMAL(12,2) NOT NULL,
		created_at DATETIME
	);`)
}

func createOrderTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		buyer_id TEXT NOT NULL,
		seller_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		amount DECIMAL(12,2) NOT NULL,
		platform_fee DECIMAL(12,2) NOT NULL DEFAULT 0,
		seller_payout DECIMAL(12,2) NOT NULL DEFAULT 0,
		shipping_address TEXT,
		status TEXT NOT NULL,
		from_auction INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		intent_id TEXT UNIQUE NOT NULL,
		amount DECIMAL(12,2) NOT NULL,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		failure_message TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createWalletTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		balance DECIMAL(12,2) NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'USD',
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE wallet_transactions (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		amount DECIMAL(12,2) NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		reference TEXT,
		created_at DATETIME
	);`)
}

func createEnterpriseTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE enterprise_listings (
		id TEXT PRIMARY KEY,
		vendor_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		min_order_quantity INTEGER NOT NULL DEFAULT 1,
		unit_price DECIMAL(12,2) NOT NULL,
		lead_time_days INTEGER NOT NULL DEFAULT 0,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE quote_requests (
		id TEXT PRIMARY KEY,
		buyer_id TEXT NOT NULL,
		listing_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		note TEXT,
		status TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE quote_responses (
		id TEXT PRIMARY KEY,
		quote_request_id TEXT UNIQUE NOT NULL,
		vendor_id TEXT NOT NULL,
		line_items TEXT DEFAULT '[]',
		total DECIMAL(12,2) NOT NULL,
		valid_until DATETIME NOT NULL,
		created_at DATETIME
	);`)
}
