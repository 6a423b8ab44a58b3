package database

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	brand TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL,
	reward_points INTEGER NOT NULL DEFAULT 0,
	availability TEXT NOT NULL,
	price INTEGER NOT NULL,
	ex_tax_price INTEGER NOT NULL,
	image_count INTEGER NOT NULL DEFAULT 1,
	description TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);

CREATE TABLE IF NOT EXISTS customers (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT UNIQUE NOT NULL,
	telephone TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	newsletter INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// RunMigrations creates the storefront tables.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create storefront tables: %w", err)
	}
	return nil
}
