// Package store persists the audit mirror and confirmed bookings in SQLite.
package store

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// DB wraps *sql.DB for travel agent storage. Schema is owned by the app.
type DB struct {
	*sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS audit_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	audit_id TEXT NOT NULL UNIQUE,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	function TEXT NOT NULL,
	parameters TEXT NOT NULL,
	result TEXT,
	success INTEGER NOT NULL,
	error TEXT
);

CREATE INDEX IF NOT EXISTS idx_audit_function ON audit_entries(function);
CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_entries(timestamp);

CREATE TABLE IF NOT EXISTS bookings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	booking_id TEXT NOT NULL UNIQUE,
	kind TEXT NOT NULL, -- flight, hotel
	offer_id TEXT NOT NULL,
	status TEXT NOT NULL, -- DRY_RUN, CONFIRMED
	confirmation_number TEXT,
	details TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_bookings_offer ON bookings(offer_id);
`

// Open opens the SQLite database at path and applies the schema. Creates
// the file if missing.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.DB.Close()
}
