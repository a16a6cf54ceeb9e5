package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name          TEXT NOT NULL,
    surname       TEXT NOT NULL,
    fiscal_code   TEXT NOT NULL UNIQUE,
    role          TEXT NOT NULL DEFAULT 'volunteer' CHECK (role IN ('admin', 'warehouse', 'volunteer')),
    last_login    DATETIME,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE TABLE IF NOT EXISTS vehicles (
    id           INTEGER PRIMARY KEY,
    code         TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS checklists (
    id           INTEGER PRIMARY KEY,
    user_id      INTEGER NOT NULL REFERENCES users(id),
    vehicle_id   INTEGER NOT NULL REFERENCES vehicles(id),
    timestamp    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    oxygen_level INTEGER NOT NULL CHECK (oxygen_level BETWEEN 0 AND 100)
);

CREATE TABLE IF NOT EXISTS checklist_items (
    id                 INTEGER PRIMARY KEY,
    checklist_id       INTEGER NOT NULL REFERENCES checklists(id) ON DELETE CASCADE,
    name               TEXT NOT NULL,
    status             TEXT NOT NULL CHECK (status IN ('present', 'missing')),
    taken_from_cabinet INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_checklist_items_checklist
    ON checklist_items(checklist_id);

CREATE TABLE IF NOT EXISTS inventory (
    id               INTEGER PRIMARY KEY,
    name             TEXT NOT NULL,
    quantity         INTEGER NOT NULL CHECK (quantity >= 0),
    minimum_quantity INTEGER NOT NULL DEFAULT 0,
    expiry_date      TEXT,
    status           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS qr_codes (
    id         INTEGER PRIMARY KEY,
    vehicle_id INTEGER NOT NULL REFERENCES vehicles(id),
    url        TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    created_by INTEGER NOT NULL REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS scans (
    id         INTEGER PRIMARY KEY,
    qr_code_id INTEGER NOT NULL REFERENCES qr_codes(id),
    user_id    INTEGER NOT NULL REFERENCES users(id),
    timestamp  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sessions (
    id         TEXT PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    expires_at DATETIME NOT NULL
);
`

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
