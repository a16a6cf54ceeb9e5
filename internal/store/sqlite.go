package store

import (
	"database/sql"
	"strings"
)

// SQLite implements Store on top of a *sql.DB opened by internal/db. Unique
// constraints live in the schema, so concurrent check-then-create cannot
// produce duplicates.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// isUniqueViolation reports whether err is a SQLite unique-constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
