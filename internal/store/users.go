package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/albertomt/cricheck/internal/model"
)

const userColumns = `id, username, password_hash, name, surname, fiscal_code, role, last_login, created_at, deleted_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Surname,
		&u.FiscalCode, &u.Role, &u.LastLogin, &u.CreatedAt, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

// CreateUser creates a new account. Username and fiscal code are globally
// unique, soft-deactivated accounts included.
func (s *SQLite) CreateUser(ctx context.Context, u model.NewUser) (*model.User, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, name, surname, fiscal_code, role)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Name, u.Surname, model.NormalizeFiscalCode(u.FiscalCode), u.Role,
	)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return s.GetUser(ctx, id)
}

// GetUser returns a user by ID.
func (s *SQLite) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// GetUserByUsername returns a user by username, including soft-deactivated
// accounts so login can reject them explicitly.
func (s *SQLite) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

// GetUserByFiscalCode returns an active user by fiscal code.
func (s *SQLite) GetUserByFiscalCode(ctx context.Context, fiscalCode string) (*model.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE fiscal_code = ? AND deleted_at IS NULL`,
		model.NormalizeFiscalCode(fiscalCode)))
}

// ListUsers returns all active users.
func (s *SQLite) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUserRole updates an active user's role.
func (s *SQLite) UpdateUserRole(ctx context.Context, id int64, role string) error {
	return s.execOnUser(ctx, `UPDATE users SET role = ? WHERE id = ? AND deleted_at IS NULL`, role, id)
}

// UpdateUserPassword updates an active user's password hash.
func (s *SQLite) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	return s.execOnUser(ctx, `UPDATE users SET password_hash = ? WHERE id = ? AND deleted_at IS NULL`, passwordHash, id)
}

// TouchLastLogin records a successful login.
func (s *SQLite) TouchLastLogin(ctx context.Context, id int64) error {
	return s.execOnUser(ctx, `UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
}

// DeactivateUser soft-deactivates a user. Accounts are never hard-deleted.
func (s *SQLite) DeactivateUser(ctx context.Context, id int64) error {
	return s.execOnUser(ctx, `UPDATE users SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
}

func (s *SQLite) execOnUser(ctx context.Context, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
