package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/albertomt/cricheck/internal/model"
)

// CreateSession records a login. The session row is the single source of
// truth: a token whose row is gone is no longer valid.
func (s *SQLite) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		id, userID, time.Now().UTC(), expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	// Opportunistically clean up expired sessions.
	_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC())

	return nil
}

// GetSession returns a session by id.
func (s *SQLite) GetSession(ctx context.Context, id string) (*model.Session, error) {
	sess := &model.Session{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return sess, nil
}

// DeleteSession destroys a session. Deleting a missing session is not an
// error, so logout stays idempotent.
func (s *SQLite) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
