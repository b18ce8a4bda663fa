package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/calebdraper/inkwell/internal/domain/model"
	"github.com/calebdraper/inkwell/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the SQLite implementation of the SessionStore port interface.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new SessionRepo backed by the given DB.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserts a new session row.
func (r *SessionRepo) Create(ctx context.Context, session model.Session) error {
	const query = `INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query, session.Token, session.UserID, session.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Get retrieves a session by token. Returns driven.ErrSessionNotFound for an
// unknown token; expiry is checked by the caller.
func (r *SessionRepo) Get(ctx context.Context, token string) (model.Session, error) {
	const query = `SELECT token, user_id, expires_at FROM sessions WHERE token = ?`

	var session model.Session
	var expiresAt string
	err := r.db.Reader.QueryRowContext(ctx, query, token).Scan(&session.Token, &session.UserID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, driven.ErrSessionNotFound
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("get session: %w", err)
	}

	session.ExpiresAt, err = parseTime(expiresAt)
	if err != nil {
		return model.Session{}, fmt.Errorf("parse expires_at: %w", err)
	}

	return session, nil
}

// Delete removes a session by token. Deleting an unknown token is a no-op.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token = ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session that expired at or before the given instant.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	const query = `DELETE FROM sessions WHERE expires_at <= ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, now.UTC()); err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}
