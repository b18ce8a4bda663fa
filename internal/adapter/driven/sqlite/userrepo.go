package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/calebdraper/inkwell/internal/domain/model"
	"github.com/calebdraper/inkwell/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserRepo)(nil)

// UserRepo is the SQLite implementation of the UserStore port interface.
// Authorities are stored as a comma-separated list in a single column.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo backed by the given DB.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user. Returns driven.ErrUserAlreadyExists if a user
// with the same email already exists.
func (r *UserRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	const query = `INSERT INTO users (email, password_hash, authorities, created_at) VALUES (?, ?, ?, ?)`

	now := user.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	result, err := r.db.Writer.ExecContext(ctx, query,
		user.Email, user.PasswordHash, strings.Join(user.Authorities, ","), now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return model.User{}, fmt.Errorf("create user %s: %w", user.Email, driven.ErrUserAlreadyExists)
		}
		return model.User{}, fmt.Errorf("create user %s: %w", user.Email, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("read inserted user id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	return user, nil
}

// GetByEmail retrieves a user by email. Returns driven.ErrUserNotFound if no
// account is registered under that address.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	const query = `SELECT id, email, password_hash, authorities, created_at FROM users WHERE email = ?`
	return r.getOne(ctx, query, email)
}

// GetByID retrieves a user by id. Returns driven.ErrUserNotFound if absent.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	const query = `SELECT id, email, password_hash, authorities, created_at FROM users WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (model.User, error) {
	user, err := scanUser(r.db.Reader.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, driven.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func scanUser(s scanner) (model.User, error) {
	var user model.User
	var authorities, createdAt string

	if err := s.Scan(&user.ID, &user.Email, &user.PasswordHash, &authorities, &createdAt); err != nil {
		return model.User{}, err
	}

	if authorities != "" {
		user.Authorities = strings.Split(authorities, ",")
	}

	var err error
	user.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.User{}, fmt.Errorf("parse created_at: %w", err)
	}

	return user, nil
}
