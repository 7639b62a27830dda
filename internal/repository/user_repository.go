package repository

import (
	"context"
	"database/sql"
	"strings"

	"stockroom/internal/model"
)

// UserRepo reads the `users` table. Accounts are created out-of-band, so
// there is no write path here.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// GetByUsername fetches a user by exact username. sql.ErrNoRows when no
// such user exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
