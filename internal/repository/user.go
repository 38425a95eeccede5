package repository

import (
	"context"
	"fmt"

	"github.com/pr-poehali-dev/internal-employee-app/internal/model"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByUsername returns pgx.ErrNoRows (wrapped) when no such user exists.
func (r *UserRepository) GetByUsername(ctx context.Context, db DBTX, username string) (*model.User, error) {
	const query = `SELECT id, username, password, is_admin FROM users WHERE username = $1`

	var user model.User
	err := db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.IsAdmin,
	)
	if err != nil {
		return nil, fmt.Errorf("table:users: get user by username: %w", err)
	}

	return &user, nil
}
