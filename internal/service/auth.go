package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pr-poehali-dev/internal-employee-app/internal/database"
	"github.com/pr-poehali-dev/internal-employee-app/internal/errs"
	"github.com/pr-poehali-dev/internal-employee-app/internal/model"
	"github.com/pr-poehali-dev/internal-employee-app/internal/repository"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// InvalidCredentialsMessage is returned for unknown users and wrong passwords alike.
const InvalidCredentialsMessage = "Invalid credentials"

type AuthService struct {
	db    database.TxBeginner
	users *repository.UserRepository
}

func NewAuthService(db database.TxBeginner, users *repository.UserRepository) *AuthService {
	return &AuthService{db: db, users: users}
}

// Login checks username and password against the stored bcrypt hash.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	var user *model.User
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		user, err = s.users.GetByUsername(ctx, tx, req.Username)
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NewUnauthorizedError(InvalidCredentialsMessage)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errs.NewUnauthorizedError(InvalidCredentialsMessage)
	}

	return user, nil
}

// HashPassword produces the value stored in users.password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
