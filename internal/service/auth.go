package service

import (
	"context"
	"errors"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/logger"
	"finance_tracker/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues identities: it registers users with a bcrypt password
// hash and exchanges credentials for JWTs.
type AuthService struct {
	users *repository.UserRepository
}

func NewAuthService(db *pgxpool.Pool) *AuthService {
	return &AuthService{users: repository.NewUserRepository(db)}
}

// Register creates a new user with hashed password and returns it with a
// fresh token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := GenerateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}

	logger.Info("user registered", "email", user.Email)
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// A missing email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
