package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskcrate/task-tracker/internal/auth"
	"github.com/taskcrate/task-tracker/internal/core/domain"
	"github.com/taskcrate/task-tracker/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	tokens *auth.TokenManager
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *auth.TokenManager, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Register creates a user with a hashed password and returns a token
// for the new account. The plaintext password is never stored or logged.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")

	return s.tokens.Issue(created.Username)
}

// Login verifies the credentials and returns a token. An unknown
// username and a wrong password both map to ErrInvalidCredentials so
// the response cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")

	return s.tokens.Issue(user.Username)
}
