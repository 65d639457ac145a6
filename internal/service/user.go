package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/BuzzLyutic/task-tracker-api/internal/auth"
	"github.com/BuzzLyutic/task-tracker-api/internal/repo"
)

type AuthService struct {
	users  repo.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

func NewAuthService(users repo.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register создает пользователя. Занятый email - repo.ErrorConflict.
func (s *AuthService) Register(ctx context.Context, email, password string) (int64, error) {
	if err := validateCredentials(email, password); err != nil {
		return 0, err
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return 0, validationErr("invalid email")
	}
	if len(password) > auth.MaxPasswordLength {
		return 0, validationErr("password must be at most %d bytes", auth.MaxPasswordLength)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	return s.users.CreateUser(ctx, email, hash)
}

// Login проверяет пароль и выпускает токен сессии.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", time.Time{}, err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return validationErr("missing email or password")
	}
	return nil
}
