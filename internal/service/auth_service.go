package service

import (
	"context"
	"errors"
	"fmt"

	"authgate/internal/models"
	"authgate/internal/repository"
)

// Domain errors for the login flow. Their text is shown to the user as is.
var (
	ErrUserNotFound       = errors.New("No User Found!!")
	ErrInvalidCredentials = errors.New("Invalid Credentials!!")
)

// AuthService handles credential checks.
type AuthService struct {
	authRepo repository.Credentials
}

func NewAuthService(repo repository.Credentials) *AuthService {
	return &AuthService{authRepo: repo}
}

// Authenticate looks the username up and compares the password of the first
// matching row. Comparison is exact and case-sensitive.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	users, err := s.authRepo.ListByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup credentials: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}

	u := users[0]
	if u.Password != password {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}
