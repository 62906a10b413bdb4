package service

import (
	"context"

	"authgate/internal/models"
	"authgate/internal/repository"
)

// Authorization checks submitted credentials against the credential store.
type Authorization interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// Service aggregates all sub-services used by the HTTP layer.
type Service struct {
	Authorization
}

func NewService(repos *repository.Repository) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Credentials),
	}
}
