package repository

import (
	"context"
	"database/sql"

	"authgate/internal/models"
)

type Credentials interface {
	ListByUsername(ctx context.Context, username string) ([]models.User, error)
}

type Repository struct {
	Credentials Credentials
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Credentials: NewUserRepository(db),
	}
}
