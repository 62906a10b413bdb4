package repository

import (
	"context"
	"database/sql"
	"fmt"

	"authgate/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Credentials interface at compile time.
var _ Credentials = (*UserRepository)(nil)

const selectUsersByUsernameSQL = `SELECT id, username, password FROM users WHERE username = ?`

// ListByUsername returns every user whose username matches exactly, in the
// order the store yields them. No match is an empty slice, not an error.
func (r *UserRepository) ListByUsername(ctx context.Context, username string) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUsersByUsernameSQL, username)
	if err != nil {
		return nil, fmt.Errorf("select users by username %q: %w", username, err)
	}
	defer func() { _ = rows.Close() }()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password); err != nil {
			return nil, fmt.Errorf("scan user %q: %w", username, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users %q: %w", username, err)
	}
	return users, nil
}
