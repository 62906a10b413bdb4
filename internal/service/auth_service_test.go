package service

import (
	"context"
	"errors"
	"testing"

	"authgate/internal/models"
	"authgate/internal/repository"
)

// mockCredentials is a lightweight in-test mock for repository.Credentials.
type mockCredentials struct {
	ListByUsernameFn func(username string) ([]models.User, error)

	listCalls []string
}

func (m *mockCredentials) ListByUsername(_ context.Context, username string) ([]models.User, error) {
	m.listCalls = append(m.listCalls, username)
	return m.ListByUsernameFn(username)
}

var _ repository.Credentials = (*mockCredentials)(nil)

func TestAuthService_Authenticate_Success(t *testing.T) {
	mock := &mockCredentials{
		ListByUsernameFn: func(username string) ([]models.User, error) {
			return []models.User{{ID: 1, Username: "admin", Password: "pass1234"}}, nil
		},
	}
	svc := NewAuthService(mock)

	u, err := svc.Authenticate(context.Background(), "admin", "pass1234")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if u == nil || u.ID != 1 || u.Username != "admin" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if len(mock.listCalls) != 1 || mock.listCalls[0] != "admin" {
		t.Fatalf("expected one lookup for 'admin', got %v", mock.listCalls)
	}
}

func TestAuthService_Authenticate_Errors(t *testing.T) {
	repoErr := errors.New("db down")

	cases := []struct {
		name     string
		rows     []models.User
		repoErr  error
		password string
		wantErr  error
	}{
		{
			name:     "no user",
			rows:     nil,
			password: "pass1234",
			wantErr:  ErrUserNotFound,
		},
		{
			name:     "wrong password",
			rows:     []models.User{{ID: 1, Username: "admin", Password: "pass1234"}},
			password: "nope",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "password is case-sensitive",
			rows:     []models.User{{ID: 1, Username: "admin", Password: "pass1234"}},
			password: "PASS1234",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "repository failure",
			repoErr:  repoErr,
			password: "pass1234",
			wantErr:  repoErr,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockCredentials{
				ListByUsernameFn: func(string) ([]models.User, error) {
					return tc.rows, tc.repoErr
				},
			}
			svc := NewAuthService(mock)

			u, err := svc.Authenticate(context.Background(), "admin", tc.password)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if u != nil {
				t.Fatalf("expected nil user on error, got %+v", u)
			}
		})
	}
}

func TestAuthService_Authenticate_FirstRowWins(t *testing.T) {
	mock := &mockCredentials{
		ListByUsernameFn: func(string) ([]models.User, error) {
			return []models.User{
				{ID: 5, Username: "bob", Password: "first"},
				{ID: 2, Username: "bob", Password: "second"},
			}, nil
		},
	}
	svc := NewAuthService(mock)

	u, err := svc.Authenticate(context.Background(), "bob", "first")
	if err != nil {
		t.Fatalf("expected first row to match, got %v", err)
	}
	if u.ID != 5 {
		t.Fatalf("expected user id 5, got %d", u.ID)
	}

	if _, err := svc.Authenticate(context.Background(), "bob", "second"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected later duplicate to be ignored, got %v", err)
	}
}

func TestAuthService_ErrorText(t *testing.T) {
	if ErrUserNotFound.Error() != "No User Found!!" {
		t.Fatalf("unexpected text %q", ErrUserNotFound.Error())
	}
	if ErrInvalidCredentials.Error() != "Invalid Credentials!!" {
		t.Fatalf("unexpected text %q", ErrInvalidCredentials.Error())
	}
}
