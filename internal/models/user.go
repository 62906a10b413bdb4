package models

// User is a row of the users table. Passwords are stored as plain text.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // never exposed
}
