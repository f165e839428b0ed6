package domain

import "time"

// User represents an account in the system. Password-based and Google OAuth
// accounts share this type; PasswordHash is empty for OAuth-only users and
// GoogleID is empty for password-only users.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	GoogleID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
