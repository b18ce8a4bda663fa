package model

import "time"

// User is a registered account. Email doubles as the login name.
// PasswordHash holds the bcrypt hash; the raw password is never persisted.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Authorities  []string
	CreatedAt    time.Time
}

// DefaultAuthority is granted to every account created through signup.
const DefaultAuthority = "ROLE_USER"
