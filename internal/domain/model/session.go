package model

import "time"

// Session is the opaque proof of a successful login, carried by the client
// as a cookie. A session past ExpiresAt is treated as if it never existed.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
