package models

import "time"

// RefreshToken is the server-side half of a session. UserAgent and IPAddress
// are recorded as reported by the client and are not trusted for anything.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	UserAgent string
	IPAddress string
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.Expires)
}
