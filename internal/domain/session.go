package domain

import "time"

// Session is a server-side login record. The cookie only names a session;
// nothing in it is trusted until the row is found and unexpired.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
