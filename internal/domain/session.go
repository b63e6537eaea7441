package domain

import "time"

// Session is a server-side login session. The ID doubles as the JWT's jti
// claim; deleting the session invalidates the token before its expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
