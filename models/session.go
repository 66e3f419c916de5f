package models

import "time"

// Session is the client-side authentication state persisted between runs so
// the background sync job can operate without re-prompting for credentials.
type Session struct {
	// Login is the account the session belongs to.
	Login string `json:"login"`

	// Token is the compact JWT bearer token issued at login.
	Token string `json:"token"`

	// UserID is the account identifier extracted from the token.
	UserID int64 `json:"user_id"`

	// SavedAt is when the session was last written.
	SavedAt time.Time `json:"saved_at"`
}
